package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type EventStatus string

const (
	EventStatusPlanned   EventStatus = "planned"
	EventStatusDone      EventStatus = "done"
	EventStatusCancelled EventStatus = "cancelled"
)

// Event is a tasting or venue event run by the sales team.
type Event struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Title     string       `gorm:"type:text;not null" json:"title"`
	Venue     *string      `gorm:"type:text" json:"venue,omitempty"`
	StartsAt  time.Time    `gorm:"not null;index" json:"starts_at"`
	EndsAt    *time.Time   `json:"ends_at,omitempty"`
	Status    EventStatus  `gorm:"type:text;not null;default:'planned'" json:"status"`
	Notes     *string      `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Event) TableName() string { return "events" }
