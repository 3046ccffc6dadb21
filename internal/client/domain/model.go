package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Client is a purchasing company the invoices are billed to.
type Client struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Company   string            `gorm:"type:text;not null" json:"company"`
	Contact   *string           `gorm:"type:text" json:"contact,omitempty"`
	Email     *string           `gorm:"type:text" json:"email,omitempty"`
	Phone     *string           `gorm:"type:text" json:"phone,omitempty"`
	Address   *string           `gorm:"type:text" json:"address,omitempty"`
	Currency  string            `gorm:"type:text;not null;default:'CNY'" json:"currency"`
	Notes     *string           `gorm:"type:text" json:"notes,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Client) TableName() string { return "clients" }
