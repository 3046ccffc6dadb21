package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// User is a dashboard account. Authentication is handled by the hosting
// platform; this table only backs the management page.
type User struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Email       string       `gorm:"type:text;not null;uniqueIndex" json:"email"`
	DisplayName string       `gorm:"type:text;not null" json:"display_name"`
	Role        Role         `gorm:"type:text;not null;default:'staff'" json:"role"`
	Active      bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (User) TableName() string { return "users" }
