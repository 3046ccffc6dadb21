package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// MerchItem is a promotional article handed out alongside the beverages,
// glassware, openers, apparel and the like.
type MerchItem struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"type:text;not null" json:"name"`
	Kind      string          `gorm:"type:text;not null;index" json:"kind"`
	Stock     int64           `gorm:"not null;default:0" json:"stock"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_cost"`
	Active    bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (MerchItem) TableName() string { return "merch_items" }
