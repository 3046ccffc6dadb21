package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Product is one catalog entry: a beverage the company sells.
// NameEN is the optional English label used on export documents.
type Product struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	SKU       string            `gorm:"type:text;not null;uniqueIndex" json:"sku"`
	Name      string            `gorm:"type:text;not null" json:"name"`
	NameEN    *string           `gorm:"column:name_en;type:text" json:"name_en,omitempty"`
	Category  string            `gorm:"type:text;not null;index" json:"category"`
	UnitPrice decimal.Decimal   `gorm:"type:decimal(18,4);not null" json:"unit_price"`
	Currency  string            `gorm:"type:text;not null;default:'CNY'" json:"currency"`
	Active    bool              `gorm:"not null;default:true" json:"active"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Product) TableName() string { return "products" }
