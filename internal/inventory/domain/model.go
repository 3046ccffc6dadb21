package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// MovementKind classifies a stock movement.
type MovementKind string

const (
	MovementIn     MovementKind = "in"     // goods received
	MovementOut    MovementKind = "out"    // goods shipped or consumed
	MovementAdjust MovementKind = "adjust" // stocktake correction
)

// StockLevel is the current on-hand quantity for one product.
type StockLevel struct {
	ProductID snowflake.ID `gorm:"primaryKey" json:"product_id"`
	Quantity  int64        `gorm:"not null;default:0" json:"quantity"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (StockLevel) TableName() string { return "stock_levels" }

// StockMovement is one journal entry. Delta is signed; the running level is
// the sum of deltas and never drops below zero.
type StockMovement struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	ProductID snowflake.ID `gorm:"not null;index" json:"product_id"`
	Kind      MovementKind `gorm:"type:text;not null" json:"kind"`
	Delta     int64        `gorm:"not null" json:"delta"`
	Reason    *string      `gorm:"type:text" json:"reason,omitempty"`
	Actor     *string      `gorm:"type:text" json:"actor,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (StockMovement) TableName() string { return "stock_movements" }
