package models

import (
	"time"

	"pencil/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;<-:create" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}

// DefaultOrder is the listing order shared by every record table.
const DefaultOrder = "date DESC, created_at DESC"

// MaxAmount is the largest value a numeric(10,2) amount column holds.
var MaxAmount = decimal.RequireFromString("99999999.99")

// ValidAmount reports whether d is a non-negative monetary value with at most
// two decimal places that fits the amount column.
func ValidAmount(d decimal.Decimal) bool {
	return !d.IsNegative() && d.Equal(d.Round(2)) && d.LessThanOrEqual(MaxAmount)
}
