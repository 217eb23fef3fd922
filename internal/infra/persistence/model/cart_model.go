// Package model holds the GORM-specific persistence structs.
package model

import "time"

// CartLineModel is the GORM-specific struct for the 'cart_lines' table.
// One row per (cart, line key); the composite primary key enforces the
// one-line-per-key invariant at the storage layer as well.
type CartLineModel struct {
	CartID          string `gorm:"type:varchar(64);primaryKey"`
	ProductID       string `gorm:"type:varchar(64);primaryKey"`
	VariantSelector string `gorm:"type:varchar(128);primaryKey"`
	Quantity        int    `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartLineModel) TableName() string {
	return "cart_lines"
}
