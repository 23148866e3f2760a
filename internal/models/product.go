package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a row of the products table.
type Product struct {
	ID            uint            `gorm:"primaryKey"`
	Name          string          `gorm:"not null"`
	Brand         string          `gorm:"not null"`
	Category      string          `gorm:"not null;index"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Description   string          `gorm:"type:text"`
	ImageFileName string          `gorm:"not null"` // file name under the image dir, e.g. "1718000000000_shoe.png"
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
