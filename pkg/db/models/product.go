package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog listing priced in DOP with a USD cost reference.
type Product struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name          string    `gorm:"column:name;not null"`
	Description   *string   `gorm:"column:description"`
	Category      string    `gorm:"column:category;not null"`
	PriceDOPCents int       `gorm:"column:price_dop_cents;not null"`
	CostUSDCents  int       `gorm:"column:cost_usd_cents;not null"`
	Stock         int       `gorm:"column:stock;not null;default:0"`
	ImageURL      *string   `gorm:"column:image_url"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
