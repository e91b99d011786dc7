package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem captures the per-line snapshot of a placed order. UnitPriceCents
// is the price at reservation time; later catalog edits never touch it.
type OrderItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Product        *Product  `gorm:"foreignKey:ProductID"`
	Quantity       int       `gorm:"column:quantity;not null"`
	UnitPriceCents int       `gorm:"column:unit_price_cents;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
