package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tiendaops/tienda-backend/pkg/enums"
)

// Order is the immutable record of a placed customer order. Totals and line
// items are snapshots taken at placement time; only Status changes afterwards.
type Order struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	OrderNumber string            `gorm:"column:order_number;not null;uniqueIndex"`
	CustomerID  uuid.UUID         `gorm:"column:customer_id;type:uuid;not null"`
	Customer    *Customer         `gorm:"foreignKey:CustomerID"`
	TotalCents  int               `gorm:"column:total_cents;not null"`
	Status      enums.OrderStatus `gorm:"column:status;not null;default:'pending_preparation'"`
	Items       []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
