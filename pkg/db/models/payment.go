package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tiendaops/tienda-backend/pkg/enums"
)

// Payment is an append-only record of money received against a customer's
// aggregate balance. Payments are not linked to a specific invoice.
type Payment struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID  uuid.UUID           `gorm:"column:customer_id;type:uuid;not null"`
	Customer    *Customer           `gorm:"foreignKey:CustomerID"`
	AmountCents int                 `gorm:"column:amount_cents;not null"`
	Method      enums.PaymentMethod `gorm:"column:method;not null"`
	Notes       *string             `gorm:"column:notes"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
}
