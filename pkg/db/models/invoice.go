package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tiendaops/tienda-backend/pkg/enums"
)

// Invoice snapshots an order's total at invoicing time. BalanceDueCents is the
// portion left unpaid; it is accrued onto the customer balance exactly once,
// in the same transaction that creates the invoice.
type Invoice struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	InvoiceNumber   string              `gorm:"column:invoice_number;not null;uniqueIndex"`
	OrderID         uuid.UUID           `gorm:"column:order_id;type:uuid;not null"`
	Order           *Order              `gorm:"foreignKey:OrderID"`
	CustomerID      uuid.UUID           `gorm:"column:customer_id;type:uuid;not null"`
	Customer        *Customer           `gorm:"foreignKey:CustomerID"`
	TotalCents      int                 `gorm:"column:total_cents;not null"`
	PaymentMethod   enums.PaymentMethod `gorm:"column:payment_method;not null"`
	PaidCents       int                 `gorm:"column:paid_cents;not null"`
	BalanceDueCents int                 `gorm:"column:balance_due_cents;not null"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
}
