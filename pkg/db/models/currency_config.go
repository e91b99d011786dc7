package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CurrencyConfig is the singleton row holding the last fetched USD→DOP rate.
type CurrencyConfig struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	USDToDOP  decimal.Decimal `gorm:"column:usd_to_dop;type:numeric(12,4);not null"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
