package reports

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tiendaops/tienda-backend/internal/products"
	"github.com/tiendaops/tienda-backend/pkg/db/models"
	"github.com/tiendaops/tienda-backend/pkg/enums"
	pkgerrors "github.com/tiendaops/tienda-backend/pkg/errors"
)

// DashboardStats is the at-a-glance summary for the operations home screen.
type DashboardStats struct {
	PendingOrders   int64 `json:"pending_orders"`
	DebtorCount     int64 `json:"debtor_count"`
	TotalDebtCents  int64 `json:"total_debt_cents"`
	LowStockCount   int64 `json:"low_stock_count"`
	TodaySalesCents int64 `json:"today_sales_cents"`
	MonthSalesCents int64 `json:"month_sales_cents"`
}

// DailySales aggregates invoiced totals per calendar day.
type DailySales struct {
	Day        string `json:"day"`
	TotalCents int64  `json:"total_cents"`
	Invoices   int64  `json:"invoices"`
}

// TopProduct ranks products by quantity sold.
type TopProduct struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	QtySold     int64  `json:"qty_sold"`
	SalesCents  int64  `json:"sales_cents"`
}

// Service exposes the reporting queries.
type Service interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	SalesByDay(ctx context.Context) ([]DailySales, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
	CustomersDebt(ctx context.Context) ([]models.Customer, error)
	LowStock(ctx context.Context) ([]models.Product, error)
}

type service struct {
	db *gorm.DB
}

// NewService builds a reports service reading directly from the DB.
func NewService(db *gorm.DB) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	return &service{db: db}, nil
}

func (s *service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Order{}).
		Where("status = ?", enums.OrderStatusPendingPreparation).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting pending orders")
	}
	if err := db.Model(&models.Customer{}).
		Where("balance_cents > 0").
		Count(&stats.DebtorCount).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting debtors")
	}
	if err := db.Model(&models.Customer{}).
		Select("COALESCE(SUM(balance_cents), 0)").
		Scan(&stats.TotalDebtCents).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "summing debt")
	}
	if err := db.Model(&models.Product{}).
		Where("stock <= ?", products.LowStockThreshold).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting low stock")
	}

	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	if err := db.Model(&models.Invoice{}).
		Select("COALESCE(SUM(total_cents), 0)").
		Where("created_at >= ?", dayStart).
		Scan(&stats.TodaySalesCents).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "summing today sales")
	}
	if err := db.Model(&models.Invoice{}).
		Select("COALESCE(SUM(total_cents), 0)").
		Where("created_at >= ?", monthStart).
		Scan(&stats.MonthSalesCents).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "summing month sales")
	}
	return stats, nil
}

func (s *service) SalesByDay(ctx context.Context) ([]DailySales, error) {
	since := time.Now().UTC().AddDate(0, 0, -30)
	var rows []DailySales
	err := s.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Select("DATE(created_at) AS day, COALESCE(SUM(total_cents), 0) AS total_cents, COUNT(*) AS invoices").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("day DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregating sales by day")
	}
	return rows, nil
}

func (s *service) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []TopProduct
	err := s.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("order_items.product_id AS product_id, products.name AS product_name, "+
			"SUM(order_items.quantity) AS qty_sold, "+
			"SUM(order_items.quantity * order_items.unit_price_cents) AS sales_cents").
		Joins("JOIN products ON products.id = order_items.product_id").
		Group("order_items.product_id, products.name").
		Order("qty_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregating top products")
	}
	return rows, nil
}

func (s *service) CustomersDebt(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.WithContext(ctx).
		Where("balance_cents > 0").
		Order("balance_cents DESC").
		Find(&customers).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing customer debt")
	}
	return customers, nil
}

func (s *service) LowStock(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	err := s.db.WithContext(ctx).
		Where("stock <= ?", products.LowStockThreshold).
		Order("stock ASC").
		Find(&items).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing low stock")
	}
	return items, nil
}
