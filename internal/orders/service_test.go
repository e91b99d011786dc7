package orders

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tiendaops/tienda-backend/internal/inventory"
	"github.com/tiendaops/tienda-backend/pkg/db/models"
	"github.com/tiendaops/tienda-backend/pkg/enums"
	pkgerrors "github.com/tiendaops/tienda-backend/pkg/errors"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (g gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return g.db.WithContext(ctx).Transaction(fn)
}

func newOrderTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:orders_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newOrderService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), gormTxRunner{db: db}, inventory.Engine{}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedOrderCustomer(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	customer := models.Customer{ID: uuid.New(), Name: name}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer.ID
}

func seedOrderProduct(t *testing.T, db *gorm.DB, name string, stock, priceCents int) uuid.UUID {
	t.Helper()
	product := models.Product{
		ID:            uuid.New(),
		Name:          name,
		Category:      "colmado",
		PriceDOPCents: priceCents,
		Stock:         stock,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product.ID
}

func productStock(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	return product.Stock
}

func TestPlaceOrderSnapshotsPricesAndDecrementsStock(t *testing.T) {
	t.Parallel()

	db := newOrderTestDB(t)
	svc := newOrderService(t, db)
	customer := seedOrderCustomer(t, db, "Dona Mercedes")
	product := seedOrderProduct(t, db, "Cafe Santo Domingo", 10, 25000)

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: customer,
		Items:      []OrderItemInput{{ProductID: product, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if order.TotalCents != 75000 {
		t.Fatalf("expected total 75000, got %d", order.TotalCents)
	}
	if order.Status != enums.OrderStatusPendingPreparation {
		t.Fatalf("expected pending_preparation, got %s", order.Status)
	}
	if order.OrderNumber == "" {
		t.Fatal("expected generated order number")
	}
	if got := productStock(t, db, product); got != 7 {
		t.Fatalf("expected stock 7, got %d", got)
	}

	// Later catalog price changes must not alter the recorded totals.
	if err := db.Model(&models.Product{}).Where("id = ?", product).
		Update("price_dop_cents", 99000).Error; err != nil {
		t.Fatalf("reprice product: %v", err)
	}
	reloaded, err := svc.Get(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if reloaded.TotalCents != 75000 {
		t.Fatalf("total drifted after reprice: %d", reloaded.TotalCents)
	}
	if reloaded.Items[0].UnitPriceCents != 25000 {
		t.Fatalf("unit price drifted after reprice: %d", reloaded.Items[0].UnitPriceCents)
	}
}

func TestPlaceOrderOverAskLeavesStockUntouched(t *testing.T) {
	t.Parallel()

	db := newOrderTestDB(t)
	svc := newOrderService(t, db)
	customer := seedOrderCustomer(t, db, "Ramon")
	product := seedOrderProduct(t, db, "Aceite Mazola", 5, 32000)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: customer,
		Items:      []OrderItemInput{{ProductID: product, Quantity: 6}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := productStock(t, db, product); got != 5 {
		t.Fatalf("expected stock 5, got %d", got)
	}

	var count int64
	if err := db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if count != 0 {
		t.Fatalf("no order must be created, got %d", count)
	}
}

func TestPlaceOrderPartialFailureRollsBackEverything(t *testing.T) {
	t.Parallel()

	db := newOrderTestDB(t)
	svc := newOrderService(t, db)
	customer := seedOrderCustomer(t, db, "Yolanda")
	plenty := seedOrderProduct(t, db, "Arroz Selecto", 20, 4500)
	scarce := seedOrderProduct(t, db, "Leche Rica", 1, 9500)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: customer,
		Items: []OrderItemInput{
			{ProductID: plenty, Quantity: 5},
			{ProductID: scarce, Quantity: 2},
		},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := productStock(t, db, plenty); got != 20 {
		t.Fatalf("first line reservation leaked, stock %d", got)
	}
	if got := productStock(t, db, scarce); got != 1 {
		t.Fatalf("expected stock 1, got %d", got)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	t.Parallel()

	db := newOrderTestDB(t)
	svc := newOrderService(t, db)
	customer := seedOrderCustomer(t, db, "Pedro")
	product := seedOrderProduct(t, db, "Habichuelas", 5, 7500)

	cases := []struct {
		name  string
		input PlaceOrderInput
	}{
		{"empty items", PlaceOrderInput{CustomerID: customer}},
		{"zero quantity", PlaceOrderInput{
			CustomerID: customer,
			Items:      []OrderItemInput{{ProductID: product, Quantity: 0}},
		}},
		{"missing customer", PlaceOrderInput{
			CustomerID: uuid.New(),
			Items:      []OrderItemInput{{ProductID: product, Quantity: 1}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(context.Background(), tc.input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestPlaceOrderLastUnitContention(t *testing.T) {
	t.Parallel()

	db := newOrderTestDB(t)
	svc := newOrderService(t, db)
	customer := seedOrderCustomer(t, db, "Maria")
	product := seedOrderProduct(t, db, "Ron Barcelo", 1, 85000)

	// sqlite serializes writers with busy/locked errors instead of blocking,
	// so retry those until each placement resolves into a win or a stock
	// conflict.
	place := func() error {
		for attempt := 0; attempt < 50; attempt++ {
			_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
				CustomerID: customer,
				Items:      []OrderItemInput{{ProductID: product, Quantity: 1}},
			})
			if err == nil || !isSQLiteBusy(err) {
				return err
			}
			time.Sleep(5 * time.Millisecond)
		}
		return errors.New("placement never resolved")
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = place()
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeConflict {
			t.Fatalf("loser must fail with a stock conflict, got %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("exactly one writer must claim the last unit, got %d (errs: %v)", succeeded, errs)
	}
	if got := productStock(t, db, product); got != 0 {
		t.Fatalf("expected stock 0, got %d", got)
	}

	var count int64
	if err := db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one order, got %d", count)
	}
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "SQLITE_BUSY")
}

func TestUpdateStatusTransitions(t *testing.T) {
	t.Parallel()

	db := newOrderTestDB(t)
	svc := newOrderService(t, db)
	customer := seedOrderCustomer(t, db, "Luisa")
	product := seedOrderProduct(t, db, "Platanos", 10, 1500)

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: customer,
		Items:      []OrderItemInput{{ProductID: product, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), order.ID, "ready_to_ship")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != enums.OrderStatusReadyToShip {
		t.Fatalf("expected ready_to_ship, got %s", updated.Status)
	}
	if got := productStock(t, db, product); got != 8 {
		t.Fatalf("status change must not touch stock, got %d", got)
	}

	if _, err := svc.UpdateStatus(context.Background(), order.ID, "shipped"); err != nil {
		t.Fatalf("ship order: %v", err)
	}

	_, err = svc.UpdateStatus(context.Background(), order.ID, "pending_preparation")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	_, err = svc.UpdateStatus(context.Background(), order.ID, "lost_at_sea")
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteRestoresStockForUnshippedOrders(t *testing.T) {
	t.Parallel()

	db := newOrderTestDB(t)
	svc := newOrderService(t, db)
	customer := seedOrderCustomer(t, db, "Franklin")
	product := seedOrderProduct(t, db, "Galletas Guarina", 10, 5000)

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: customer,
		Items:      []OrderItemInput{{ProductID: product, Quantity: 4}},
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if got := productStock(t, db, product); got != 6 {
		t.Fatalf("expected stock 6, got %d", got)
	}

	if err := svc.Delete(context.Background(), order.ID); err != nil {
		t.Fatalf("delete order: %v", err)
	}
	if got := productStock(t, db, product); got != 10 {
		t.Fatalf("expected stock restored to 10, got %d", got)
	}

	_, err = svc.Get(context.Background(), order.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
