package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	currencysvc "github.com/tiendaops/tienda-backend/internal/currency"
	customersvc "github.com/tiendaops/tienda-backend/internal/customers"
	invoicesvc "github.com/tiendaops/tienda-backend/internal/invoices"
	ordersvc "github.com/tiendaops/tienda-backend/internal/orders"
	paymentsvc "github.com/tiendaops/tienda-backend/internal/payments"
	productsvc "github.com/tiendaops/tienda-backend/internal/products"
	reportsvc "github.com/tiendaops/tienda-backend/internal/reports"
	"github.com/tiendaops/tienda-backend/pkg/config"
	"github.com/tiendaops/tienda-backend/pkg/db/models"
	pkgerrors "github.com/tiendaops/tienda-backend/pkg/errors"
	"github.com/tiendaops/tienda-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubProducts struct{}

func (stubProducts) CreateProduct(context.Context, productsvc.CreateProductInput) (*models.Product, error) {
	return &models.Product{ID: uuid.New()}, nil
}
func (stubProducts) GetProduct(context.Context, uuid.UUID) (*models.Product, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}
func (stubProducts) ListProducts(context.Context) ([]models.Product, error) {
	return []models.Product{{ID: uuid.New(), Name: "Cafe"}}, nil
}
func (stubProducts) ListLowStock(context.Context) ([]models.Product, error) { return nil, nil }
func (stubProducts) UpdateProduct(context.Context, uuid.UUID, productsvc.UpdateProductInput) (*models.Product, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}
func (stubProducts) DeleteProduct(context.Context, uuid.UUID) error { return nil }

type stubCustomers struct{}

func (stubCustomers) CreateCustomer(context.Context, customersvc.CreateCustomerInput) (*models.Customer, error) {
	return &models.Customer{ID: uuid.New()}, nil
}
func (stubCustomers) GetCustomer(context.Context, uuid.UUID) (*models.Customer, error) {
	return &models.Customer{ID: uuid.New()}, nil
}
func (stubCustomers) ListCustomers(context.Context) ([]models.Customer, error) { return nil, nil }
func (stubCustomers) ListDebtors(context.Context) ([]models.Customer, error)   { return nil, nil }
func (stubCustomers) UpdateCustomer(context.Context, uuid.UUID, customersvc.UpdateCustomerInput) (*models.Customer, error) {
	return &models.Customer{ID: uuid.New()}, nil
}

type stubOrders struct{}

func (stubOrders) PlaceOrder(context.Context, ordersvc.PlaceOrderInput) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock for Cafe")
}
func (stubOrders) UpdateStatus(context.Context, uuid.UUID, string) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order already shipped")
}
func (stubOrders) Get(context.Context, uuid.UUID) (*models.Order, error) {
	return &models.Order{ID: uuid.New()}, nil
}
func (stubOrders) List(context.Context) ([]models.Order, error) { return nil, nil }
func (stubOrders) Delete(context.Context, uuid.UUID) error      { return nil }

type stubInvoices struct{}

func (stubInvoices) CreateInvoice(context.Context, invoicesvc.CreateInvoiceInput) (*models.Invoice, error) {
	return &models.Invoice{ID: uuid.New()}, nil
}
func (stubInvoices) Get(context.Context, uuid.UUID) (*models.Invoice, error) {
	return &models.Invoice{ID: uuid.New()}, nil
}
func (stubInvoices) List(context.Context) ([]models.Invoice, error) { return nil, nil }

type stubPayments struct{}

func (stubPayments) RecordPayment(context.Context, paymentsvc.RecordPaymentInput) (*models.Payment, error) {
	return &models.Payment{ID: uuid.New()}, nil
}
func (stubPayments) ListByCustomer(context.Context, uuid.UUID) ([]models.Payment, error) {
	return nil, nil
}

type stubCurrency struct{}

func (stubCurrency) CurrentRate(context.Context) (*currencysvc.Rate, error) {
	return &currencysvc.Rate{Source: "default"}, nil
}
func (stubCurrency) Refresh(context.Context) (*currencysvc.Rate, error) {
	return &currencysvc.Rate{Source: "api"}, nil
}

type stubReports struct{}

func (stubReports) Dashboard(context.Context) (*reportsvc.DashboardStats, error) {
	return &reportsvc.DashboardStats{}, nil
}
func (stubReports) SalesByDay(context.Context) ([]reportsvc.DailySales, error)        { return nil, nil }
func (stubReports) TopProducts(context.Context, int) ([]reportsvc.TopProduct, error)  { return nil, nil }
func (stubReports) CustomersDebt(context.Context) ([]models.Customer, error)          { return nil, nil }
func (stubReports) LowStock(context.Context) ([]models.Product, error)                { return nil, nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{ServiceName: "router-test"})
	return NewRouter(cfg, logg, stubPinger{}, stubPinger{}, Services{
		Products:  stubProducts{},
		Customers: stubCustomers{},
		Orders:    stubOrders{},
		Invoices:  stubInvoices{},
		Payments:  stubPayments{},
		Currency:  stubCurrency{},
		Reports:   stubReports{},
	})
}

func TestRouterHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("%s returned %d", path, w.Code)
		}
		if got := w.Header().Get("X-Tienda-Env"); got != "test" {
			t.Fatalf("missing env header on %s, got %q", path, got)
		}
	}
}

func TestRouterMapsConflictErrors(t *testing.T) {
	router := newTestRouter(t)

	body := `{"customer_id":"` + uuid.NewString() + `","items":[{"product_id":"` + uuid.NewString() + `","quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeConflict) {
		t.Fatalf("unexpected error code %s", payload.Error.Code)
	}
}

func TestRouterServesMetrics(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics endpoint returned %d", w.Code)
	}
}
