package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	ordersvc "github.com/tiendaops/tienda-backend/internal/orders"
	"github.com/tiendaops/tienda-backend/pkg/db/models"
	pkgerrors "github.com/tiendaops/tienda-backend/pkg/errors"
)

type stubOrderService struct {
	placeErr  error
	statusErr error
	placed    *models.Order
}

func (s *stubOrderService) PlaceOrder(context.Context, ordersvc.PlaceOrderInput) (*models.Order, error) {
	if s.placeErr != nil {
		return nil, s.placeErr
	}
	return s.placed, nil
}

func (s *stubOrderService) UpdateStatus(context.Context, uuid.UUID, string) (*models.Order, error) {
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return s.placed, nil
}

func (s *stubOrderService) Get(context.Context, uuid.UUID) (*models.Order, error) {
	return s.placed, nil
}

func (s *stubOrderService) List(context.Context) ([]models.Order, error) { return nil, nil }

func (s *stubOrderService) Delete(context.Context, uuid.UUID) error { return nil }

func TestPlaceOrderRejectsUnknownFields(t *testing.T) {
	handler := PlaceOrder(&stubOrderService{}, nil)

	body := `{"customer_id":"` + uuid.NewString() + `","items":[],"surprise":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPlaceOrderCreated(t *testing.T) {
	handler := PlaceOrder(&stubOrderService{placed: &models.Order{ID: uuid.New()}}, nil)

	body := `{"customer_id":"` + uuid.NewString() + `","items":[{"product_id":"` + uuid.NewString() + `","quantity":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateOrderStatusStateConflict(t *testing.T) {
	handler := UpdateOrderStatus(&stubOrderService{
		statusErr: pkgerrors.New(pkgerrors.CodeStateConflict, "order already shipped"),
	}, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("orderId", uuid.NewString())
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/x/status",
		strings.NewReader(`{"status":"pending_preparation"}`))
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetOrderRejectsBadID(t *testing.T) {
	handler := GetOrder(&stubOrderService{}, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("orderId", "not-a-uuid")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
