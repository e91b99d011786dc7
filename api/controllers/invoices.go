package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tiendaops/tienda-backend/api/responses"
	"github.com/tiendaops/tienda-backend/api/validators"
	invoicesvc "github.com/tiendaops/tienda-backend/internal/invoices"
	"github.com/tiendaops/tienda-backend/pkg/logger"
)

type createInvoiceRequest struct {
	OrderID       uuid.UUID `json:"order_id" validate:"required"`
	PaymentMethod string    `json:"payment_method" validate:"required"`
	PaidCents     *int      `json:"paid_cents"`
}

// CreateInvoice issues an invoice for an order.
func CreateInvoice(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createInvoiceRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		invoice, err := svc.CreateInvoice(r.Context(), invoicesvc.CreateInvoiceInput{
			OrderID:       req.OrderID,
			PaymentMethod: req.PaymentMethod,
			PaidCents:     req.PaidCents,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, invoice)
	}
}

// ListInvoices returns all invoices, newest first.
func ListInvoices(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		invoices, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, invoices)
	}
}

// GetInvoice returns one invoice by id.
func GetInvoice(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "invoiceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		invoice, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, invoice)
	}
}
