package controllers

import (
	"net/http"

	"github.com/tiendaops/tienda-backend/api/responses"
	"github.com/tiendaops/tienda-backend/api/validators"
	paymentsvc "github.com/tiendaops/tienda-backend/internal/payments"
	"github.com/tiendaops/tienda-backend/pkg/logger"
)

type recordPaymentRequest struct {
	AmountCents int     `json:"amount_cents" validate:"required,min=1"`
	Method      string  `json:"method" validate:"required"`
	Notes       *string `json:"notes"`
}

// RecordPayment records a payment against a customer's balance.
func RecordPayment(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := parseUUIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req recordPaymentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payment, err := svc.RecordPayment(r.Context(), paymentsvc.RecordPaymentInput{
			CustomerID:  customerID,
			AmountCents: req.AmountCents,
			Method:      req.Method,
			Notes:       req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

// ListCustomerPayments returns a customer's payment history.
func ListCustomerPayments(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := parseUUIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payments, err := svc.ListByCustomer(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payments)
	}
}
