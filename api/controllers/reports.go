package controllers

import (
	"net/http"
	"strings"

	"github.com/tiendaops/tienda-backend/api/responses"
	"github.com/tiendaops/tienda-backend/api/validators"
	reportsvc "github.com/tiendaops/tienda-backend/internal/reports"
	pkgerrors "github.com/tiendaops/tienda-backend/pkg/errors"
	"github.com/tiendaops/tienda-backend/pkg/logger"
)

// Dashboard returns the at-a-glance operational summary.
func Dashboard(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Dashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// Reports dispatches the named report query via ?type=.
func Reports(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := strings.TrimSpace(r.URL.Query().Get("type"))
		switch kind {
		case "sales-by-day":
			rows, err := svc.SalesByDay(r.Context())
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, rows)
		case "top-products":
			limit, err := validators.ParseQueryInt(r, "limit", 10, 1, 100)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			rows, err := svc.TopProducts(r.Context(), limit)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, rows)
		case "customers-debt":
			rows, err := svc.CustomersDebt(r.Context())
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, rows)
		case "low-stock":
			rows, err := svc.LowStock(r.Context())
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, rows)
		default:
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "unknown report type").
					WithDetails(map[string]any{"type": kind}))
		}
	}
}
