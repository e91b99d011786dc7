package controllers

import (
	"net/http"

	"github.com/tiendaops/tienda-backend/api/responses"
	currencysvc "github.com/tiendaops/tienda-backend/internal/currency"
	"github.com/tiendaops/tienda-backend/pkg/logger"
)

// GetCurrencyRate returns the current USD to DOP rate.
func GetCurrencyRate(svc currencysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rate, err := svc.CurrentRate(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rate)
	}
}

// RefreshCurrencyRate forces a fetch from the external rate API.
func RefreshCurrencyRate(svc currencysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rate, err := svc.Refresh(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rate)
	}
}
