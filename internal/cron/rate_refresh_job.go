package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/tiendaops/tienda-backend/internal/currency"
	"github.com/tiendaops/tienda-backend/pkg/logger"
)

// RateRefreshJobParams configure the exchange rate refresh job.
type RateRefreshJobParams struct {
	Logger   *logger.Logger
	Currency currency.Service
}

// NewRateRefreshJob builds the daily exchange rate refresh.
func NewRateRefreshJob(params RateRefreshJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Currency == nil {
		return nil, fmt.Errorf("currency service required")
	}
	return &rateRefreshJob{
		logg:     params.Logger,
		currency: params.Currency,
	}, nil
}

type rateRefreshJob struct {
	logg     *logger.Logger
	currency currency.Service
}

func (j *rateRefreshJob) Name() string { return "exchange-rate-refresh" }

// Run refreshes the USD to DOP rate. A failed fetch is reported but also
// verifies the degraded lookup still produces a usable rate; both failing
// together is the real outage.
func (j *rateRefreshJob) Run(ctx context.Context) error {
	rate, refreshErr := j.currency.Refresh(ctx)
	if refreshErr == nil {
		logCtx := j.logg.WithFields(ctx, map[string]any{
			"usd_to_dop": rate.USDToDOP.String(),
			"source":     rate.Source,
		})
		j.logg.Info(logCtx, "exchange rate refreshed")
		return nil
	}

	var errs error
	errs = multierr.Append(errs, fmt.Errorf("refresh rate: %w", refreshErr))

	fallback, lookupErr := j.currency.CurrentRate(ctx)
	if lookupErr != nil {
		errs = multierr.Append(errs, fmt.Errorf("fallback lookup: %w", lookupErr))
		return errs
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"usd_to_dop": fallback.USDToDOP.String(),
		"source":     fallback.Source,
		"stale_for":  time.Since(fallback.UpdatedAt).String(),
	})
	j.logg.Warn(logCtx, "exchange rate refresh failed, serving last known rate")
	return errs
}
