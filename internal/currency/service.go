package currency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tiendaops/tienda-backend/pkg/config"
	"github.com/tiendaops/tienda-backend/pkg/db/models"
	pkgerrors "github.com/tiendaops/tienda-backend/pkg/errors"
	"github.com/tiendaops/tienda-backend/pkg/logger"
)

const cacheKeyRate = "usd_dop"

// Cache is the subset of the redis client the rate lookup needs.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CacheKey(parts ...string) string
}

// Rate is the current conversion data returned to callers.
type Rate struct {
	USDToDOP  decimal.Decimal `json:"usd_to_dop"`
	Source    string          `json:"source"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Service exposes the exchange rate lookup and refresh.
type Service interface {
	CurrentRate(ctx context.Context) (*Rate, error)
	Refresh(ctx context.Context) (*Rate, error)
}

type service struct {
	db       *gorm.DB
	cache    Cache
	fetcher  Fetcher
	logg     *logger.Logger
	ttl      time.Duration
	fallback decimal.Decimal
}

// NewService builds the currency service. The fallback rate from config is
// the last resort when neither cache nor DB has a value.
func NewService(db *gorm.DB, cache Cache, fetcher Fetcher, cfg config.CurrencyConfig, logg *logger.Logger) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	if fetcher == nil {
		return nil, fmt.Errorf("rate fetcher required")
	}
	fallback, err := decimal.NewFromString(cfg.FallbackRate)
	if err != nil {
		return nil, fmt.Errorf("invalid fallback rate %q: %w", cfg.FallbackRate, err)
	}
	ttl := cfg.RateTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &service{
		db:       db,
		cache:    cache,
		fetcher:  fetcher,
		logg:     logg,
		ttl:      ttl,
		fallback: fallback,
	}, nil
}

// CurrentRate returns the cached rate, falling back to the durable row and
// finally the configured default. Lookup failures degrade, they never fail
// the caller.
func (s *service) CurrentRate(ctx context.Context) (*Rate, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, s.cache.CacheKey("currency", cacheKeyRate))
		if err == nil && cached != "" {
			if rate, perr := decimal.NewFromString(cached); perr == nil {
				return &Rate{USDToDOP: rate, Source: "cache", UpdatedAt: time.Now().UTC()}, nil
			}
		}
	}

	var row models.CurrencyConfig
	err := s.db.WithContext(ctx).Order("updated_at DESC").First(&row).Error
	if err == nil {
		s.storeInCache(ctx, row.USDToDOP)
		return &Rate{USDToDOP: row.USDToDOP, Source: "db", UpdatedAt: row.UpdatedAt}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) && s.logg != nil {
		s.logg.Warn(ctx, "currency config lookup failed, using fallback rate")
	}

	return &Rate{USDToDOP: s.fallback, Source: "default", UpdatedAt: time.Now().UTC()}, nil
}

// Refresh fetches a fresh rate, persists it and refreshes the cache. Cache
// write failures are logged, not returned; the durable row is the source of
// truth.
func (s *service) Refresh(ctx context.Context) (*Rate, error) {
	rate, err := s.fetcher.FetchRate(ctx)
	if err != nil {
		return nil, err
	}

	var row models.CurrencyConfig
	err = s.db.WithContext(ctx).Order("updated_at DESC").First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = models.CurrencyConfig{ID: uuid.New(), USDToDOP: rate}
		if cerr := s.db.WithContext(ctx).Create(&row).Error; cerr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, cerr, "creating currency config")
		}
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading currency config")
	default:
		row.USDToDOP = rate
		if uerr := s.db.WithContext(ctx).Save(&row).Error; uerr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, uerr, "updating currency config")
		}
	}

	s.storeInCache(ctx, rate)
	return &Rate{USDToDOP: rate, Source: "api", UpdatedAt: time.Now().UTC()}, nil
}

func (s *service) storeInCache(ctx context.Context, rate decimal.Decimal) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.CacheKey("currency", cacheKeyRate), rate.String(), s.ttl); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "failed to cache exchange rate")
	}
}
