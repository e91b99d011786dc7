package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/tiendaops/tienda-backend/pkg/errors"
)

// Fetcher retrieves the current USD to DOP rate from an external source.
type Fetcher interface {
	FetchRate(ctx context.Context) (decimal.Decimal, error)
}

// HTTPFetcher pulls the rate from a JSON exchange-rate API.
type HTTPFetcher struct {
	url    string
	client *http.Client
}

// NewHTTPFetcher builds a fetcher against the given API URL.
func NewHTTPFetcher(url string, client *http.Client) (*HTTPFetcher, error) {
	if url == "" {
		return nil, fmt.Errorf("rate api url required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{url: url, client: client}, nil
}

type ratePayload struct {
	Rates map[string]float64 `json:"rates"`
}

// FetchRate calls the API and extracts the DOP rate.
func (f *HTTPFetcher) FetchRate(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building rate request")
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "calling exchange rate api")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("exchange rate api returned status %d", resp.StatusCode))
	}

	var payload ratePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding rate payload")
	}
	rate, ok := payload.Rates["DOP"]
	if !ok || rate <= 0 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeDependency, "rate payload missing DOP")
	}
	return decimal.NewFromFloat(rate), nil
}
