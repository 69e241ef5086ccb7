package application

import (
	"context"

	"currency-rates-service/internal/domain"
)

// UpstreamClient fetches the current rates of a single provider.
// Implementations own their base URL, auth and timeout; a failed fetch
// is reported as domain.ErrUpstreamUnavailable.
type UpstreamClient interface {
	Fetch(ctx context.Context) ([]domain.RateObservation, error)
}

// RateStore is the append-only persistence of one rate class.
type RateStore interface {
	// Insert persists one observation; the store assigns the row id.
	Insert(ctx context.Context, o domain.RateObservation) (domain.StoredRate, error)
	// LatestPerCurrency returns, for each currency ever observed, the row
	// with the greatest (observed_at, id). Row order is unspecified.
	LatestPerCurrency(ctx context.Context) ([]domain.StoredRate, error)
}
