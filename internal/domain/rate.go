package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateClass names one of the two independent rate pipelines.
type RateClass string

const (
	RateClassFiat   RateClass = "fiat"
	RateClassCrypto RateClass = "crypto"
)

// RateObservation is a single rate as seen at one point in time,
// either freshly decoded from an upstream or read back from storage.
// Currency is an opaque identifier; no case or whitespace normalization
// happens anywhere in the core.
type RateObservation struct {
	Currency   string
	Rate       decimal.Decimal
	ObservedAt time.Time
}

// StoredRate is one persisted observation. ID is assigned by the store
// on insert and never by callers.
type StoredRate struct {
	ID         int64
	Currency   string
	Rate       decimal.Decimal
	ObservedAt time.Time
}

// RatePair is the response projection of an observation.
type RatePair struct {
	Currency string
	Rate     decimal.Decimal
}

func (o RateObservation) Pair() RatePair { return RatePair{Currency: o.Currency, Rate: o.Rate} }

func (s StoredRate) Pair() RatePair { return RatePair{Currency: s.Currency, Rate: s.Rate} }

func (s StoredRate) Observation() RateObservation {
	return RateObservation{Currency: s.Currency, Rate: s.Rate, ObservedAt: s.ObservedAt}
}

// NumericString renders d at its own exponent. Decimal.String trims
// trailing zeros, which would turn 54321.00 into 54321 on the way to
// the database or the response body.
func NumericString(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}
