package upstream

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"currency-rates-service/internal/domain"

	"github.com/shopspring/decimal"
)

// Wire records. Fields are pointers so a missing key is distinguishable
// from a zero value; a record that cannot be coerced into an
// observation discards the whole batch. Rates decode through
// decimal.Decimal, so the upstream's digits survive untouched.

type fiatRecord struct {
	Currency *string          `json:"currency"`
	Rate     *decimal.Decimal `json:"rate"`
}

type cryptoRecord struct {
	Name  *string          `json:"name"`
	Value *decimal.Decimal `json:"value"`
}

func decodeFiat(body io.Reader, now func() time.Time) ([]domain.RateObservation, error) {
	var records []fiatRecord
	if err := json.NewDecoder(body).Decode(&records); err != nil {
		return nil, err
	}
	out := make([]domain.RateObservation, 0, len(records))
	for i, rec := range records {
		o, err := observation(rec.Currency, rec.Rate, now)
		if err != nil {
			return nil, fmt.Errorf("fiat record %d: %w", i, err)
		}
		out = append(out, o)
	}
	return out, nil
}

func decodeCrypto(body io.Reader, now func() time.Time) ([]domain.RateObservation, error) {
	var records []cryptoRecord
	if err := json.NewDecoder(body).Decode(&records); err != nil {
		return nil, err
	}
	out := make([]domain.RateObservation, 0, len(records))
	for i, rec := range records {
		o, err := observation(rec.Name, rec.Value, now)
		if err != nil {
			return nil, fmt.Errorf("crypto record %d: %w", i, err)
		}
		out = append(out, o)
	}
	return out, nil
}

func observation(currency *string, rate *decimal.Decimal, now func() time.Time) (domain.RateObservation, error) {
	if currency == nil || *currency == "" {
		return domain.RateObservation{}, fmt.Errorf("missing currency")
	}
	if rate == nil {
		return domain.RateObservation{}, fmt.Errorf("missing rate")
	}
	if rate.IsNegative() {
		return domain.RateObservation{}, fmt.Errorf("negative rate %s", rate)
	}
	return domain.RateObservation{
		Currency:   *currency,
		Rate:       *rate,
		ObservedAt: now(),
	}, nil
}
