package httpserver

import (
	"bytes"
	"encoding/json"

	"currency-rates-service/internal/application"
	"currency-rates-service/internal/domain"

	"github.com/shopspring/decimal"
)

type currencyRatesResponse struct {
	Fiat   []rateItem `json:"fiat"`
	Crypto []rateItem `json:"crypto"`
}

type rateItem struct {
	Currency string          `json:"currency"`
	Rate     decimal.Decimal `json:"rate"`
}

// MarshalJSON writes the rate as a bare JSON number so the upstream's
// scale survives serialization (decimal.Decimal alone would quote it).
func (i rateItem) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(`{"currency":`)
	cur, err := json.Marshal(i.Currency)
	if err != nil {
		return nil, err
	}
	b.Write(cur)
	b.WriteString(`,"rate":`)
	b.WriteString(domain.NumericString(i.Rate))
	b.WriteByte('}')
	return b.Bytes(), nil
}

func toResponse(r application.CombinedRates) currencyRatesResponse {
	return currencyRatesResponse{
		Fiat:   toItems(r.Fiat),
		Crypto: toItems(r.Crypto),
	}
}

func toItems(pairs []domain.RatePair) []rateItem {
	out := make([]rateItem, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, rateItem{Currency: p.Currency, Rate: p.Rate})
	}
	return out
}
