package application

import (
	"context"

	"currency-rates-service/internal/domain"
	"currency-rates-service/internal/infrastructure/logx"

	"golang.org/x/sync/errgroup"
)

// CombinedRates is the aggregate of both legs. Either slice may be
// empty, neither is ever nil.
type CombinedRates struct {
	Fiat   []domain.RatePair
	Crypto []domain.RatePair
}

// CurrencyRatesService joins the fiat and crypto legs into one response.
type CurrencyRatesService struct {
	fiat   *Leg
	crypto *Leg
}

func NewCurrencyRatesService(fiat, crypto *Leg) *CurrencyRatesService {
	return &CurrencyRatesService{fiat: fiat, crypto: crypto}
}

// GetCurrencyRates runs both legs concurrently and composes the result.
// The first unrecoverable leg error fails the whole aggregate; the other
// leg's outcome is discarded.
func (s *CurrencyRatesService) GetCurrencyRates(ctx context.Context) (CombinedRates, error) {
	log := logx.L()
	log.Info("fetching currency rates")

	var fiat, crypto []domain.RatePair
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fiat, err = s.fiat.Run(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		crypto, err = s.crypto.Run(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return CombinedRates{}, err
	}

	if fiat == nil {
		fiat = []domain.RatePair{}
	}
	if crypto == nil {
		crypto = []domain.RatePair{}
	}
	log.Info("finished fetching currency rates")
	return CombinedRates{Fiat: fiat, Crypto: crypto}, nil
}
