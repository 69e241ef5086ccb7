package bootstrap

import (
	"context"
	"net/http"

	"currency-rates-service/internal/application"
	"currency-rates-service/internal/config"
	"currency-rates-service/internal/domain"
	"currency-rates-service/internal/infrastructure/logx"
	"currency-rates-service/internal/infrastructure/pg"
	"currency-rates-service/internal/infrastructure/upstream"
)

type App struct {
	Service *application.CurrencyRatesService
	Ping    func(ctx context.Context) error
}

// Build connects the store, runs migrations and wires both legs.
// The returned cleanup closes the pool.
func Build(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	log := logx.L()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return nil, func() {}, err
	}
	db, err := pg.Connect(ctx, dsn, cfg.DB.PoolSize())
	if err != nil {
		return nil, func() {}, err
	}
	if err := pg.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, func() {}, err
	}

	// One HTTP client shared by both providers; per-call deadlines come
	// from the fetch context.
	httpClient := &http.Client{}

	fiatLeg := &application.Leg{
		Class:       domain.RateClassFiat,
		Client:      upstream.NewFiatClient(cfg.Upstream.BaseURL, cfg.Upstream.APIKey, cfg.Upstream.Timeout, httpClient),
		Store:       pg.NewFiatRateRepo(db),
		InsertLimit: cfg.DB.InsertConcurrency,
	}
	cryptoLeg := &application.Leg{
		Class:       domain.RateClassCrypto,
		Client:      upstream.NewCryptoClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, httpClient),
		Store:       pg.NewCryptoRateRepo(db),
		InsertLimit: cfg.DB.InsertConcurrency,
	}

	cleanup := func() {
		log.Info("closing pg")
		db.Close()
	}
	return &App{
		Service: application.NewCurrencyRatesService(fiatLeg, cryptoLeg),
		Ping:    db.Ping,
	}, cleanup, nil
}
