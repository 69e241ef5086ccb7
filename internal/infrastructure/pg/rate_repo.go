package pg

import (
	"context"
	"fmt"

	"currency-rates-service/internal/application"
	"currency-rates-service/internal/domain"
	"currency-rates-service/internal/infrastructure/logx"
	"currency-rates-service/internal/infrastructure/metrics"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RateRepo is an append-only store of rate observations for one class.
// Fiat and crypto get separate instances backed by separate tables on
// the same pool.
type RateRepo struct {
	db    *DB
	class domain.RateClass
	table string
}

var _ application.RateStore = (*RateRepo)(nil)

func NewFiatRateRepo(db *DB) *RateRepo {
	return &RateRepo{db: db, class: domain.RateClassFiat, table: "fiat_rate"}
}

func NewCryptoRateRepo(db *DB) *RateRepo {
	return &RateRepo{db: db, class: domain.RateClassCrypto, table: "crypto_rate"}
}

// Insert appends one row and returns it with the store-assigned id.
// Duplicate currencies are expected; they are the history.
func (r *RateRepo) Insert(ctx context.Context, o domain.RateObservation) (domain.StoredRate, error) {
	// Table name is one of two compile-time constants, never user input.
	q := fmt.Sprintf(`INSERT INTO %s (currency, rate, created_at) VALUES ($1, $2::numeric, $3) RETURNING id`, r.table)
	var id int64
	err := r.db.Pool.QueryRow(ctx, q, o.Currency, domain.NumericString(o.Rate), o.ObservedAt).Scan(&id)
	if err != nil {
		logx.L().Error("rate insert failed",
			zap.String("table", r.table),
			zap.String("currency", o.Currency),
			zap.Error(err),
		)
		return domain.StoredRate{}, fmt.Errorf("%w: insert %s: %w", domain.ErrStoreUnavailable, r.table, err)
	}
	metrics.RatesPersisted.WithLabelValues(string(r.class)).Inc()
	return domain.StoredRate{ID: id, Currency: o.Currency, Rate: o.Rate, ObservedAt: o.ObservedAt}, nil
}

// LatestPerCurrency returns the newest row per currency; ties on
// created_at resolve to the row inserted last.
func (r *RateRepo) LatestPerCurrency(ctx context.Context) ([]domain.StoredRate, error) {
	q := fmt.Sprintf(`
        SELECT DISTINCT ON (currency) id, currency, rate::text, created_at
        FROM %s
        ORDER BY currency, created_at DESC, id DESC`, r.table)
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		logx.L().Error("latest-per-currency query failed", zap.String("table", r.table), zap.Error(err))
		return nil, fmt.Errorf("%w: query %s: %w", domain.ErrStoreUnavailable, r.table, err)
	}
	defer rows.Close()

	var out []domain.StoredRate
	for rows.Next() {
		var s domain.StoredRate
		var rate string
		if err := rows.Scan(&s.ID, &s.Currency, &rate, &s.ObservedAt); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %w", domain.ErrStoreUnavailable, r.table, err)
		}
		s.Rate, err = decimal.NewFromString(rate)
		if err != nil {
			return nil, fmt.Errorf("%w: parse rate %q: %w", domain.ErrStoreUnavailable, rate, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows %s: %w", domain.ErrStoreUnavailable, r.table, err)
	}
	metrics.FallbackReads.WithLabelValues(string(r.class)).Inc()
	return out, nil
}
