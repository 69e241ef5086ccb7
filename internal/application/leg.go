package application

import (
	"context"
	"errors"
	"fmt"

	"currency-rates-service/internal/domain"
	"currency-rates-service/internal/infrastructure/logx"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultInsertLimit = 4

// Leg runs one rate class end to end: fetch from the upstream, persist
// every observation, and fall back to the stored snapshot when the
// upstream is unavailable.
type Leg struct {
	Class       domain.RateClass
	Client      UpstreamClient
	Store       RateStore
	InsertLimit int
}

// Run yields the leg's rate pairs. On the fresh path the order matches
// the upstream; on the fallback path it is unspecified. Store failures
// propagate, an unreachable upstream does not.
func (l *Leg) Run(ctx context.Context) ([]domain.RatePair, error) {
	log := logx.L().With(zap.String("class", string(l.Class)))

	obs, err := l.Client.Fetch(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrUpstreamUnavailable) {
			return nil, err
		}
		log.Warn("upstream fetch failed, falling back to store", zap.Error(err))
		return l.fallback(ctx)
	}

	if err := l.persist(ctx, obs); err != nil {
		return nil, err
	}

	out := make([]domain.RatePair, 0, len(obs))
	for _, o := range obs {
		out = append(out, o.Pair())
	}
	return out, nil
}

// persist writes every observation before the leg is considered done.
// Inserts fan out with a bounded limit so a large upstream batch cannot
// drain the connection pool.
func (l *Leg) persist(ctx context.Context, obs []domain.RateObservation) error {
	limit := l.InsertLimit
	if limit <= 0 {
		limit = defaultInsertLimit
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, o := range obs {
		o := o
		g.Go(func() error {
			if _, err := l.Store.Insert(gctx, o); err != nil {
				return fmt.Errorf("persist %s %s: %w", l.Class, o.Currency, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (l *Leg) fallback(ctx context.Context) ([]domain.RatePair, error) {
	rows, err := l.Store.LatestPerCurrency(ctx)
	if err != nil {
		return nil, fmt.Errorf("fallback %s: %w", l.Class, err)
	}
	logx.L().Info("serving stored snapshot",
		zap.String("class", string(l.Class)),
		zap.Int("count", len(rows)),
	)
	out := make([]domain.RatePair, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Pair())
	}
	return out, nil
}
