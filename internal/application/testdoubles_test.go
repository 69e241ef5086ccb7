package application

import (
	"context"
	"fmt"
	"sync"

	"currency-rates-service/internal/domain"
)

type fakeUpstream struct {
	obs []domain.RateObservation
	err error
}

func (f *fakeUpstream) Fetch(context.Context) ([]domain.RateObservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.obs, nil
}

type fakeStore struct {
	mu        sync.Mutex
	rows      []domain.StoredRate
	nextID    int64
	insertErr error
	latest    []domain.StoredRate
	latestErr error

	inFlight    int
	maxInFlight int
	gate        chan struct{}
}

func (f *fakeStore) Insert(_ context.Context, o domain.RateObservation) (domain.StoredRate, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	if f.gate != nil {
		<-f.gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--
	if f.insertErr != nil {
		return domain.StoredRate{}, f.insertErr
	}
	f.nextID++
	s := domain.StoredRate{ID: f.nextID, Currency: o.Currency, Rate: o.Rate, ObservedAt: o.ObservedAt}
	f.rows = append(f.rows, s)
	return s, nil
}

func (f *fakeStore) LatestPerCurrency(context.Context) ([]domain.StoredRate, error) {
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	return f.latest, nil
}

func (f *fakeStore) inserted() []domain.StoredRate {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.StoredRate, len(f.rows))
	copy(out, f.rows)
	return out
}

func upstreamErr(cause string) error {
	return fmt.Errorf("%w: %s", domain.ErrUpstreamUnavailable, cause)
}

func storeErr(cause string) error {
	return fmt.Errorf("%w: %s", domain.ErrStoreUnavailable, cause)
}
