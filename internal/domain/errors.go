package domain

import "errors"

var (
	// ErrUpstreamUnavailable covers every provider-side failure: non-2xx
	// status, transport error, malformed body, timeout. Legs recover from
	// it by reading the latest stored snapshot.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrStoreUnavailable covers database failures on insert or read.
	// It is never recovered and surfaces to the caller.
	ErrStoreUnavailable = errors.New("store unavailable")
)
