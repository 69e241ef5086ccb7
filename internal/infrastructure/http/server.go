package httpserver

import (
	"context"
	"encoding/json"
	"net/http"

	"currency-rates-service/internal/application"
	"currency-rates-service/internal/infrastructure/logx"

	"go.uber.org/zap"
)

type Server struct {
	svc   *application.CurrencyRatesService
	ready func(ctx context.Context) error
}

func NewServer(svc *application.CurrencyRatesService) *Server { return &Server{svc: svc} }

// SetReadyCheck installs the /readyz probe, typically a DB ping.
func (s *Server) SetReadyCheck(fn func(ctx context.Context) error) { s.ready = fn }

func (s *Server) GetCurrencyRates(w http.ResponseWriter, r *http.Request) {
	// In-flight fetches and their DB writes run to completion even if
	// the caller disconnects.
	ctx := context.WithoutCancel(r.Context())

	rates, err := s.svc.GetCurrencyRates(ctx)
	if err != nil {
		logx.L().Error("aggregate failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "currency rates unavailable")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(rates))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Code: status, Message: msg})
}
