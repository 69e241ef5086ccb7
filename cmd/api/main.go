package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"currency-rates-service/internal/bootstrap"
	"currency-rates-service/internal/config"
	httpserver "currency-rates-service/internal/infrastructure/http"
	"currency-rates-service/internal/infrastructure/logx"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logx.L().Fatal("load config", zap.Error(err))
	}
	logx.Init(cfg.LogLevel)
	logger := logx.L()

	app, cleanup, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		logger.Fatal("bootstrap", zap.Error(err))
	}
	defer cleanup()

	srv := httpserver.NewServer(app.Service)
	srv.SetReadyCheck(app.Ping)

	addr := ":" + cfg.HTTPServer.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      httpserver.NewRouter(srv),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	go func() {
		logger.Info("server started", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	logger.Info("server stopped")
}
