package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "chance-chess/internal/api/http"
	"chance-chess/internal/api/ws"
	"chance-chess/internal/config"
	"chance-chess/internal/room"
	"chance-chess/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title Chance Chess API
// @version 1.0
// @description REST and WebSocket API for chess with coin-toss and dice turn variants (Go + Gin)
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.Level())
	logger, err := zcfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	gin.SetMode(gin.ReleaseMode)
	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, *cfg, logger.Named("room"))
	hub := ws.NewHub(rm, cfg.AllowedOrigins, logger.Named("ws"))
	rm.SetBroadcaster(hub)
	r := httpapi.NewRouter(rm, mem, hub, *cfg, logger.Named("http"))

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("variant", cfg.DefaultVariant))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
