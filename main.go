package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	_ "github.com/joho/godotenv/autoload"

	"github.com/kelwa413/portfolio/internal/config"
	"github.com/kelwa413/portfolio/internal/content"
	"github.com/kelwa413/portfolio/internal/session"
	"github.com/kelwa413/portfolio/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	site, err := content.Load(cfg.ContentPath)
	if err != nil {
		log.Fatalf("content: %v", err)
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := session.NewHub(site, clockwork.NewRealClock(), logger)
	go hub.Reap(ctx, cfg.SessionIdle, time.Minute)

	srv := newServer(cfg, site, hub, db, &smtpMailer{cfg: cfg, log: logger}, logger)
	go srv.admin.cleanupOldVisitorData(ctx)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.routes(),
	}
	go func() {
		logger.Info("listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	// Closing the hub ends every slideshow stream so Shutdown can drain.
	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
