package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/dgouveia/contacasa/internal/config"
	"github.com/dgouveia/contacasa/internal/database"
	"github.com/dgouveia/contacasa/internal/observability"
	"github.com/dgouveia/contacasa/internal/orchestrator"
	"github.com/dgouveia/contacasa/internal/service"
	"github.com/dgouveia/contacasa/internal/storage"
	"github.com/dgouveia/contacasa/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	store := storage.New(db, storage.Options{SeedDemo: cfg.Database.SeedDemo})
	if err := store.Initialize(ctx); err != nil {
		log.Fatalf("initialize storage: %v", err)
	}

	latency := time.Duration(cfg.UI.LatencyMS) * time.Millisecond
	orch := orchestrator.New(store,
		orchestrator.WithLatency(latency),
		orchestrator.WithNoticeTTL(time.Duration(cfg.UI.NoticeTTLMS)*time.Millisecond),
		orchestrator.WithLogger(logger),
	)
	if err := orch.Bootstrap(ctx); err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	checkout := &service.CheckoutService{Users: store, Latency: latency}

	logger.Info("starting", zap.String("db", cfg.Database.Path))

	p := tea.NewProgram(tui.New(ctx, orch, checkout, cfg.UI.CurrencySymbol), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
