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

	"github.com/jask/lunchtray/internal/config"
	"github.com/jask/lunchtray/internal/database"
	"github.com/jask/lunchtray/internal/database/repository"
	"github.com/jask/lunchtray/internal/logging"
	"github.com/jask/lunchtray/internal/menu"
	"github.com/jask/lunchtray/internal/messaging"
	"github.com/jask/lunchtray/internal/service"
	"github.com/jask/lunchtray/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.SeedMenu(ctx, db, menu.Catalog()); err != nil {
		log.Fatalf("seed menu: %v", err)
	}

	// repositories
	menuRepo := repository.NewMenuRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	checkout := &service.CheckoutService{Orders: orderRepo, Log: logger}
	if publisher := kitchenPublisher(ctx, cfg.Kitchen, logger); publisher != nil {
		defer publisher.Close()
		checkout.Kitchen = publisher
	}

	logger.Info("starting",
		zap.String("db", cfg.Database.Path),
		zap.String("tax_rate", cfg.TaxRate().String()),
		zap.Bool("kitchen", checkout.Kitchen != nil))

	p := tea.NewProgram(tui.New(ctx, cfg, tui.Services{
		Menu:        &service.MenuService{Menu: menuRepo},
		Checkout:    checkout,
		Maintenance: &service.MaintenanceService{DB: db},
	}, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// kitchenPublisher connects to the broker when configured. Ordering still
// works without it, so a failed dial only disables tickets.
func kitchenPublisher(ctx context.Context, cfg config.KitchenConfig, logger *zap.Logger) *messaging.Publisher {
	if cfg.AMQPURL == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	conn, err := messaging.Dial(ctx, cfg.AMQPURL, cfg.Exchange, logger)
	if err != nil {
		logger.Warn("kitchen tickets disabled", zap.Error(err))
		fmt.Fprintf(os.Stderr, "warn: kitchen tickets disabled: %v\n", err)
		return nil
	}
	return messaging.NewPublisher(conn, logger)
}
