package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Simplici0/costsheet/internal/api"
	"github.com/Simplici0/costsheet/internal/config"
	"github.com/Simplici0/costsheet/internal/costsheet"
	"github.com/Simplici0/costsheet/internal/db"
	"github.com/Simplici0/costsheet/internal/migrations"
	"github.com/Simplici0/costsheet/internal/seed"
	"github.com/Simplici0/costsheet/internal/server"
	"github.com/Simplici0/costsheet/internal/store"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database.DB); err != nil {
		log.Fatalf("failed to run database migrations: %v", err)
	}
	if version, err := migrations.Version(database.DB); err == nil {
		log.Printf("database schema at version %d", version)
	}

	stats, err := seed.Run(ctx, database)
	if err != nil {
		log.Fatalf("failed to seed rate tables: %v", err)
	}
	log.Printf("rate tables seeded: %d inserted, %d updated", stats.Inserts, stats.Updates)

	regime, err := costsheet.ParseRegime(cfg.DefaultRegime)
	if err != nil {
		log.Printf("warning: %v, defaulting to %s", err, costsheet.RegimeRealProfit)
		regime = costsheet.RegimeRealProfit
	}

	if cfg.IsDev() {
		log.Printf("config: env=%s engine=%s db=%s regime=%s months=%d", cfg.Env, cfg.Engine, cfg.DBPath, regime, cfg.ContractMonths)
	}

	handler := api.New(store.NewRateStore(database), store.NewProposalStore(database), api.Options{
		AdminToken:            cfg.AdminToken,
		DefaultRegime:         regime,
		DefaultContractMonths: cfg.ContractMonths,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (%s)", addr, cfg.Engine)
	if err := server.Run(ctx, cfg.Engine, addr, server.NewRouter(handler)); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
	log.Printf("server stopped")
}
