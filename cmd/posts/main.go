package main

import (
	"context"
	"log"

	"adminpanel/cmd/app"
	"adminpanel/internal/config"
	"adminpanel/internal/logger"
)

func main() {
	// setting up config
	cfg := config.LoadConfig("posts")

	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer lg.Sync()

	db, handler, err := app.Posts(context.Background(), cfg, lg)
	if err != nil {
		lg.Fatal("failed to start posts service", "error", err)
	}
	defer db.CloseDB()

	lg.Info("database ready", "db", cfg.DB.DbNAME)

	if err := app.Serve(cfg, handler, lg); err != nil {
		lg.Error("server stopped", "error", err)
	}
}
