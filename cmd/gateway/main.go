package main

import (
	"context"
	"log"

	"adminpanel/cmd/app"
	"adminpanel/internal/config"
	"adminpanel/internal/logger"
)

func main() {
	cfg := config.LoadConfig("gateway")

	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer lg.Sync()

	if cfg.JWTSecretKey == "" {
		lg.Warn("JWT_SECRET_KEY is not set, /api and /uploads are open")
	}

	handler, err := app.Gateway(context.Background(), cfg, lg)
	if err != nil {
		lg.Fatal("failed to start gateway", "error", err)
	}

	lg.Info("upstreams", "users", cfg.Upstream.UsersURL, "posts", cfg.Upstream.PostsURL)

	if err := app.Serve(cfg, handler, lg); err != nil {
		lg.Error("server stopped", "error", err)
	}
}
