package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"adminpanel/internal/client"
	"adminpanel/internal/config"
	"adminpanel/internal/database"
	handlers "adminpanel/internal/handler"
	"adminpanel/internal/logger"
	"adminpanel/internal/middleware"
	"adminpanel/internal/repository"
	"adminpanel/internal/service"
	"adminpanel/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// Users wires the users service: its database, repository, services and router.
func Users(ctx context.Context, cfg *config.Config, log *logger.Logger) (*database.DB, http.Handler, error) {
	db, err := database.ConnectDB(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("connect users db: %w", err)
	}

	services := service.NewService(repository.NewRepository(db.DB))
	h := handlers.NewHandlers(services, cfg, log)

	return db, withMiddleware(handlers.NewUsersRouter(h), log), nil
}

// Posts wires the posts service. The users table must already exist because
// posts.user_id references it.
func Posts(ctx context.Context, cfg *config.Config, log *logger.Logger) (*database.DB, http.Handler, error) {
	db, err := database.ConnectDB(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("connect posts db: %w", err)
	}

	services := service.NewService(repository.NewRepository(db.DB))
	h := handlers.NewHandlers(services, cfg, log)

	return db, withMiddleware(handlers.NewPostsRouter(h), log), nil
}

// Gateway wires the upstream clients, the aggregator and the upload helper.
func Gateway(ctx context.Context, cfg *config.Config, log *logger.Logger) (http.Handler, error) {
	httpClient := client.NewHTTPClient(cfg.Upstream.Timeout)
	users := client.NewUsersClient(cfg.Upstream.UsersURL, httpClient)
	posts := client.NewPostsClient(cfg.Upstream.PostsURL, httpClient)

	minioClient, err := storage.NewMinIOClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	g := &handlers.GatewayHandlers{
		Users:      users,
		Posts:      posts,
		Aggregator: service.NewAggregatorService(users, posts, cfg.Upstream.Timeout),
		Uploads:    service.NewUploadService(minioClient),
		Cfg:        cfg,
		Log:        log,
	}

	router := handlers.NewGatewayRouter(g)
	return middleware.Chain(
		router,
		middleware.AuthMiddleware(cfg),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware(log),
	), nil
}

func withMiddleware(h http.Handler, log *logger.Logger) http.Handler {
	return middleware.Chain(
		h,
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware(log),
	)
}

// Serve listens on cfg.ServerPort until SIGINT or SIGTERM, then drains
// in-flight requests.
func Serve(cfg *config.Config, h http.Handler, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", "service", cfg.Service, "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", "service", cfg.Service)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
