package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/playforgeinc/gridgame-backend/internal/entity"
	"github.com/playforgeinc/gridgame-backend/internal/game"
)

type sessionManager interface {
	CreateSession(ctx context.Context, size int) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	Play(ctx context.Context, id string, cell int) (game.Snapshot, error)
	JumpTo(ctx context.Context, id string, move int) (game.Snapshot, error)
	Restart(ctx context.Context, id string) (game.Snapshot, error)
	DeleteSession(ctx context.Context, id string) error
	RecentResults(ctx context.Context, limit int) ([]*entity.GameResult, error)
}

// NewRouter wires the JSON API. watch, when non-nil, is mounted as the
// websocket watch endpoint under the session subtree.
func NewRouter(logger *slog.Logger, manager sessionManager, watch http.HandlerFunc) http.Handler {
	router := chi.NewRouter()
	h := &handlers{logger: logger, manager: manager}

	router.Get("/ping", h.ping)
	router.Get("/results", h.results)
	router.Post("/sessions", h.create)
	router.Route("/sessions/{id}", func(router chi.Router) {
		router.Get("/", h.snapshot)
		router.Delete("/", h.remove)
		router.Get("/history", h.history)
		router.Post("/moves", h.play)
		router.Post("/jump", h.jump)
		router.Post("/restart", h.restart)
		if watch != nil {
			router.Get("/watch", watch)
		}
	})

	return router
}

// Start serves the router until ctx is canceled. Watch connections are
// long-lived, so only header read and idle timeouts apply.
func Start(ctx context.Context, logger *slog.Logger, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}

		logger.Info("HTTP server stopped")
		return nil
	}
}
