package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/playforgeinc/gridgame-backend/internal/config"
	"github.com/playforgeinc/gridgame-backend/internal/repository"
	"github.com/playforgeinc/gridgame-backend/internal/repository/storage"
	"github.com/playforgeinc/gridgame-backend/internal/repository/storage/sqlite"
	"github.com/playforgeinc/gridgame-backend/internal/usecase"
	"github.com/playforgeinc/gridgame-backend/transport/rest"
	"github.com/playforgeinc/gridgame-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := sqlite.New(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	sessionRepo := repository.NewSessionRepository(redisStorage.Connection)
	resultRepo := repository.NewResultRepository(sqliteStorage)

	hub := websocket.NewHub(logger.With("component", "hub"))
	sessionManager := usecase.NewSessionManager(logger, sessionRepo, resultRepo, hub)
	wsServer := websocket.NewServer(logger.With("component", "websocket"), hub, sessionManager)

	router := rest.NewRouter(logger.With("component", "rest"), sessionManager, wsServer.Watch)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = rest.Start(ctx, logger, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}
