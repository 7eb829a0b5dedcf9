package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	app "github.com/playforgeinc/gridgame-backend/internal"
	"github.com/playforgeinc/gridgame-backend/internal/config"
)

const defaultConfigPath = "config.yml"

func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := config.MustLoad(resolveConfigPath())
	logger := initLogger(conf)

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// resolveConfigPath picks the config file location: the -config flag wins,
// then the CONFIG_PATH variable, then config.yml next to the working
// directory.
func resolveConfigPath() string {
	flagPath := flag.String("config", "", "path to the config file")
	flag.Parse()

	if *flagPath != "" {
		return *flagPath
	}

	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return envPath
	}

	return defaultConfigPath
}

func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
