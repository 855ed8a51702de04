package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pixil98/go-progression/cmd/progression/command"
	"github.com/pixil98/go-service/service"
)

// logConfig is read from the environment so logging is set up before the
// service config is loaded.
type logConfig struct {
	Level  string `env:"PROGRESSION_LOG_LEVEL" envDefault:"info"`
	Format string `env:"PROGRESSION_LOG_FORMAT" envDefault:"text"`
}

func newLogger(cfg logConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(cfg.Format) {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
}

func main() {
	var lc logConfig
	if err := env.Parse(&lc); err != nil {
		slog.Error("parsing environment", "error", err)
		os.Exit(1)
	}

	logger, err := newLogger(lc)
	if err != nil {
		slog.Error("configuring logging", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	app, err := service.NewApp(&command.Config{}, command.BuildWorkers)
	if err != nil {
		slog.Error("creating application", "error", err)
		os.Exit(1)
	}

	err = app.Run(context.Background())
	if err != nil {
		slog.Error("running application", "error", err)
		os.Exit(1)
	}

	slog.Info("exiting")
}
