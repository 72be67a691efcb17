package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Helm/internal/config"
	"github.com/MikeSquared-Agency/Helm/internal/fuzzy"
	"github.com/MikeSquared-Agency/Helm/internal/racingline"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "helm",
		Short:        "Fuzzy steering controller for a car tracking a racing line",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	root.AddCommand(
		newServeCmd(&configPath),
		newEvalCmd(&configPath),
		newSurfaceCmd(&configPath),
		newFLLCmd(&configPath),
	)
	return root
}

func newLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.Format) == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// buildEngine loads the configuration and builds the racing line engine
// with the configured operators.
func buildEngine(configPath string) (*config.Config, *fuzzy.Engine, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	ops, err := cfg.Operators()
	if err != nil {
		return nil, nil, err
	}
	e, err := racingline.NewEngine(racingline.Options{Operators: &ops})
	if err != nil {
		return nil, nil, fmt.Errorf("build engine: %w", err)
	}
	return cfg, e, nil
}
