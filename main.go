package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/status-im/market-assistant/config"
	"github.com/status-im/market-assistant/core"
)

var (
	configPath = flag.String("config", "config.yaml", "Path to the YAML configuration file")
	debug      = flag.Bool("debug", false, "Enable debug logging")
	jsonLogs   = flag.Bool("json-logs", false, "Write logs as JSON instead of console output")
)

func main() {
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if !*jsonLogs {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	cfg, err := config.LoadConfig(*configPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("path", *configPath).Msg("Config file not found, using defaults")
		cfg, err = config.Parse(nil)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry, err := core.Setup(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up services")
	}

	if err := registry.StartAll(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start services")
	}
	log.Info().Str("port", cfg.Server.Port).Msg("Market assistant started")

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal, stopping services...")

	cancel()
	registry.StopAll()
	log.Info().Msg("Shutdown complete")
}
