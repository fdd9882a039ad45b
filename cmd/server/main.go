package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hikari-lab/lessonsim/internal/carddb"
	"github.com/hikari-lab/lessonsim/internal/config"
	"github.com/hikari-lab/lessonsim/internal/game/card"
	"github.com/hikari-lab/lessonsim/internal/server"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting lessonsim server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	roster, err := loadRoster(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to load card roster", zap.Error(err))
	}
	logger.Info("card roster loaded",
		zap.Int("cards", len(roster)),
		zap.String("source", cfg.Data.Source),
	)

	srv := server.New(cfg.Server, roster, logger)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Error("server error", zap.Error(err))
		}
	}()

	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown error", zap.Error(err))
	}

	logger.Info("lessonsim server stopped")
}

// loadRoster reads the card roster from the configured source.
func loadRoster(ctx context.Context, cfg *config.Config, logger *zap.Logger) ([]card.Card, error) {
	switch cfg.Data.Source {
	case "postgres":
		repo, err := carddb.NewRepository(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		defer repo.Close()
		return repo.ListCards(ctx)
	case "file", "":
		return carddb.LoadFile(cfg.Data.CardsPath)
	}
	return nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
