package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/frankievx/watercolor-rose/internal/config"
	"github.com/frankievx/watercolor-rose/internal/engine"
	"github.com/frankievx/watercolor-rose/internal/loader"
	"github.com/frankievx/watercolor-rose/internal/logger"
	"github.com/frankievx/watercolor-rose/internal/watercolor"
	"go.uber.org/zap"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		logger.Log.Error("watercolor-rose failed", zap.Error(err))
		logger.Sync()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Sync()
}

// setupLogging installs the configured logger. An empty level keeps the
// production info logger.
func setupLogging(cfg config.LoggingConfig) error {
	if cfg.Level == "" {
		logger.Init()
		return nil
	}
	return logger.InitWithLevel(cfg.Level, cfg.Development)
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := setupLogging(cfg.Logging); err != nil {
		return err
	}
	logger.Log.Info("Watercolor rose starting", zap.String("config", configPath))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := time.Now().UnixNano()
	if cfg.Material.Seed != nil {
		seed = *cfg.Material.Seed
	}
	assets, err := loader.LoadAssets(ctx, loader.AssetRequest{
		ModelPath:       cfg.Assets.ModelPath,
		MeshName:        cfg.Assets.MeshName,
		PaperPath:       cfg.Assets.PaperPath,
		ProceduralPaper: cfg.Assets.ProceduralPaper,
		PaperSeed:       seed,
		ShowProgress:    cfg.Assets.ShowProgress,
	})
	if err != nil {
		return fmt.Errorf("load assets: %w", err)
	}

	composer, err := watercolor.NewComposer(watercolor.OptionsFromConfig(cfg), assets)
	if err != nil {
		return err
	}

	return engine.NewGopher(cfg.Window).Run(ctx, composer)
}
