package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dashboard/internal/api"
	"dashboard/internal/compose"
	"dashboard/internal/config"
	"dashboard/internal/engine"
	"dashboard/internal/render"
)

func main() {
	var configPath, addr, dataDir, sqlite, logLevel string
	var dev bool

	flag.StringVar(&configPath, "config", "", "YAML configuration file.")
	flag.StringVar(&addr, "addr", "", "Listen address, overrides the config file.")
	flag.StringVar(&dataDir, "data-dir", "", "Directory holding the CSV and JSON inputs.")
	flag.StringVar(&sqlite, "sqlite", "", "Read every input from this SQLite database instead.")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error.")
	flag.BoolVar(&dev, "dev", false, "Human readable development logging.")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	override(&cfg.Addr, addr)
	override(&cfg.DataDir, dataDir)
	override(&cfg.SQLite, sqlite)
	override(&cfg.LogLevel, logLevel)
	cfg.Development = cfg.Development || dev
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	setupLog := logger.WithName("setup")

	manifest, err := cfg.Manifest()
	if err != nil {
		setupLog.Error(err, "invalid configuration")
		os.Exit(1)
	}

	// 1. Initialize Echo (starts instantly)
	// Until the data is loaded every data route answers 503
	h := api.NewHandler(render.New(cfg.Chart.Width, cfg.Chart.Height, logger), logger)
	e := api.NewServer(h, cfg.RateLimit, logger.WithName("http"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Load the datasets in the background
	go func() {
		store, err := engine.Load(ctx, manifest, logger.WithName("engine"))
		if err != nil {
			setupLog.Error(err, "unable to load datasets")
			os.Exit(1)
		}
		d := compose.NewDashboard(store, compose.DefaultRegistries(),
			compose.New(cfg.ComposeOptions(), logger), logger)
		if err := d.Validate(); err != nil {
			setupLog.Error(err, "dimension registry does not match the datasets")
			os.Exit(1)
		}
		h.SetDashboard(d)
		setupLog.Info("dashboard ready")
	}()

	// 3. Start server
	go func() {
		setupLog.Info("listening", "addr", cfg.Addr, "dataDir", cfg.DataDir, "sqlite", cfg.SQLite)
		if err := e.Start(cfg.Addr); err != nil && err != http.ErrServerClosed {
			setupLog.Error(err, "server failed")
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		setupLog.Error(err, "shutdown failed")
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func newLogger(cfg config.Config) (logr.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return logr.Discard(), err
	}
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	zl, err := zc.Build()
	if err != nil {
		return logr.Discard(), err
	}
	return zapr.NewLogger(zl).WithName("dashboard"), nil
}
