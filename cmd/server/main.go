// Package main - Entry point for the cloudpool server
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"cloudpool/adapters/storage"
	"cloudpool/api"
	"cloudpool/core/catalog"
	"cloudpool/core/extract"
	"cloudpool/core/pool"
	"cloudpool/core/pricing"
	"cloudpool/internal/config"
	"cloudpool/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgPath := flag.String("config", "", "config file path")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg := config.Get()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(loaded)
		cfg = loaded
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}

	cat := catalog.Default()
	if cfg.Catalog.OverridePath != "" {
		if err := cat.LoadHCL(cfg.Catalog.OverridePath); err != nil {
			logging.Error("loading catalog overrides", zap.Error(err))
			os.Exit(1)
		}
	}
	if err := cat.Validate(); err != nil {
		logging.Error("validating catalog", zap.Error(err))
		os.Exit(1)
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		logging.Error("opening invoice store", zap.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	calc := pricing.NewCalculator(cat)
	extractCfg := extract.DefaultConfig()
	if cfg.Extract.LookaheadChars > 0 {
		extractCfg.LookaheadChars = cfg.Extract.LookaheadChars
	}
	if cfg.Extract.LookaheadLines > 0 {
		extractCfg.LookaheadLines = cfg.Extract.LookaheadLines
	}
	if cfg.Extract.YQuantum > 0 {
		extractCfg.YQuantum = cfg.Extract.YQuantum
	}
	if cfg.Catalog.DefaultRegion != "" {
		extractCfg.Region = cfg.Catalog.DefaultRegion
	}

	server := api.NewServer(api.Options{
		Store:     store,
		Extractor: extract.New(calc, extractCfg),
		Allocator: pool.NewAllocator(calc),
		Version:   version,
	})

	listen := cfg.Server.Addr
	if *addr != "" {
		listen = *addr
	}

	logging.Info("cloudpool server listening",
		zap.String("addr", listen),
		zap.String("version", version),
		zap.String("storage", cfg.Storage.Backend))

	if err := http.ListenAndServe(listen, server); err != nil {
		logging.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
