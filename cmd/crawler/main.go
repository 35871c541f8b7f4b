// Package main runs the otr-online.ru article scraper as a single batch
// invocation. There are no flags; the config path and optional integrations
// come from the environment.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"otrscraper/internal/config"
	"otrscraper/internal/crawler"
	"otrscraper/internal/logger"
	"otrscraper/internal/metrics"
	"otrscraper/internal/politeness"
	"otrscraper/internal/storage"
)

const (
	defaultConfigPath = "configs/crawler.yaml"
	robotsUserAgent   = "otrscraper/1.0"
)

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("SCRAPER_CONFIG")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg := logger.New(cfg.Logging.Level)
	logg.Info("configuration loaded", "path", configPath, "config", cfg.String())

	if addr := os.Getenv("METRICS_ADDR"); addr != "" {
		go func() {
			if err := metrics.Serve(addr); err != nil {
				logg.Error("metrics server stopped", "error", err)
			}
		}()
	}

	if err := storage.PrepareEnvironment(cfg.Output.BasePath); err != nil {
		log.Fatalf("failed to prepare output directory: %v", err)
	}

	ctx := context.Background()

	archive, err := storage.NewArchive(ctx, os.Getenv("MONGODB_URI"))
	if err != nil {
		log.Fatalf("failed to open archive: %v", err)
	}
	defer archive.Close(ctx)

	seedFetcher := crawler.NewFetcher(cfg, "")
	articleFetcher := crawler.NewFetcher(cfg, "utf-8")

	if cfg.Politeness.RespectRobots || cfg.Politeness.RequestsPerSecond > 0 {
		var gate *politeness.Gate
		if cfg.Politeness.RespectRobots {
			gate = politeness.NewGate(robotsUserAgent, cfg.Timeout())
		}

		seedFetcher.UsePoliteness(gate, cfg.Politeness.RequestsPerSecond)
		articleFetcher.UsePoliteness(gate, cfg.Politeness.RequestsPerSecond)
	}

	collector := crawler.NewCollector(cfg, seedFetcher, logg)
	extractor := crawler.NewExtractor(articleFetcher, logg)
	store := storage.NewStore(cfg.Output.BasePath)

	pipeline := crawler.NewPipeline(collector, extractor, store, archive, logg)

	summary, err := pipeline.Run(ctx)
	if err != nil {
		log.Fatalf("scrape run failed: %v", err)
	}

	fmt.Println(summary.Render())
	logg.Info("scrape complete", "persisted", summary.Saved(), "output", cfg.Output.BasePath)
}
