package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ETCTracker/internal/config"
	"ETCTracker/internal/logger"
	"ETCTracker/internal/market"
	"ETCTracker/internal/narrative"
	"ETCTracker/internal/news"
	"ETCTracker/internal/pipeline"
	"ETCTracker/internal/publish"
	"ETCTracker/internal/recorder"
	"ETCTracker/internal/scheduler"
	"ETCTracker/internal/store"
)

func main() {
	_ = godotenv.Load()
	logger.Init()
	logger.Log.Info("ETC Tracker starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Log.Fatalf("config validation: %v", err)
	}

	// Quote source is mandatory; everything below is optional and disables
	// exactly its own stage when absent.
	fetcher := market.NewCoinGeckoFetcher(cfg.Asset.QuoteBaseURL)
	logger.Log.Infof("quote source: %s (%s)", fetcher.Name(), cfg.Asset.ID)

	var newsFetcher news.Fetcher
	if cfg.News.APIKey != "" {
		newsFetcher = news.NewNewsAPIClient(cfg.News.BaseURL, cfg.News.APIKey)
	} else {
		logger.Log.Warn("NEWSAPI_API_KEY absent — news runs disabled")
	}

	var generator narrative.Generator
	if cfg.Anthropic.APIKey != "" {
		generator = narrative.NewAnthropicGenerator(cfg.Anthropic.APIKey)
	} else {
		logger.Log.Warn("ANTHROPIC_API_KEY absent — deterministic analysis only")
	}

	// Channels declare themselves unconfigured when credentials are missing;
	// the dispatcher records them as skipped.
	dispatcher := publish.NewDispatcher(
		publish.NewBeehiivChannel(cfg.Beehiiv.APIKey, cfg.Beehiiv.PublicationID),
		publish.NewTelegramChannel(cfg.Telegram.BotToken, cfg.Telegram.ChatID),
	)

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			logger.Log.Warnf("init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	p := &pipeline.Pipeline{
		AssetID:    cfg.Asset.ID,
		NewsQuery:  cfg.News.Query,
		NewsMax:    cfg.News.MaxItems,
		Market:     fetcher,
		News:       newsFetcher,
		Generator:  generator,
		Store:      store.NewFileStore(cfg.Content.Dir),
		Dispatcher: dispatcher,
		Recorder:   rec,
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, p)
	if err := sched.RegisterAll(cfg.Schedule.MarketCron, cfg.Schedule.NewsCron); err != nil {
		logger.Log.Fatalf("register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		logger.Log.Info("RUN_ON_START enabled, executing both runs now")
		go func() {
			sched.RunMarketNow()
			sched.RunNewsNow()
		}()
	}

	logger.Log.Info("ETC Tracker is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Log.Info("shutdown signal received, stopping...")
	cancel()
	logger.Log.Info("ETC Tracker stopped")
}
