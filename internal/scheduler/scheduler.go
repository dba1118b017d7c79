package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"ETCTracker/internal/logger"
	"ETCTracker/internal/pipeline"
)

// Scheduler manages the cron tasks driving the daily runs.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *pipeline.Pipeline
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, p *pipeline.Pipeline) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Pipeline: p,
		Ctx:      ctx,
	}
}

// RegisterAll registers the market and news runs.
func (s *Scheduler) RegisterAll(marketCron, newsCron string) error {
	if _, err := s.Cron.AddFunc(marketCron, s.RunMarketNow); err != nil {
		return fmt.Errorf("register market task: %w", err)
	}
	if _, err := s.Cron.AddFunc(newsCron, s.RunNewsNow); err != nil {
		return fmt.Errorf("register news task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.Log.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	logger.Log.Info("scheduler stopped")
}

// RunMarketNow executes the market run immediately (cron or RUN_ON_START).
func (s *Scheduler) RunMarketNow() {
	if _, err := s.Pipeline.RunMarket(s.Ctx); err != nil {
		logger.Log.Errorf("market run: %v", err)
	}
}

// RunNewsNow executes the news run immediately.
func (s *Scheduler) RunNewsNow() {
	if _, err := s.Pipeline.RunNews(s.Ctx); err != nil {
		logger.Log.Errorf("news run: %v", err)
	}
}
