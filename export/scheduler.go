package export

import (
	"context"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Scheduler invokes the export job on a fixed interval while the application runs
type Scheduler struct {
	job      *Job
	interval time.Duration
	logger   *zap.SugaredLogger

	cancel context.CancelFunc
	done   sync.WaitGroup
}

func NewScheduler(job *Job, cfg Config, logger *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		job:      job,
		interval: cfg.Interval,
		logger:   logger,
	}
}

func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.done.Add(1)
	go func() {
		defer s.done.Done()
		s.loop(ctx)
	}()
}

func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.done.Wait()
}

func (s *Scheduler) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			outcome := s.job.Run(ctx)
			s.logger.Infow("scheduled export run finished", "outcome", outcome)
		}
	}
}

// StartScheduler checks the configuration at startup so that problems are
// visible long before the first scheduled run
func StartScheduler(scheduler *Scheduler, job *Job, cfg Config, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) {
	logger.Infow("export scheduling", "enabled", cfg.Enabled, "interval", cfg.Interval)
	for _, problem := range job.ConfigurationProblems() {
		logger.Warnw("export is misconfigured", "problem", problem)
	}
	if cfg.LockTTL <= cfg.ArchiveTimeout {
		logger.Warnw("export lock ttl does not cover the archive timeout", "lockTTL", cfg.LockTTL, "archiveTimeout", cfg.ArchiveTimeout)
	}

	if !cfg.Enabled || cfg.Interval <= 0 {
		return
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			scheduler.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
}

var Module = fx.Options(
	fx.Provide(
		NewConfig,
		NewMetrics,
		NewJob,
		NewScheduler,
	),
)
