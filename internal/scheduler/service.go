package scheduler

import (
	"context"
	"time"

	"go.uber.org/multierr"

	"github.com/brewthree/brewpos-backend/pkg/config"
	"github.com/brewthree/brewpos-backend/pkg/errors"
	"github.com/brewthree/brewpos-backend/pkg/logger"
	"github.com/brewthree/brewpos-backend/pkg/metrics"
)

// Service drives the registry on a fixed interval. Multiple worker replicas
// may run concurrently; the redis lock ensures only one executes each tick.
type Service struct {
	registry *Registry
	lock     *tickLock
	log      *logger.Logger
	metrics  *metrics.SchedulerMetrics

	interval   time.Duration
	jobTimeout time.Duration
}

type Params struct {
	Registry *Registry
	Redis    locker
	Log      *logger.Logger
	Metrics  *metrics.SchedulerMetrics
	Config   config.SchedulerConfig
}

func NewService(p Params) (*Service, error) {
	if p.Registry == nil {
		return nil, errors.New(errors.CodeInternal, "scheduler: registry is required")
	}
	if p.Redis == nil {
		return nil, errors.New(errors.CodeInternal, "scheduler: redis is required")
	}
	if p.Log == nil {
		return nil, errors.New(errors.CodeInternal, "scheduler: logger is required")
	}
	if p.Metrics == nil {
		return nil, errors.New(errors.CodeInternal, "scheduler: metrics is required")
	}

	interval := p.Config.TickInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	jobTimeout := p.Config.JobTimeout
	if jobTimeout <= 0 {
		jobTimeout = 20 * time.Second
	}
	lockTTL := p.Config.LockTTL
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}

	return &Service{
		registry:   p.Registry,
		lock:       newTickLock(p.Redis, lockTTL),
		log:        p.Log,
		metrics:    p.Metrics,
		interval:   interval,
		jobTimeout: jobTimeout,
	}, nil
}

// Run ticks until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info(s.log.WithField(ctx, "interval", s.interval.String()), "scheduler started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info(ctx, "scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs every registered job once. A failing job never prevents the
// remaining jobs from running.
func (s *Service) tick(ctx context.Context) {
	release, acquired, err := s.lock.acquire(ctx)
	if err != nil {
		s.log.Error(ctx, "acquiring scheduler lock", err)
		return
	}
	if !acquired {
		s.metrics.LockContention.Inc()
		return
	}
	defer release()

	var errs error
	for _, job := range s.registry.Jobs() {
		errs = multierr.Append(errs, s.runJob(ctx, job))
	}
	if errs != nil {
		s.log.Error(ctx, "scheduler tick had failures", errs)
	}
}

func (s *Service) runJob(ctx context.Context, job Job) error {
	jobCtx, cancel := context.WithTimeout(ctx, s.jobTimeout)
	defer cancel()

	start := time.Now()
	err := job.Run(jobCtx)
	duration := time.Since(start)

	s.metrics.JobRuns.WithLabelValues(job.Name()).Inc()
	s.metrics.JobDuration.WithLabelValues(job.Name()).Observe(duration.Seconds())

	if err != nil {
		s.metrics.JobFailures.WithLabelValues(job.Name()).Inc()
		jobLogCtx := s.log.WithField(ctx, "job", job.Name())
		s.log.Error(jobLogCtx, "scheduler job failed", err)
		return err
	}
	return nil
}
