package scheduler

import (
	"context"

	"go.uber.org/multierr"

	"github.com/brewthree/brewpos-backend/internal/orders"
	"github.com/brewthree/brewpos-backend/pkg/errors"
	"github.com/brewthree/brewpos-backend/pkg/logger"
	"github.com/brewthree/brewpos-backend/pkg/metrics"
)

// StatusAdvanceJob moves every non-terminal order exactly one step along the
// lifecycle per tick. Progress is strictly forward and one step at a time, so
// a freshly committed order takes three ticks to reach READY.
type StatusAdvanceJob struct {
	repo    orders.Repository
	log     *logger.Logger
	metrics *metrics.SchedulerMetrics
}

type StatusAdvanceParams struct {
	Repo    orders.Repository
	Log     *logger.Logger
	Metrics *metrics.SchedulerMetrics
}

func NewStatusAdvanceJob(p StatusAdvanceParams) (*StatusAdvanceJob, error) {
	if p.Repo == nil {
		return nil, errors.New(errors.CodeInternal, "status job: repo is required")
	}
	if p.Log == nil {
		return nil, errors.New(errors.CodeInternal, "status job: logger is required")
	}
	if p.Metrics == nil {
		return nil, errors.New(errors.CodeInternal, "status job: metrics is required")
	}
	return &StatusAdvanceJob{repo: p.Repo, log: p.Log, metrics: p.Metrics}, nil
}

func (j *StatusAdvanceJob) Name() string {
	return "order_status_advance"
}

func (j *StatusAdvanceJob) Run(ctx context.Context) error {
	open, err := j.repo.ListNonTerminal(ctx)
	if err != nil {
		return err
	}

	var errs error
	for _, order := range open {
		next, ok := order.Status.Next()
		if !ok {
			continue
		}

		moved, err := j.repo.AdvanceStatus(ctx, order.ID, order.Status, next)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if !moved {
			// Another worker already advanced this order.
			continue
		}

		j.metrics.OrdersAdvanced.Inc()
		logCtx := j.log.WithFields(ctx, map[string]any{
			"order_id": order.ID,
			"from":     order.Status.String(),
			"to":       next.String(),
		})
		j.log.Debug(logCtx, "order status advanced")
	}
	return errs
}
