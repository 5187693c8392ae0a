package scheduler

import (
	"context"

	"github.com/brewthree/brewpos-backend/pkg/errors"
)

// Job is one unit of periodic background work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Registry holds the jobs a worker runs each tick, in registration order.
type Registry struct {
	jobs []Job
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Register(job Job) error {
	if job == nil {
		return errors.New(errors.CodeInternal, "scheduler: nil job")
	}
	for _, existing := range r.jobs {
		if existing.Name() == job.Name() {
			return errors.New(errors.CodeInternal, "scheduler: duplicate job name "+job.Name())
		}
	}
	r.jobs = append(r.jobs, job)
	return nil
}

func (r *Registry) Jobs() []Job {
	out := make([]Job, len(r.jobs))
	copy(out, r.jobs)
	return out
}
