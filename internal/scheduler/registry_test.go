package scheduler

import (
	"context"
	"testing"
)

type noopJob struct{ name string }

func (j noopJob) Name() string                { return j.name }
func (j noopJob) Run(_ context.Context) error { return nil }

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(noopJob{name: "a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(noopJob{name: "a"}); err == nil {
		t.Fatal("expected duplicate name to be rejected")
	}
	if err := r.Register(nil); err == nil {
		t.Fatal("expected nil job to be rejected")
	}
}

func TestRegistryPreservesOrder(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"first", "second", "third"} {
		if err := r.Register(noopJob{name: name}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	jobs := r.Jobs()
	if len(jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(jobs))
	}
	for i, want := range []string{"first", "second", "third"} {
		if jobs[i].Name() != want {
			t.Errorf("position %d: expected %s, got %s", i, want, jobs[i].Name())
		}
	}
}
