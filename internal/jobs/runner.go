package jobs

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Kamal2131/langchain-neo4j/internal/observability"
	"github.com/Kamal2131/langchain-neo4j/internal/qa"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// Runner answers submitted questions on a fixed pool of workers.
type Runner struct {
	store    Store
	answerer Answerer
	queue    chan types.ID
	workers  int
	logger   *observability.TracedLogger
	metrics  *observability.Metrics
	now      func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger.
func WithLogger(logger *observability.TracedLogger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *observability.Metrics) RunnerOption {
	return func(r *Runner) {
		r.metrics = m
	}
}

// NewRunner creates a Runner with the given worker count and queue capacity.
func NewRunner(store Store, answerer Answerer, workers, queueSize int, opts ...RunnerOption) *Runner {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	r := &Runner{
		store:    store,
		answerer: answerer,
		queue:    make(chan types.ID, queueSize),
		workers:  workers,
		logger:   observability.NewNopLogger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the job store.
func (r *Runner) Store() Store {
	return r.store
}

// Submit records a PENDING job and queues it. A full queue is an error and
// the job is stored as FAILURE.
func (r *Runner) Submit(ctx context.Context, req Request) (*Job, error) {
	now := r.now()
	job := &Job{
		ID:           types.NewID(),
		Question:     strings.TrimSpace(req.Question),
		IncludeQuery: req.IncludeQuery,
		Provider:     req.Provider,
		State:        StatePending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := r.store.Save(ctx, job); err != nil {
		return nil, err
	}

	select {
	case r.queue <- job.ID:
		r.logger.Info(ctx, "task queued", "task_id", job.ID)
		return job, nil
	default:
		job.State = StateFailure
		job.Error = "task queue is full"
		job.UpdatedAt = r.now()
		_ = r.store.Save(ctx, job)
		r.metrics.ObserveJob(string(StateFailure))
		return nil, types.NewRetryableError(ErrCodeJobQueueFull, "task queue is full, try again later")
	}
}

// Get returns the job with the given id.
func (r *Runner) Get(ctx context.Context, id types.ID) (*Job, error) {
	return r.store.Get(ctx, id)
}

// Run processes queued jobs until ctx is done, then waits for in-flight jobs.
func (r *Runner) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case id := <-r.queue:
					r.process(ctx, id)
				}
			}
		}()
	}
	wg.Wait()
	r.drain(context.WithoutCancel(ctx))
	return nil
}

// drain fails every job still queued at shutdown so clients polling for it
// see a final state instead of PENDING until the TTL runs out.
func (r *Runner) drain(ctx context.Context) {
	for {
		select {
		case id := <-r.queue:
			job, err := r.store.Get(ctx, id)
			if err != nil {
				r.logger.Error(ctx, "queued task vanished", "task_id", id, "error", err)
				continue
			}
			job.State = StateFailure
			job.Error = "service shut down before the task ran"
			job.UpdatedAt = r.now()
			if err := r.store.Save(ctx, job); err != nil {
				r.logger.Error(ctx, "failed to fail drained task", "task_id", id, "error", err)
				continue
			}
			r.metrics.ObserveJob(string(StateFailure))
		default:
			return
		}
	}
}

func (r *Runner) process(ctx context.Context, id types.ID) {
	// Store writes outlive shutdown so an interrupted job still lands in a final state.
	storeCtx := context.WithoutCancel(ctx)

	job, err := r.store.Get(storeCtx, id)
	if err != nil {
		r.logger.Error(ctx, "queued task vanished", "task_id", id, "error", err)
		return
	}

	ctx = observability.WithRequestID(ctx, id.String())

	job.State = StateProgress
	job.UpdatedAt = r.now()
	if err := r.store.Save(storeCtx, job); err != nil {
		r.logger.Error(ctx, "failed to mark task in progress", "error", err)
	}

	outcome, err := r.answer(ctx, job)
	if err != nil {
		job.State = StateFailure
		job.Error = err.Error()
	} else {
		job.State = StateSuccess
		stored := *outcome
		stored.History = nil
		job.Outcome = &stored
	}
	job.UpdatedAt = r.now()

	if err := r.store.Save(storeCtx, job); err != nil {
		r.logger.Error(ctx, "failed to store task result", "error", err)
	}
	r.metrics.ObserveJob(string(job.State))
	r.logger.Info(ctx, "task finished", "task_id", job.ID, "state", job.State)
}

func (r *Runner) answer(ctx context.Context, job *Job) (outcome *qa.Outcome, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("task panicked: %v", p)
		}
	}()
	return r.answerer.Answer(ctx, job.Question, job.IncludeQuery, job.Provider)
}
