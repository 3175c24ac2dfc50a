package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamal2131/langchain-neo4j/internal/llm"
	"github.com/Kamal2131/langchain-neo4j/internal/qa"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

type fakeAnswerer struct {
	mu      sync.Mutex
	block   chan struct{}
	seen    []string
	outcome *qa.Outcome
	err     error
}

func (f *fakeAnswerer) Answer(ctx context.Context, question string, includeQuery bool, provider string) (*qa.Outcome, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	f.seen = append(f.seen, question)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := *f.outcome
	out.Question = question
	return &out, nil
}

func startRunner(t *testing.T, r *Runner) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = r.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func waitForState(t *testing.T, r *Runner, id types.ID, want State) *Job {
	t.Helper()
	var job *Job
	require.Eventually(t, func() bool {
		var err error
		job, err = r.Get(context.Background(), id)
		return err == nil && job.State == want
	}, 2*time.Second, 10*time.Millisecond)
	return job
}

func TestRunner_Success(t *testing.T) {
	answerer := &fakeAnswerer{outcome: &qa.Outcome{
		Answer:  "AI Chatbot is active.",
		Status:  qa.StatusAnswered,
		History: []qa.Attempt{{Query: qa.GeneratedQuery{Text: "MATCH (n) RETURN n"}}},
	}}
	r := NewRunner(NewMemoryStore(time.Hour), answerer, 2, 10)
	startRunner(t, r)

	job, err := r.Submit(context.Background(), Request{Question: " Show me all active projects "})
	require.NoError(t, err)
	assert.Equal(t, StatePending, job.State)
	assert.False(t, job.ID.IsZero())

	done := waitForState(t, r, job.ID, StateSuccess)
	require.NotNil(t, done.Outcome)
	assert.Equal(t, "Show me all active projects", done.Outcome.Question)
	assert.Nil(t, done.Outcome.History)
	assert.True(t, done.State.IsTerminal())
}

func TestRunner_Failure(t *testing.T) {
	answerer := &fakeAnswerer{err: llm.NewProviderNotFoundError("bard")}
	r := NewRunner(NewMemoryStore(time.Hour), answerer, 1, 10)
	startRunner(t, r)

	job, err := r.Submit(context.Background(), Request{Question: "q", Provider: "bard"})
	require.NoError(t, err)

	done := waitForState(t, r, job.ID, StateFailure)
	assert.Contains(t, done.Error, "bard")
}

func TestRunner_ProgressState(t *testing.T) {
	answerer := &fakeAnswerer{block: make(chan struct{}), outcome: &qa.Outcome{Status: qa.StatusNoResults}}
	r := NewRunner(NewMemoryStore(time.Hour), answerer, 1, 10)
	startRunner(t, r)

	job, err := r.Submit(context.Background(), Request{Question: "q"})
	require.NoError(t, err)

	waitForState(t, r, job.ID, StateProgress)
	close(answerer.block)
	waitForState(t, r, job.ID, StateSuccess)
}

func TestRunner_QueueFull(t *testing.T) {
	r := NewRunner(NewMemoryStore(time.Hour), &fakeAnswerer{}, 1, 1)

	_, err := r.Submit(context.Background(), Request{Question: "first"})
	require.NoError(t, err)

	_, err = r.Submit(context.Background(), Request{Question: "second"})
	assert.True(t, types.HasCode(err, ErrCodeJobQueueFull))
}

func TestRunner_UnknownJob(t *testing.T) {
	r := NewRunner(NewMemoryStore(time.Hour), &fakeAnswerer{}, 1, 1)
	_, err := r.Get(context.Background(), types.NewID())
	assert.True(t, types.HasCode(err, ErrCodeJobNotFound))
}

func TestRunner_ShutdownLeavesFinalStates(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(RedisOptions{URL: "redis://" + mr.Addr() + "/0", TTL: time.Hour})
	require.NoError(t, err)
	defer store.Close()

	answerer := &fakeAnswerer{block: make(chan struct{}), outcome: &qa.Outcome{Status: qa.StatusAnswered}}
	r := NewRunner(store, answerer, 1, 10)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = r.Run(ctx)
		close(done)
	}()

	inFlight, err := r.Submit(context.Background(), Request{Question: "first"})
	require.NoError(t, err)
	waitForState(t, r, inFlight.ID, StateProgress)

	queued, err := r.Submit(context.Background(), Request{Question: "second"})
	require.NoError(t, err)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}

	for _, id := range []types.ID{inFlight.ID, queued.ID} {
		job, err := r.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, StateFailure, job.State)
		assert.NotEmpty(t, job.Error)
	}
}
