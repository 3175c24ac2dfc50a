package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// MemoryStore keeps jobs in process memory. Expired jobs are dropped lazily.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[types.ID]*Job
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryStore creates a MemoryStore. A zero ttl keeps jobs forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		jobs: make(map[types.ID]*Job),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Save stores a copy of job.
func (s *MemoryStore) Save(ctx context.Context, job *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	stored := *job
	s.jobs[job.ID] = &stored
	return nil
}

// Get returns a copy of the job.
func (s *MemoryStore) Get(ctx context.Context, id types.ID) (*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok || s.expired(job) {
		return nil, notFound(id)
	}
	out := *job
	return &out, nil
}

// Health always reports healthy.
func (s *MemoryStore) Health(ctx context.Context) types.HealthStatus {
	return types.Healthy("in-memory job store")
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) expired(job *Job) bool {
	return s.ttl > 0 && s.now().Sub(job.UpdatedAt) > s.ttl
}

func (s *MemoryStore) pruneLocked() {
	for id, job := range s.jobs {
		if s.expired(job) {
			delete(s.jobs, id)
		}
	}
}
