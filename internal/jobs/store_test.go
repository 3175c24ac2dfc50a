package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamal2131/langchain-neo4j/internal/qa"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

func sampleJob() *Job {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &Job{
		ID:        types.NewID(),
		Question:  "Show me all active projects",
		State:     StateSuccess,
		CreatedAt: now,
		UpdatedAt: now,
		Outcome: &qa.Outcome{
			Question: "Show me all active projects",
			Answer:   "AI Chatbot is active.",
			Status:   qa.StatusAnswered,
			Attempts: 1,
		},
	}
}

// exerciseStore runs the behavior every Store must share.
func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()
	job := sampleJob()

	require.NoError(t, store.Save(ctx, job))

	loaded, err := store.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, loaded.ID)
	assert.Equal(t, StateSuccess, loaded.State)
	require.NotNil(t, loaded.Outcome)
	assert.Equal(t, "AI Chatbot is active.", loaded.Outcome.Answer)
	assert.True(t, loaded.CreatedAt.Equal(job.CreatedAt))

	job.State = StateFailure
	require.NoError(t, store.Save(ctx, job))
	loaded, err = store.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, StateFailure, loaded.State)

	_, err = store.Get(ctx, types.NewID())
	assert.True(t, types.HasCode(err, ErrCodeJobNotFound))

	assert.True(t, store.Health(ctx).IsHealthy())
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Hour))
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	job := sampleJob()
	job.UpdatedAt = now
	require.NoError(t, store.Save(context.Background(), job))

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err := store.Get(context.Background(), job.ID)
	assert.True(t, types.HasCode(err, ErrCodeJobNotFound))

	require.NoError(t, store.Save(context.Background(), sampleJob()))
	assert.Len(t, store.jobs, 1)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore(0)
	job := sampleJob()
	require.NoError(t, store.Save(context.Background(), job))

	job.Question = "changed"
	loaded, err := store.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Show me all active projects", loaded.Question)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := NewRedisStore(RedisOptions{URL: "redis://" + mr.Addr() + "/0", TTL: time.Hour})
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)
}

func TestRedisStore_KeysAndTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreFromClient(client, "test:", time.Hour)
	defer store.Close()

	job := sampleJob()
	require.NoError(t, store.Save(context.Background(), job))

	key := "test:" + job.ID.String()
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Hour, mr.TTL(key))

	mr.FastForward(2 * time.Hour)
	_, err := store.Get(context.Background(), job.ID)
	assert.True(t, types.HasCode(err, ErrCodeJobNotFound))
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	store := NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "", time.Hour)
	defer store.Close()
	mr.Close()

	assert.True(t, store.Health(context.Background()).IsUnhealthy())
	_, err = store.Get(context.Background(), types.NewID())
	assert.True(t, types.HasCode(err, ErrCodeJobStoreFailed))
}

func TestNewRedisStore_BadURL(t *testing.T) {
	_, err := NewRedisStore(RedisOptions{URL: "http://nope"})
	assert.True(t, types.HasCode(err, ErrCodeJobStoreFailed))
}
