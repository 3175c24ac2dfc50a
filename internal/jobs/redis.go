package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// DefaultKeyPrefix namespaces job keys in redis.
const DefaultKeyPrefix = "neo4jqa:task:"

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	URL    string        // redis://[:password@]host:port/db
	Prefix string        // Key prefix, default DefaultKeyPrefix
	TTL    time.Duration // Expiration for jobs, 0 keeps them forever
}

// RedisStore keeps jobs in redis as JSON strings with an expiry, so several
// server processes can share them.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to the redis server at opts.URL.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, types.WrapError(ErrCodeJobStoreFailed, "invalid redis url", err)
	}
	return NewRedisStoreFromClient(redis.NewClient(redisOpts), opts.Prefix, opts.TTL), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(id types.ID) string {
	return s.prefix + id.String()
}

// Save stores job and resets its expiry.
func (s *RedisStore) Save(ctx context.Context, job *Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return types.WrapError(ErrCodeJobStoreFailed, "failed to marshal task", err)
	}

	if err := s.client.Set(ctx, s.key(job.ID), data, s.ttl).Err(); err != nil {
		return types.WrapError(ErrCodeJobStoreFailed, fmt.Sprintf("failed to save task %s to redis", job.ID), err)
	}
	return nil
}

// Get loads a job.
func (s *RedisStore) Get(ctx context.Context, id types.ID) (*Job, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, notFound(id)
		}
		return nil, types.WrapError(ErrCodeJobStoreFailed, fmt.Sprintf("failed to load task %s from redis", id), err)
	}

	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, types.WrapError(ErrCodeJobStoreFailed, "failed to unmarshal task", err)
	}
	return &job, nil
}

// Health pings the server.
func (s *RedisStore) Health(ctx context.Context) types.HealthStatus {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return types.Unhealthy("redis: " + err.Error())
	}
	return types.Healthy("redis job store")
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
