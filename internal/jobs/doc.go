// Package jobs answers questions asynchronously.
//
// A Runner queues submitted questions and answers them on a bounded pool of
// workers. Job state lives in a Store, in memory or in redis, and expires
// after the configured TTL.
package jobs
