package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/complaint-service/internal/mailer"
)

// Job is one queued notification email.
type Job struct {
	ID      string         `json:"id"`
	Message mailer.Message `json:"message"`
}

// Queue carries notification jobs from request handlers to the worker.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	// Dequeue blocks up to its internal timeout and returns nil when no
	// job arrived.
	Dequeue(ctx context.Context) (*Job, error)
}

type redisQueue struct {
	client *redis.Client
	key    string
}

// NewRedisQueue returns a Redis list-backed queue.
func NewRedisQueue(client *redis.Client, key string) Queue {
	return &redisQueue{client: client, key: key}
}

func (q *redisQueue) Enqueue(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, payload).Err()
}

func (q *redisQueue) Dequeue(ctx context.Context) (*Job, error) {
	res, err := q.client.BRPop(ctx, 2*time.Second, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	// BRPop returns [key, value].
	if len(res) != 2 {
		return nil, nil
	}
	var job Job
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return nil, err
	}
	return &job, nil
}
