package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// JobQueue is a durable work queue backed by a Redis list. Messages are
// UTF-8 JSON job payloads.
type JobQueue struct {
	client *redis.Client
	queue  string
}

func NewJobQueue(client *redis.Client, queue string) *JobQueue {
	return &JobQueue{client: client, queue: queue}
}

// Pop blocks up to timeout for the next payload. A timeout with no job is
// not an error; it returns (nil, nil).
func (q *JobQueue) Pop(ctx context.Context, timeout time.Duration) ([]byte, error) {
	vals, err := q.client.BRPop(ctx, timeout, q.queue).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("brpop %s: %w", q.queue, err)
	}
	if len(vals) < 2 {
		return nil, nil
	}
	return []byte(vals[1]), nil
}

// Push enqueues one payload at the head of the list; consumers pop from the
// tail, so delivery order follows enqueue order.
func (q *JobQueue) Push(ctx context.Context, payload []byte) error {
	if err := q.client.LPush(ctx, q.queue, payload).Err(); err != nil {
		return fmt.Errorf("lpush %s: %w", q.queue, err)
	}
	return nil
}
