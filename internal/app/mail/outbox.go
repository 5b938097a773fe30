package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Message is one queued welcome email.
type Message struct {
	ID       string    `json:"id"`
	To       string    `json:"to"`
	Name     string    `json:"name"`
	QueuedAt time.Time `json:"queued_at"`
}

// RedisOutbox queues welcome emails for the mail worker. Registration
// only ever enqueues; delivery (and delivery failure) is the worker's
// problem, so a broken mail relay can never fail a registration.
type RedisOutbox struct {
	rdb   *redis.Client
	queue string
}

func NewRedisOutbox(rdb *redis.Client, queue string) *RedisOutbox {
	return &RedisOutbox{rdb: rdb, queue: queue}
}

func (o *RedisOutbox) Enqueue(ctx context.Context, msg Message) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.QueuedAt.IsZero() {
		msg.QueuedAt = time.Now()
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("RedisOutbox.Enqueue: %w", err)
	}
	if err := o.rdb.LPush(ctx, o.queue, payload).Err(); err != nil {
		return fmt.Errorf("RedisOutbox.Enqueue: %w", err)
	}
	return nil
}
