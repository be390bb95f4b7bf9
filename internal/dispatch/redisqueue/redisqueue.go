// Package redisqueue is the external TaskDispatcher implementation: it
// pushes task envelopes onto a Redis list for an out-of-process worker to
// pop and execute (spec §9 Design Note: the in-process implementation is
// for tests/local runs, this one is "for deployment").
package redisqueue

import (
	"context"
	"encoding/json"

	"github.com/dom/matchcore/internal/dispatch"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Dispatcher pushes JSON task envelopes onto a Redis list.
type Dispatcher struct {
	client *redis.Client
	key    string
}

// New wraps an existing redis client. key is the list name tasks are
// pushed onto (RPUSH) and popped from (LPOP) by workers.
func New(client *redis.Client, key string) *Dispatcher {
	if key == "" {
		key = "matchcore:tasks"
	}
	return &Dispatcher{client: client, key: key}
}

var _ dispatch.Dispatcher = (*Dispatcher)(nil)

type envelope struct {
	ID       string            `json:"id"`
	TaskName string            `json:"taskName"`
	Args     map[string]string `json:"args"`
}

// Enqueue serializes the task and RPUSHes it. Delivery is at-least-once:
// a worker that crashes after popping but before finishing must re-deliver
// by a separate reliability mechanism (e.g. BLMOVE to a processing list),
// which is out of scope for this minimal interface.
func (d *Dispatcher) Enqueue(ctx context.Context, taskName string, args map[string]string) (string, error) {
	id := uuid.NewString()
	payload, err := json.Marshal(envelope{ID: id, TaskName: taskName, Args: args})
	if err != nil {
		return "", err
	}
	if err := d.client.RPush(ctx, d.key, payload).Err(); err != nil {
		return "", err
	}
	return id, nil
}
