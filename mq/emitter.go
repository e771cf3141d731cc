package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Channel all plan lifecycle events go through.
const PlanEventsChannel = "workplan-events"

// Event names emitted by the work-plan handlers.
const (
	EventPlanCreated       = "workplan-created"
	EventPlanStatusChanged = "workplan-status-changed"
	EventTaskStatusChanged = "task-status-changed"
	EventTaskCompleted     = "task-completed"
)

// Event is one plan lifecycle notification. The name is the contract; the
// rest is routing detail for subscribers.
type Event struct {
	Name   string    `json:"name"`
	PlanID string    `json:"planId,omitempty"`
	TaskID string    `json:"taskId,omitempty"`
	UserID string    `json:"userId,omitempty"`
	Status string    `json:"status,omitempty"`
	At     time.Time `json:"at"`
}

// Emitter publishes plan events over Redis pub/sub. One Emitter is built at
// startup and handed to whoever needs to publish or subscribe; there is no
// package-level instance.
type Emitter struct {
	conn    *redis.Client
	channel string
}

func NewEmitter(conn *redis.Client) *Emitter {
	return &Emitter{conn: conn, channel: PlanEventsChannel}
}

// Emit publishes ev. Failures are logged and dropped: events are
// best-effort notifications, never part of the request outcome.
func (e *Emitter) Emit(ctx context.Context, ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[mq] failed to marshal event %q: %v", ev.Name, err)
		return
	}

	if err := e.conn.Publish(ctx, e.channel, data).Err(); err != nil {
		log.Printf("[mq] failed to publish event %q: %v", ev.Name, err)
	}
}

// Subscribe returns a channel of decoded events. The channel closes when ctx
// is cancelled.
func (e *Emitter) Subscribe(ctx context.Context) <-chan Event {
	sub := e.conn.Subscribe(ctx, e.channel)
	out := make(chan Event)

	go func() {
		defer close(out)
		defer sub.Close()

		for msg := range sub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("[mq] failed to parse event: %v", err)
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
