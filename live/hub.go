// Package live pushes plan lifecycle events to connected clients over
// websockets. Clients subscribe per plan; the hub fans events for that plan
// out to every subscriber.
package live

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"fieldops/mq"
)

type Client struct {
	Send   chan []byte
	PlanID string
	UserID string
}

type broadcastMsg struct {
	PlanID string
	Data   []byte
}

type Hub struct {
	plans      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		plans:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.plans[c.PlanID] == nil {
				h.plans[c.PlanID] = make(map[*Client]bool)
			}
			h.plans[c.PlanID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if subs := h.plans[c.PlanID]; subs != nil && subs[c] {
				delete(subs, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.plans[m.PlanID] {
				select {
				case c.Send <- m.Data:
				default:
					// slow client, drop it
					close(c.Send)
					delete(h.plans[m.PlanID], c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for planID, subs := range h.plans {
				for c := range subs {
					close(c.Send)
				}
				delete(h.plans, planID)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) Register(c *Client)   { h.register <- c }
func (h *Hub) Unregister(c *Client) { h.unregister <- c }

// Broadcast sends data to every subscriber of planID.
func (h *Hub) Broadcast(planID string, data []byte) {
	h.broadcast <- broadcastMsg{PlanID: planID, Data: data}
}

// Relay consumes the emitter's event stream and forwards each event to the
// subscribers of its plan. Blocks until ctx is cancelled; run it in a
// goroutine next to Run.
func (h *Hub) Relay(ctx context.Context, emitter *mq.Emitter) {
	for ev := range emitter.Subscribe(ctx) {
		if ev.PlanID == "" {
			continue
		}
		data, err := json.Marshal(ev)
		if err != nil {
			log.Printf("[live] failed to marshal event %q: %v", ev.Name, err)
			continue
		}
		h.Broadcast(ev.PlanID, data)
	}
}
