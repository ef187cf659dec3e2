package api

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/airdelay-sim/airdelay-sim/sim"
)

// broadcastBuffer bounds the events queued between the driver and the hub
// loop. Publish drops events once it is full.
const broadcastBuffer = 256

// Hub maintains the set of active websocket clients and broadcasts driver
// events to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex
}

// NewHub initializes a new Hub. Call Run to start serving it.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
	}
}

// Run handles registrations and broadcasts until ctx is cancelled, then
// disconnects every client. Run must be called at most once.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			logrus.Info("Websocket hub shutting down")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mu.Unlock()
			logrus.Debugf("Websocket client connected (%d total)", n)
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				logrus.Debug("Websocket client disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// slow consumer
					close(client.send)
					delete(h.clients, client)
					logrus.Warn("Dropped slow websocket client")
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish serializes ev and queues it for broadcast. It never blocks, so it
// is safe to use directly as a sim.Listener.
func (h *Hub) Publish(ev sim.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		logrus.Errorf("Failed to serialize %s event: %v", ev.Type, err)
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		logrus.Warnf("Broadcast queue full, dropping %s event", ev.Type)
	}
}

// join hands c to the hub loop. It reports false once the hub has stopped.
func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// leave removes c from the hub; a no-op once the hub has stopped.
func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
