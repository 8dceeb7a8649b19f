package ws

import (
	"encoding/json"
	"sync"

	"tapcoin_webapp/internal/logger"
)

// Hub keeps one connection set per account and pushes balance/state
// updates to every device the account has open.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int64]map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.AccountID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.AccountID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.AccountID]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.AccountID)
	}
}

// Publish sends a typed event to every open connection of the account.
// Slow connections are dropped rather than blocking the caller.
func (h *Hub) Publish(accountID int64, event string, payload any) {
	msg, err := json.Marshal(map[string]any{"type": event, "data": payload})
	if err != nil {
		logger.Error("ws publish marshal failed", "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[accountID] {
		select {
		case c.Send <- msg:
		default:
			go c.Close()
		}
	}
}

// Broadcast sends a typed event to every connected client.
func (h *Hub) Broadcast(event string, payload any) {
	msg, err := json.Marshal(map[string]any{"type": event, "data": payload})
	if err != nil {
		logger.Error("ws broadcast marshal failed", "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, set := range h.clients {
		for c := range set {
			select {
			case c.Send <- msg:
			default:
				go c.Close()
			}
		}
	}
}

// Online reports how many accounts have at least one open connection.
func (h *Hub) Online() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
