package ws

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubPublishFanout(t *testing.T) {
	hub := NewHub()

	a := &Client{AccountID: 1, Send: make(chan []byte, 4), hub: hub}
	b := &Client{AccountID: 1, Send: make(chan []byte, 4), hub: hub}
	other := &Client{AccountID: 2, Send: make(chan []byte, 4), hub: hub}
	hub.register(a)
	hub.register(b)
	hub.register(other)

	hub.Publish(1, "balance", map[string]int64{"coins": 42})

	for _, c := range []*Client{a, b} {
		select {
		case raw := <-c.Send:
			var msg struct {
				Type string           `json:"type"`
				Data map[string]int64 `json:"data"`
			}
			if err := json.Unmarshal(raw, &msg); err != nil {
				t.Fatalf("bad payload: %v", err)
			}
			if msg.Type != "balance" || msg.Data["coins"] != 42 {
				t.Fatalf("unexpected message: %s", raw)
			}
		case <-time.After(time.Second):
			t.Fatal("expected message was not delivered")
		}
	}

	select {
	case raw := <-other.Send:
		t.Fatalf("account 2 should not receive account 1 events, got %s", raw)
	default:
	}
}

func TestHubUnregisterDropsAccount(t *testing.T) {
	hub := NewHub()
	c := &Client{AccountID: 7, Send: make(chan []byte, 1), hub: hub}

	hub.register(c)
	if hub.Online() != 1 {
		t.Fatalf("expected 1 online, got %d", hub.Online())
	}

	hub.unregister(c)
	if hub.Online() != 0 {
		t.Fatalf("expected 0 online, got %d", hub.Online())
	}

	// publishing to a gone account must not panic or block
	hub.Publish(7, "balance", nil)
}
