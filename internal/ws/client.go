package ws

import (
	"sync"
	"time"

	"tapcoin_webapp/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second
)

type Client struct {
	AccountID int64
	Conn      *websocket.Conn
	Send      chan []byte

	hub       *Hub
	closeOnce sync.Once
}

func NewClient(accountID int64, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		AccountID: accountID,
		Conn:      conn,
		Send:      make(chan []byte, 64),
		hub:       hub,
	}
}

// Run registers the client and blocks until the connection drops.
func (c *Client) Run() {
	c.hub.register(c)
	go c.writePump()
	c.readPump()
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.hub.unregister(c)
		close(c.Send)
		_ = c.Conn.Close()
	})
}

// readPump discards inbound frames; the socket is push-only. It exists
// to service pong handlers and to notice the peer going away.
func (c *Client) readPump() {
	defer c.Close()

	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("ws read error", "account_id", c.AccountID, "err", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
