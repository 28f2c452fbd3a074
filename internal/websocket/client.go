package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second

	pongWait = 60 * time.Second

	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4 * 1024
)

func NewClient(hub *Hub, conn *websocket.Conn, roomID uuid.UUID) *Client {
	return &Client{
		ID:     uuid.New(),
		RoomID: roomID,
		Conn:   conn,
		Send:   make(chan []byte, 32),
		Hub:    hub,
	}
}

// ReadPump drains the connection. Subscribers are observers; the only inbound
// traffic we care about is keepalive.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws read error: %v", err)
			}
			break
		}
		// TypePong and anything else inbound is ignored.
	}
}

// WritePump pushes queued snapshots and pings to the client.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			c.Conn.WriteMessage(websocket.TextMessage, message)

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendError pushes an error envelope to this client, dropping it if the
// queue is full.
func (c *Client) SendError(errorMsg string) error {
	msg := Message{Type: TypeError, Timestamp: time.Now()}
	data, err := json.Marshal(map[string]string{"error": errorMsg})
	if err != nil {
		return err
	}
	msg.Data = data
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	select {
	case c.Send <- payload:
		return nil
	default:
		return ErrClientQueueFull
	}
}
