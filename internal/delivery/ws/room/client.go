package ws_room

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	usecase_session "github.com/planningpoko/core/internal/usecase/session"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 4096
	sendBufferSize = 32
)

// Client is one websocket connection. Its id is the session id the
// engine tracks subscriptions and the registry by.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan usecase_session.Event
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan usecase_session.Event, sendBufferSize),
	}
}

// trySend queues an event for the client, dropping it when the buffer
// is full rather than blocking a broadcast.
func (c *Client) trySend(event usecase_session.Event) bool {
	select {
	case c.send <- event:
		return true
	default:
		return false
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for event := range c.send {
		if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := c.conn.WriteJSON(event); err != nil {
			return
		}
	}
}
