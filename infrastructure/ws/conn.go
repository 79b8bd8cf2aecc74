package ws

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"chat-relay/domain/event"

	"github.com/gorilla/websocket"
)

// wsConn adapts one websocket connection to the EventSink contract.
// Broadcast events are queued on a buffered channel; a dedicated write
// pump owns all socket writes (gorilla allows a single writer).
type wsConn struct {
	id        string
	conn      *websocket.Conn
	out       chan OutEnvelope
	closed    chan struct{}
	closeOnce sync.Once
	log       *slog.Logger
}

func newWsConn(id string, conn *websocket.Conn, bufferSize int, log *slog.Logger) *wsConn {
	return &wsConn{
		id:     id,
		conn:   conn,
		out:    make(chan OutEnvelope, bufferSize),
		closed: make(chan struct{}),
		log:    log,
	}
}

// Consume is called by the broadcaster. The event goes through this
// connection's channel; the write pump takes it from there. A full
// buffer drops the event: delivery is best-effort and a slow consumer
// must not stall the room.
func (c *wsConn) Consume(ctx context.Context, e event.Event) error {
	envelope := OutEnvelope{Event: e.Name(), Payload: e.Payload()}
	select {
	case c.out <- envelope:
		return nil
	case <-c.closed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		c.log.Debug("Connection buffer full, dropping event",
			"connection_id", c.id, "event", e.Name())
		return nil
	}
}

// writePump serializes all writes to the socket and keeps the peer
// alive with periodic pings.
func (c *wsConn) writePump(ctx context.Context, pingEvery time.Duration) {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()

	for {
		select {
		case envelope := <-c.out:
			if err := c.conn.WriteJSON(envelope); err != nil {
				c.log.Debug("Write failed, closing connection",
					"connection_id", c.id, "err", err)
				c.close()
				return
			}
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-c.closed:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (c *wsConn) close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		_ = c.conn.Close()
	})
}
