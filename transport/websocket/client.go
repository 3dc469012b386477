package websocket

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// client wraps one live connection. Writes are serialized because gorilla
// allows only a single concurrent writer per connection.
type client struct {
	id   string
	conn *websocket.Conn

	writeMutex sync.Mutex
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		id:   uuid.NewString(),
		conn: conn,
	}
}

func (that *client) ID() string {
	return that.id
}

func (that *client) WriteJSON(v any) error {
	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	if err := that.conn.WriteJSON(v); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *client) Close() {
	_ = that.conn.Close()
}
