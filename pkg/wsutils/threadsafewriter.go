package wsutils

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Roster and lobby events are small JSON frames, anything larger is a
// misbehaving client.
const maxMessageSize = 32 << 10

// ThreadSafeWriter serializes writes to a websocket connection. Gorilla
// connections support one concurrent reader and one concurrent writer only.
type ThreadSafeWriter struct {
	*websocket.Conn
	sync.Mutex
}

func NewThreadSafeWriter(conn *websocket.Conn) *ThreadSafeWriter {
	conn.SetReadLimit(maxMessageSize)
	return &ThreadSafeWriter{
		Conn: conn,
	}
}

func (t *ThreadSafeWriter) WriteJSON(val any) error {
	t.Lock()
	defer t.Unlock()

	return t.Conn.WriteJSON(val)
}

func (t *ThreadSafeWriter) ReadJSON(val any) error {
	return t.Conn.ReadJSON(val)
}

func (t *ThreadSafeWriter) Close() error {
	return t.Conn.Close()
}
