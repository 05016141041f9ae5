package room

import (
	"context"
	"sync"
	"time"

	"github.com/harshil753/overcast-sub001/pkg/executils"
	"github.com/harshil753/overcast-sub001/pkg/wsutils"
)

// notifierWriteTimeout bounds fan-out writes so one stalled lobby connection
// cannot wedge the dispatch loop.
const notifierWriteTimeout = 5 * time.Second

// Notifier fans "the room list changed" events out to lobby websocket
// listeners. Dispatches coalesce: a pending update already forces listeners
// to refetch, so bursts collapse into one event.
type Notifier struct {
	listeners   map[string]*wsutils.ThreadSafeWriter
	updateCh    chan struct{}
	listenersMu sync.Mutex
}

func (n *Notifier) Listen(id string, w *wsutils.ThreadSafeWriter) {
	n.listenersMu.Lock()
	defer n.listenersMu.Unlock()
	n.listeners[id] = w
}

func (n *Notifier) Stop(id string) {
	n.listenersMu.Lock()
	defer n.listenersMu.Unlock()
	delete(n.listeners, id)
}

func (n *Notifier) ListenerCount() int {
	n.listenersMu.Lock()
	defer n.listenersMu.Unlock()
	return len(n.listeners)
}

// DispatchRoomUpdate never blocks and never holds the listener mutex across
// the channel send, so roster handlers stay live even when the fan-out loop
// is busy.
func (n *Notifier) DispatchRoomUpdate() {
	if n.ListenerCount() == 0 {
		return
	}

	select {
	case n.updateCh <- struct{}{}:
	default:
	}
}

func (n *Notifier) getListeners() (result []*wsutils.ThreadSafeWriter) {
	n.listenersMu.Lock()
	defer n.listenersMu.Unlock()

	for _, listener := range n.listeners {
		result = append(result, listener)
	}
	return
}

func (n *Notifier) OnRoomUpdate(ctx context.Context, fn func(*wsutils.ThreadSafeWriter)) {
	var threshold uint64 = 1000000
	var step uint64 = 2
	for {
		select {
		case <-ctx.Done():
			return
		case <-n.updateCh:
			executils.ParallelExec(n.getListeners(), threshold, step, func(w *wsutils.ThreadSafeWriter) {
				w.SetWriteDeadline(time.Now().Add(notifierWriteTimeout))
				fn(w)
			})
		}
	}
}

func NewNotifier() *Notifier {
	return &Notifier{
		listeners: make(map[string]*wsutils.ThreadSafeWriter),
		updateCh:  make(chan struct{}, 1),
	}
}
