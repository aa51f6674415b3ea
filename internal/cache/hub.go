package cache

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Hub fans library invalidation events out to websocket subscribers
// and in-process listeners. It also owns the snapshot store so every
// Notify invalidates before anyone is told to refetch.
type Hub struct {
	store *Store

	mu        sync.Mutex
	wsClients map[*websocket.Conn]struct{}
	listeners []func(Event)
}

func NewHub(store *Store) *Hub {
	return &Hub{
		store:     store,
		wsClients: make(map[*websocket.Conn]struct{}),
	}
}

func (h *Hub) Store() *Store {
	return h.store
}

// Subscribe registers an in-process listener. Listeners run on the
// notifying goroutine and must be quick.
func (h *Hub) Subscribe(fn func(Event)) {
	h.mu.Lock()
	h.listeners = append(h.listeners, fn)
	h.mu.Unlock()
}

func (h *Hub) AddWS(ws *websocket.Conn) {
	h.mu.Lock()
	h.wsClients[ws] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) RemoveWS(ws *websocket.Conn) {
	h.mu.Lock()
	delete(h.wsClients, ws)
	h.mu.Unlock()
	_ = ws.Close()
}

// Notify invalidates the user's snapshot and broadcasts the event.
// Dead websocket connections are pruned on write failure.
func (h *Hub) Notify(username, reason string) {
	h.store.Invalidate(username)

	ev := Event{
		Type:     EventInvalidated,
		Username: username,
		Reason:   reason,
		At:       time.Now().UTC(),
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	payload = append(payload, '\n')

	h.mu.Lock()
	listeners := append([]func(Event){}, h.listeners...)
	for ws := range h.wsClients {
		_ = ws.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if err := ws.WriteMessage(websocket.TextMessage, payload); err != nil {
			_ = ws.Close()
			delete(h.wsClients, ws)
		}
	}
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

// Count reports connected websocket subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.wsClients)
}
