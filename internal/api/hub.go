package api

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/talgya/ironmarch/internal/engine"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The read API is public; the event stream is too.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans game events out to connected websocket clients. Clients are
// write-only from the server's perspective; anything they send is discarded.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan engine.Event
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]chan engine.Event)}
}

// Broadcast queues an event for every connected client. Slow clients drop
// events rather than stalling the game loop.
func (h *Hub) Broadcast(events []engine.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, e := range events {
		for _, ch := range h.clients {
			select {
			case ch <- e:
			default:
			}
		}
	}
}

// ClientCount returns how many clients are connected.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) add(conn *websocket.Conn) chan engine.Event {
	ch := make(chan engine.Event, 64)
	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()
	return ch
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if ch, ok := h.clients[conn]; ok {
		close(ch)
		delete(h.clients, conn)
	}
	h.mu.Unlock()
	conn.Close()
}

// handleWS upgrades the connection and streams events until the client
// disconnects.
func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	ch := h.add(conn)
	slog.Info("websocket client connected", "remote", conn.RemoteAddr(), "clients", h.ClientCount())

	// Reader goroutine: its only job is to notice the disconnect.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.remove(conn)
				return
			}
		}
	}()

	for e := range ch {
		if err := conn.WriteJSON(e); err != nil {
			h.remove(conn)
			return
		}
	}
}
