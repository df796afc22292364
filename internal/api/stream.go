// Live day-advanced stream over websocket.
package api

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	maxStreamConns = 16
	writeWait      = 5 * time.Second
	pingInterval   = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// CORS is handled at the HTTP layer; the handshake itself is open.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamHub fans day events out to connected clients.
type streamHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]chan any
}

func newStreamHub() *streamHub {
	return &streamHub{conns: make(map[*websocket.Conn]chan any)}
}

func (h *streamHub) add(conn *websocket.Conn) (chan any, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.conns) >= maxStreamConns {
		return nil, false
	}
	ch := make(chan any, 8)
	h.conns[conn] = ch
	return ch, true
}

func (h *streamHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.conns[conn]; ok {
		close(ch)
		delete(h.conns, conn)
	}
}

// broadcast sends to every client, dropping messages for clients whose
// buffers are full rather than blocking the tick.
func (h *streamHub) broadcast(payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.conns {
		select {
		case ch <- payload:
		default:
		}
	}
}

// handleStream upgrades to a websocket and pushes one JSON message per
// advanced day.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("stream upgrade failed", "error", err)
		return
	}

	ch, ok := s.hub.add(conn)
	if !ok {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "too many connections"),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}
	slog.Info("stream client connected", "remote", r.RemoteAddr)

	// Reader goroutine: detect client disconnect.
	go func() {
		defer s.hub.remove(conn)
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	defer conn.Close()

	for {
		select {
		case payload, open := <-ch:
			if !open {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(payload); err != nil {
				s.hub.remove(conn)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.hub.remove(conn)
				return
			}
		}
	}
}
