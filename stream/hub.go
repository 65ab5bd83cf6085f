// Package stream publishes the model orientation to websocket clients.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"gonum.org/v1/gonum/num/quat"

	"github.com/pthm-cable/spin/rotate"
)

const (
	writeWait = 2 * time.Second

	// Messages queued per client before it is considered stalled
	sendBuffer = 16
)

// Orientation is the wire form of a unit quaternion.
type Orientation struct {
	I    float64 `json:"i"`
	J    float64 `json:"j"`
	K    float64 `json:"k"`
	Real float64 `json:"real"`
}

// FromQuat converts a quaternion to its wire form.
func FromQuat(q quat.Number) Orientation {
	return Orientation{I: q.Imag, J: q.Jmag, K: q.Kmag, Real: q.Real}
}

// Quat converts back to a quaternion.
func (o Orientation) Quat() quat.Number {
	return quat.Number{Real: o.Real, Imag: o.I, Jmag: o.J, Kmag: o.K}
}

// client is one websocket connection. Its writer goroutine drains send.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected clients and the latest orientation.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]bool
	current  Orientation
	upgrader websocket.Upgrader
}

// NewHub creates a hub starting at the identity orientation.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]bool),
		current: FromQuat(rotate.Identity),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler serves /ws (websocket stream) and /orientation (latest value).
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWebSocket)
	mux.HandleFunc("/orientation", h.handleOrientation)
	return mux
}

// Publish stores q and queues it for every client without blocking.
// Clients whose queue is full are dropped.
func (h *Hub) Publish(q quat.Number) {
	o := FromQuat(q)
	data, err := json.Marshal(o)
	if err != nil {
		slog.Warn("marshaling orientation", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = o
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			slog.Debug("dropping stalled stream client")
			h.unregisterLocked(c)
		}
	}
}

// ObserveStep publishes applied controller steps. Pass it to rotate.Bind.
func (h *Hub) ObserveStep(step rotate.Step) {
	if step.Applied() {
		h.Publish(step.Orientation)
	}
}

// Current returns the latest published orientation.
func (h *Hub) Current() Orientation {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Serve runs an HTTP server on addr until ctx is cancelled.
func (h *Hub) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: h.Handler()}

	errc := make(chan error, 1)
	go func() {
		slog.Info("orientation stream listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	h.closeAll()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.unregisterLocked(c)
	}
}

// unregisterLocked removes c and closes its queue, which stops its
// writer. h.mu must be held.
func (h *Hub) unregisterLocked(c *client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	// Queue the current orientation and register under one lock so a
	// concurrent Publish cannot slip in between.
	h.mu.Lock()
	data, _ := json.Marshal(h.current)
	c.send <- data
	h.clients[c] = true
	h.mu.Unlock()
	slog.Debug("stream client connected", "remote", conn.RemoteAddr().String())

	go c.writePump()

	defer func() {
		h.mu.Lock()
		h.unregisterLocked(c)
		h.mu.Unlock()
		conn.Close()
		slog.Debug("stream client disconnected", "remote", conn.RemoteAddr().String())
	}()

	// Read until the client goes away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump sends queued messages until the queue is closed or a write
// fails. Closing the connection also ends the reader.
func (c *client) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		if err := write(c.conn, data); err != nil {
			slog.Debug("stream write failed", "remote", c.conn.RemoteAddr().String(), "error", err)
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (h *Hub) handleOrientation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.Current()); err != nil {
		slog.Warn("writing orientation", "error", err)
	}
}

func write(conn *websocket.Conn, data []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
