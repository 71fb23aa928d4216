package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/blackjack/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Spectators only send control frames
	maxMessageSize = 512

	sendBuffer = 32
)

// Hub fans snapshots out to every connected spectator. It implements
// game.Observer.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte // most recent view, sent to new spectators
	version uint64
}

// NewHub creates an empty hub
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			// read-only feed, any origin may watch
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		logger:  logger.WithPrefix("spectate"),
		clients: make(map[*client]struct{}),
	}
}

// OnSnapshot broadcasts the snapshot to all spectators. Stale snapshots
// delivered out of order are ignored.
func (h *Hub) OnSnapshot(s game.Snapshot) {
	msg, err := json.Marshal(NewTableView(s))
	if err != nil {
		h.logger.Error("Failed to encode snapshot", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last != nil && s.Version < h.version {
		return
	}
	h.last, h.version = msg, s.Version
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("Spectator too slow, disconnecting", "remote", c.remote)
			h.removeLocked(c)
		}
	}
}

// Clients returns the number of connected spectators
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Handler serves the websocket feed on /ws and a health check on /health
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "OK")
	})
	return mux
}

// Serve listens on addr until ctx is cancelled
func (h *Hub) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{Handler: h.Handler(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		h.closeAll()
	}()

	h.logger.Info("Spectator feed listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	c := &client{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		remote: r.RemoteAddr,
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.send <- h.last
	}
	total := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("Spectator connected", "remote", c.remote, "total", total)

	go c.writePump(h.logger)
	go func() {
		c.readPump()
		h.remove(c)
		h.logger.Info("Spectator disconnected", "remote", c.remote)
	}()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}

// client is one spectator connection. The hub owns send and closes it on
// removal, which ends the write pump.
type client struct {
	conn   *websocket.Conn
	send   chan []byte
	remote string
}

// readPump discards anything the spectator sends and returns once the
// connection fails or closes.
func (c *client) readPump() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			return
		}
	}
}

func (c *client) writePump(logger *log.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug("Failed to write message", "remote", c.remote, "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
