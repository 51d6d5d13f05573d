// Package ws streams board updates to browser clients over WebSocket.
package ws

import (
	"net/http"
	"sync"
	"time"

	"AXRadar/internal/usecase"
	xlogger "AXRadar/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	readLimit  = 512
)

// Message is one frame sent to a client. The first frame on a connection is
// a snapshot of every feed; later frames carry single updates.
type Message struct {
	Type   string           `json:"type"`
	Views  []usecase.Update `json:"views,omitempty"`
	Update *usecase.Update  `json:"update,omitempty"`
}

const (
	TypeSnapshot = "snapshot"
	TypeUpdate   = "update"
)

// Source is the view board the hub relays.
type Source interface {
	Snapshot() []usecase.Update
	Subscribe() (<-chan usecase.Update, func())
}

// Hub upgrades clients and relays board updates to them.
type Hub struct {
	logger   *xlogger.Logger
	source   Source
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients int
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

func NewHub(logger *xlogger.Logger, source Source) *Hub {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &Hub{
		logger: logger,
		source: source,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		done: make(chan struct{}),
	}
}

func (h *Hub) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", h.Stream)
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clients
}

// Close disconnects every client and waits for their writers to exit.
func (h *Hub) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		close(h.done)
		h.mu.Unlock()
	})
	h.wg.Wait()
}

func (h *Hub) Stream(c echo.Context) error {
	// the done check and wg.Add share mu with Close so Wait never races Add
	h.mu.Lock()
	select {
	case <-h.done:
		h.mu.Unlock()
		return echo.NewHTTPError(http.StatusServiceUnavailable, "shutting down")
	default:
	}
	h.wg.Add(1)
	h.mu.Unlock()

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.wg.Done()
		h.logger.Warn("websocket upgrade failed", xlogger.Error(err))
		return nil
	}

	h.track(1)
	go h.serve(conn, c.RealIP())
	return nil
}

func (h *Hub) track(delta int) {
	h.mu.Lock()
	h.clients += delta
	n := h.clients
	h.mu.Unlock()
	h.logger.Debug("websocket clients", xlogger.Int("count", n))
}

func (h *Hub) serve(conn *websocket.Conn, remote string) {
	defer h.wg.Done()
	defer h.track(-1)
	defer conn.Close()

	updates, cancel := h.source.Subscribe()
	defer cancel()

	closed := make(chan struct{})
	go readPump(conn, closed)

	if err := write(conn, Message{Type: TypeSnapshot, Views: h.source.Snapshot()}); err != nil {
		h.logger.Debug("websocket snapshot failed", xlogger.String("remote", remote), xlogger.Error(err))
		return
	}

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-h.done:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
				time.Now().Add(writeWait))
			return
		case <-closed:
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			if err := write(conn, Message{Type: TypeUpdate, Update: &u}); err != nil {
				h.logger.Debug("websocket write failed", xlogger.String("remote", remote), xlogger.Error(err))
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func write(conn *websocket.Conn, m Message) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(m)
}

// readPump drains client frames so control messages are processed, and
// closes done when the peer goes away.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
