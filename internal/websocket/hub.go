// Package websocket serves the /ws live channel. Each connected client
// sends ChartRequest messages and gets one ChartResponse back per request,
// in order, for as long as it keeps reading; the hub only tracks who is
// connected.
package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/infrastructure"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts"
	api "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/api/v1"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/events"
)

// Hub maintains the set of active clients
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	logger  *slog.Logger
	metrics *infrastructure.BusinessMetrics

	totalConnections int64

	quit    chan struct{}
	running bool
}

// NewHub creates a new Hub. metrics may be nil.
func NewHub(metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger.With(slog.String("component", "websocket.hub")),
		metrics:    metrics,
		quit:       make(chan struct{}),
	}
}

// Start runs the hub loop in its own goroutine
func (h *Hub) Start() {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.mu.Unlock()

	go h.run()
}

func (h *Hub) run() {
	for {
		select {
		case <-h.quit:
			h.logger.Info("hub shutting down")
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.running {
				h.mu.Unlock()
				client.closeSend()
				continue
			}
			h.clients[client] = true
			count := len(h.clients)
			h.totalConnections++
			h.mu.Unlock()

			ctx := client.context()
			h.logger.InfoContext(ctx, "client registered",
				slog.Int("total_clients", count),
				slog.String("client_id", client.id),
				slog.String("remote_addr", client.remoteAddr))
			h.recordConnections(ctx, 1)

			if data, err := json.Marshal(connectedMessage()); err == nil {
				if !client.enqueue(data) {
					h.logger.WarnContext(ctx, "connected message dropped", slog.String("client_id", client.id))
				}
			}

		case client := <-h.unregister:
			h.mu.Lock()
			_, ok := h.clients[client]
			if ok {
				delete(h.clients, client)
				client.closeSend()
			}
			count := len(h.clients)
			h.mu.Unlock()

			if ok {
				ctx := client.context()
				h.logger.InfoContext(ctx, "client unregistered",
					slog.Int("total_clients", count),
					slog.String("client_id", client.id),
					slog.Duration("connection_duration", time.Since(client.connectedAt)))
				h.recordConnections(ctx, -1)
			}
		}
	}
}

// Register adds a client. It reports false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case <-h.quit:
		return false
	default:
	}

	select {
	case h.register <- client:
		return true
	case <-h.quit:
		return false
	}
}

// Unregister removes a client and closes its send queue
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.quit:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stop ends the hub loop and closes every client, which makes
// the write pumps send a close frame.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running {
		return
	}
	h.running = false
	close(h.quit)

	for client := range h.clients {
		client.closeSend()
		delete(h.clients, client)
	}
	h.logger.Info("hub stopped", slog.Int64("total_connections", h.totalConnections))
}

func (h *Hub) recordConnections(ctx context.Context, delta int64) {
	if h.metrics == nil {
		return
	}
	h.metrics.WebSocketConnections.Add(ctx, delta)
}

func connectedMessage() events.ChartResponse {
	return events.ChartResponse{
		Type:      events.MessageTypeConnected,
		Timestamp: time.Now().UTC(),
		Data: events.ConnectedMessage{
			Charts:     append(append([]string{}, api.Charts...), events.ChartPage),
			APIVersion: contracts.APIVersion,
		},
	}
}
