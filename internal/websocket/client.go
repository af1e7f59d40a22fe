package websocket

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/config"
	apierrors "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/errors"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/infrastructure"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/events"
)

const sendBufferSize = 16

// Client is a middleman between the websocket connection and the
// dispatcher
type Client struct {
	hub        *Hub
	dispatcher *Dispatcher
	conn       Connection
	cfg        config.WebSocketConfig

	// Buffered channel of outbound messages
	send chan []byte
	// done is closed by the hub when the client must go away
	done      chan struct{}
	closeOnce sync.Once

	id          string
	traceID     string
	remoteAddr  string
	connectedAt time.Time

	logger *slog.Logger

	messagesSent     int64
	messagesReceived int64
}

// NewClient creates a client for an upgraded connection
func NewClient(hub *Hub, dispatcher *Dispatcher, conn Connection, cfg config.WebSocketConfig, traceID string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	id := uuid.New().String()
	remote := ""
	if addr := conn.RemoteAddr(); addr != nil {
		remote = addr.String()
	}

	return &Client{
		hub:         hub,
		dispatcher:  dispatcher,
		conn:        conn,
		cfg:         cfg,
		send:        make(chan []byte, sendBufferSize),
		done:        make(chan struct{}),
		id:          id,
		traceID:     traceID,
		remoteAddr:  remote,
		connectedAt: time.Now(),
		logger: logger.With(
			slog.String("component", "websocket.client"),
			slog.String("client_id", id),
		),
	}
}

func (c *Client) context() context.Context {
	ctx := context.Background()
	if c.traceID != "" {
		ctx = infrastructure.WithTraceID(ctx, c.traceID)
	}
	return ctx
}

// enqueue queues data for the write pump, waiting up to WriteWait for room
// in a full queue. It reports false when the client is closing or the wait
// runs out.
func (c *Client) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	timer := time.NewTimer(c.cfg.WriteWait)
	defer timer.Stop()
	select {
	case c.send <- data:
		return true
	case <-c.done:
		return false
	case <-timer.C:
		return false
	}
}

// closeSend tells the write pump to flush what is queued and send a close
// frame. Safe to call more than once.
func (c *Client) closeSend() {
	c.closeOnce.Do(func() { close(c.done) })
}

// ReadPump answers each request read from the connection, in order, until
// the peer goes away.
func (c *Client) ReadPump() {
	ctx := c.context()
	defer func() {
		c.logger.InfoContext(ctx, "client disconnected",
			slog.Duration("connection_duration", time.Since(c.connectedAt)),
			slog.Int64("messages_received", c.messagesReceived))
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.cfg.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.logger.WarnContext(ctx, "unexpected websocket close", slog.String("error", err.Error()))
			}
			return
		}
		c.messagesReceived++

		message = bytes.TrimSpace(message)
		if len(message) == 0 {
			continue
		}

		var resp events.ChartResponse
		var req events.ChartRequest
		if err := json.Unmarshal(message, &req); err != nil {
			resp = c.dispatcher.Reject(ctx, apierrors.InvalidRequestWithError(err))
		} else {
			resp = c.dispatcher.Handle(ctx, req)
		}

		data, err := json.Marshal(resp)
		if err != nil {
			c.logger.ErrorContext(ctx, "marshal response", slog.String("error", err.Error()), slog.String("chart", req.Chart))
			continue
		}
		if !c.enqueue(data) {
			c.logger.WarnContext(ctx, "response dropped, client closing or too slow", slog.String("chart", req.Chart))
		}
	}
}

// WritePump writes queued responses to the connection and keeps it alive
// with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.logger.DebugContext(c.context(), "write pump stopped", slog.Int64("messages_sent", c.messagesSent))
	}()

	for {
		select {
		case message := <-c.send:
			if !c.write(message) {
				return
			}

		case <-c.done:
			if !c.drain() {
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.DebugContext(c.context(), "ping failed", slog.String("error", err.Error()))
				return
			}
		}
	}
}

func (c *Client) write(message []byte) bool {
	c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.WarnContext(c.context(), "write failed", slog.String("error", err.Error()))
		return false
	}
	c.messagesSent++
	return true
}

// drain writes whatever is still queued.
func (c *Client) drain() bool {
	for {
		select {
		case message := <-c.send:
			if !c.write(message) {
				return false
			}
		default:
			return true
		}
	}
}
