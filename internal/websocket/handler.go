package websocket

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/config"
	apierrors "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/errors"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/infrastructure"
)

// Handler upgrades GET /ws and starts the client pumps
type Handler struct {
	hub        *Hub
	dispatcher *Dispatcher
	cfg        config.WebSocketConfig
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewHandler creates the /ws handler. Browsers are accepted only from
// allowedOrigins; "*" accepts any origin. Requests without an Origin header
// are always accepted.
func NewHandler(hub *Hub, dispatcher *Dispatcher, cfg config.WebSocketConfig, allowedOrigins []string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return &Handler{
		hub:        hub,
		dispatcher: dispatcher,
		cfg:        cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origins["*"] || origins[origin]
			},
		},
		logger: logger.With(slog.String("component", "websocket.handler")),
	}
}

// ServeHTTP handles GET /ws
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !websocket.IsWebSocketUpgrade(r) {
		apierrors.WriteError(w, apierrors.New(http.StatusBadRequest, apierrors.CodeWebSocketUpgrade,
			"Expected a websocket upgrade request"))
		return
	}

	// The upgrader writes its own error response.
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(r.Context(), "websocket upgrade failed",
			slog.String("error", err.Error()),
			slog.String("origin", r.Header.Get("Origin")))
		return
	}

	traceID := infrastructure.GetTraceID(r.Context())
	if traceID == "" {
		traceID = infrastructure.GenerateTraceID()
	}

	client := NewClient(h.hub, h.dispatcher, conn, h.cfg, traceID, h.logger)
	if !h.hub.Register(client) {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "server shutting down"))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
