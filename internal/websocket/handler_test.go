package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/config"
	apierrors "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/errors"
	api "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/api/v1"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/events"
)

func testWebSocketConfig() config.WebSocketConfig {
	return config.WebSocketConfig{
		ReadBufferSize:  config.WebSocketReadBufferSize,
		WriteBufferSize: config.WebSocketWriteBufferSize,
		MaxMessageSize:  config.WebSocketMaxMessageSize,
		PingPeriod:      config.WebSocketPingPeriod,
		PongWait:        config.WebSocketPongWait,
		WriteWait:       config.WebSocketWriteWait,
	}
}

func newTestServer(t *testing.T, origins ...string) (*httptest.Server, *Hub) {
	t.Helper()
	logger := detachedLogger()

	hub := NewHub(nil, logger)
	hub.Start()
	t.Cleanup(hub.Stop)

	handler := NewHandler(hub, newTestDispatcher(t, true), testWebSocketConfig(), origins, logger)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, hub
}

func dial(t *testing.T, srv *httptest.Server, header http.Header) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readResponse(t *testing.T, conn *websocket.Conn) events.ChartResponse {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var resp events.ChartResponse
	require.NoError(t, conn.ReadJSON(&resp))
	return resp
}

func TestHandler_RequestResponse(t *testing.T) {
	srv, hub := newTestServer(t)
	conn := dial(t, srv, nil)

	hello := readResponse(t, conn)
	assert.Equal(t, events.MessageTypeConnected, hello.Type)
	assert.Contains(t, hello.Data, "charts")

	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(events.ChartRequest{
		ID:     "req-1",
		Chart:  api.ChartAge,
		Params: json.RawMessage(`{"period":"201718","levels":["Undergraduate"]}`),
	}))
	resp := readResponse(t, conn)
	assert.Equal(t, "req-1", resp.ID)
	assert.Equal(t, events.MessageTypeSeries, resp.Type)
	require.IsType(t, map[string]interface{}{}, resp.Data)
	split := resp.Data.(map[string]interface{})["split"].(map[string]interface{})
	assert.InDelta(t, 80, split["under_25"], 1e-9)

	require.NoError(t, conn.WriteJSON(events.ChartRequest{
		ID:     "req-2",
		Chart:  api.ChartEthnicity,
		Params: json.RawMessage(`{"period":"201718","level":"Total"}`),
	}))
	resp = readResponse(t, conn)
	assert.Equal(t, "req-2", resp.ID)
	assert.Equal(t, events.MessageTypeError, resp.Type)
	require.NotNil(t, resp.Error)
	assert.Equal(t, apierrors.CodeValidationFailed, resp.Error.Code)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	resp = readResponse(t, conn)
	require.NotNil(t, resp.Error)
	assert.Equal(t, apierrors.CodeInvalidRequest, resp.Error.Code)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHandler_HubStopClosesClients(t *testing.T) {
	srv, hub := newTestServer(t)
	conn := dial(t, srv, nil)
	readResponse(t, conn)

	hub.Stop()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
	assert.Zero(t, hub.ClientCount())
}

func TestHandler_Origin(t *testing.T) {
	srv, _ := newTestServer(t, "http://localhost:8050")
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn := dial(t, srv, http.Header{"Origin": {"http://localhost:8050"}})
	assert.Equal(t, events.MessageTypeConnected, readResponse(t, conn).Type)
}

func TestHandler_RejectsPlainHTTP(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Error apierrors.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, apierrors.CodeWebSocketUpgrade, body.Error.ErrorCode)
}
