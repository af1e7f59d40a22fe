package websocket

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/events"
)

// idleConn is a Connection that is never read from or written to.
type idleConn struct{}

func (idleConn) WriteMessage(int, []byte) error { return nil }
func (idleConn) ReadMessage() (int, []byte, error) { return 0, nil, net.ErrClosed }
func (idleConn) Close() error { return nil }
func (idleConn) SetReadDeadline(time.Time) error { return nil }
func (idleConn) SetWriteDeadline(time.Time) error { return nil }
func (idleConn) SetReadLimit(int64) {}
func (idleConn) SetPongHandler(func(string) error) {}
func (idleConn) RemoteAddr() net.Addr { return nil }

func TestHub_RegisterSendsConnectedMessage(t *testing.T) {
	hub := NewHub(nil, detachedLogger())
	hub.Start()
	defer hub.Stop()

	client := NewClient(hub, nil, idleConn{}, testWebSocketConfig(), "trace-1", detachedLogger())
	require.True(t, hub.Register(client))

	select {
	case data := <-client.send:
		var msg struct {
			Type events.MessageType      `json:"type"`
			Data events.ConnectedMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, events.MessageTypeConnected, msg.Type)
		assert.Equal(t, contracts.APIVersion, msg.Data.APIVersion)
		assert.Contains(t, msg.Data.Charts, events.ChartPage)
	case <-time.After(time.Second):
		t.Fatal("no connected message")
	}
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(client)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
	assert.False(t, client.enqueue([]byte("late")))
}

func TestHub_RegisterAfterStop(t *testing.T) {
	hub := NewHub(nil, detachedLogger())
	hub.Start()
	hub.Stop()
	hub.Stop()

	client := NewClient(hub, nil, idleConn{}, testWebSocketConfig(), "", detachedLogger())
	assert.False(t, hub.Register(client))
	hub.Unregister(client)
	assert.Zero(t, hub.ClientCount())
}
