package websocket

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_EnqueueWaitsForRoom(t *testing.T) {
	client := NewClient(nil, nil, idleConn{}, testWebSocketConfig(), "", detachedLogger())
	for i := 0; i < sendBufferSize; i++ {
		require.True(t, client.enqueue([]byte(fmt.Sprintf("response-%d", i))))
	}

	queued := make(chan bool, 1)
	go func() { queued <- client.enqueue([]byte("one more")) }()

	select {
	case <-queued:
		t.Fatal("enqueue returned while the queue was full")
	case <-time.After(50 * time.Millisecond):
	}

	assert.Equal(t, []byte("response-0"), <-client.send)
	select {
	case ok := <-queued:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("enqueue did not resume once the queue had room")
	}
}

func TestClient_EnqueueGivesUpWhenClosing(t *testing.T) {
	client := NewClient(nil, nil, idleConn{}, testWebSocketConfig(), "", detachedLogger())
	for i := 0; i < sendBufferSize; i++ {
		require.True(t, client.enqueue([]byte("response")))
	}

	queued := make(chan bool, 1)
	go func() { queued <- client.enqueue([]byte("one more")) }()

	client.closeSend()
	client.closeSend()
	select {
	case ok := <-queued:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("enqueue kept waiting after the client closed")
	}
}

func TestClient_EnqueueTimesOut(t *testing.T) {
	cfg := testWebSocketConfig()
	cfg.WriteWait = 20 * time.Millisecond
	client := NewClient(nil, nil, idleConn{}, cfg, "", detachedLogger())
	for i := 0; i < sendBufferSize; i++ {
		require.True(t, client.enqueue([]byte("response")))
	}

	assert.False(t, client.enqueue([]byte("one more")))
}
