// Package events contains the message contracts of the /ws live channel.
//
// The channel is request/response only: the client sends a ChartRequest
// whenever a dashboard control changes and the server answers it with one
// ChartResponse carrying the same ID. The server keeps no subscription
// state between messages.
package events

import (
	"encoding/json"
	"time"
)

// MessageType defines the type of WebSocket message
type MessageType string

// ChartPage requests a page bundle over the live channel.
const ChartPage = "page"

const (
	MessageTypeConnected MessageType = "connected"
	MessageTypeSeries    MessageType = "series"
	MessageTypeError     MessageType = "error"
)

// ChartRequest asks for one chart's series. Params holds the same fields as
// the matching HTTP request, keyed by their JSON names. Chart "page" asks
// for the whole bundle of the page named by Page.
type ChartRequest struct {
	ID     string          `json:"id,omitempty"`
	Chart  string          `json:"chart"`
	Page   string          `json:"page,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
}

// ChartResponse answers exactly one ChartRequest.
type ChartResponse struct {
	ID        string        `json:"id,omitempty"`
	Type      MessageType   `json:"type"`
	Chart     string        `json:"chart,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	TraceID   string        `json:"trace_id,omitempty"`
	Data      interface{}   `json:"data,omitempty"`
	Error     *ErrorMessage `json:"error,omitempty"`
}

// ErrorMessage describes why a request could not be answered.
type ErrorMessage struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ConnectedMessage greets a new connection.
type ConnectedMessage struct {
	Charts     []string `json:"charts"`
	APIVersion string   `json:"api_version"`
}
