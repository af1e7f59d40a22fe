package config

import "time"

// Application constants
const (
	// Application Info
	AppName     = "Teacher Profile Dashboard"
	ServiceName = "teacher-profile-dashboard"

	// EnvPrefix namespaces every environment variable, e.g. TPD_SERVER_PORT.
	EnvPrefix = "TPD"

	// Server
	DefaultPort           = 8050
	DefaultRequestTimeout = 30 * time.Second

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Dataset
	DefaultDatasetFile = "data/dataset_prepared.csv"

	// Charts
	DefaultChartWidth  = 800
	DefaultChartHeight = 450
	MinChartSize       = 100

	// WebSocket
	WebSocketReadBufferSize  = 1024
	WebSocketWriteBufferSize = 1024
	WebSocketMaxMessageSize  = 4096
	WebSocketPingPeriod      = 30 * time.Second
	WebSocketPongWait        = 60 * time.Second
	WebSocketWriteWait       = 10 * time.Second

	// Log Settings
	DefaultLogLevel = "info"
	DefaultLogFile  = "logs/app.log"
)
