// Package app wires the dashboard together and manages its lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration from defaults, an optional YAML file and TPD_* variables
//	2. Initialize logging and OpenTelemetry
//	3. Load the outcomes dataset
//	4. Build the series builder, services, renderer and exporter
//	5. Set up HTTP handlers, the /ws channel and middleware
//	6. Start the HTTP server
//
// A dataset that cannot be loaded does not stop the server. Readiness then
// reports not_ready and data endpoints answer 503.
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    os.Exit(1)
//	}
//	if err := application.Run(); err != nil {
//	    os.Exit(1)
//	}
//
// # Graceful Shutdown
//
// SIGINT and SIGTERM stop the listener, let in-flight requests finish,
// close websocket connections with a close frame and flush telemetry.
package app
