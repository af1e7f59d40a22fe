// Package services sits between the transports (HTTP handlers, the
// websocket channel) and the series builder.
//
// DashboardService checks request parameters against the loaded dataset,
// computes the requested series, and records a metric and a log line per
// computation. It also assembles the page bundles of the four dashboard
// pages (home, undergraduate, postgraduate, analysis), computing the
// independent charts of a page concurrently.
//
// HealthService reports liveness, readiness (is the dataset loaded, how
// many rows and periods) and version information.
//
// Both services take their collaborators through their constructors and log
// through an injected *slog.Logger tagged with a component name.
package services
