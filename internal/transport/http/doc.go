// Package http implements the HTTP handlers of the dashboard. Handlers are
// thin: they bind query parameters into the request types of
// pkg/contracts/api/v1, validate them, call the dashboard service and
// render the result.
//
// # Routes
//
// Mounted under /api:
//
//	GET /periods                 known periods with display labels
//	GET /options                 values of every dashboard control
//	GET /series/{chart}          one chart's series as JSON
//	GET /pages/{page}            every chart of a page as JSON
//	GET /charts/{chart}.svg      one chart rendered as SVG
//	GET /export/{chart}.csv      one chart's series as CSV
//	GET /export/workbook.xlsx    every chart as an Excel workbook
//	GET /health[/ready|/live]    health checks
//	GET /version                 build information
//
// # Responses
//
// Success bodies use the envelope {"status": "success", "data": ...}.
// Errors follow RFC 7807 Problem Details:
//
//	{
//	    "type": "/errors/invalid-parameter",
//	    "title": "Invalid Parameter",
//	    "status": 400,
//	    "detail": "unknown period: \"202122\"",
//	    "instance": "/api/series/totals",
//	    "trace_id": "..."
//	}
//
// # Testing
//
// Handlers are tested with httptest against a service built on a fixture
// dataset.
package http
