// Package shared holds helpers used by more than one package of the
// dashboard. Its testutil subpackage provides a capturing slog handler and
// a small outcomes dataset fixture for tests.
package shared
