// Package timeouts provides centralized timeout values for handler
// operations.
//
// These are used with context.WithTimeout around database and process
// operations in HTTP handlers. Centralizing them keeps request deadlines
// consistent across features.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads and lookups
//   - Medium: list queries, moderate writes
//   - Long: multi-step writes and campaign sends
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
	long   = 30 * time.Second
)

// Ping returns the timeout for health checks.
func Ping() time.Duration { return ping }

// Short returns the timeout for single-document reads.
func Short() time.Duration { return short }

// Medium returns the timeout for list queries and moderate writes.
func Medium() time.Duration { return medium }

// Long returns the timeout for multi-step writes such as newsletter sends.
func Long() time.Duration { return long }
