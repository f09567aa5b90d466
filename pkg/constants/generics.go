package constants

import "time"

// RFC 3339 date-time format string.
// Use this format for all date-time serialization and communication with external systems.
const RFC3339DateTimeFormat = "2006-01-02T15:04:05Z07:00"

// DefaultRequestTimeout bounds a single HTTP request on the server side.
const DefaultRequestTimeout = 30 * time.Second
