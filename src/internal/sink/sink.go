// FILE: actionlog/src/internal/sink/sink.go
package sink

import (
	"time"

	"actionlog/src/internal/core"
)

// Handler is an output destination attached to a channel.
// Implementations are identified by pointer; attach the same value to share it.
type Handler interface {
	// Handle formats and writes a single record synchronously
	Handle(entry core.LogEntry) error

	// GetStats returns handler statistics
	GetStats() HandlerStats
}

// HandlerStats contains statistics about a handler
type HandlerStats struct {
	Type           string
	TotalProcessed uint64
	TotalDropped   uint64
	StartTime      time.Time
	LastProcessed  time.Time
	Details        map[string]any
}
