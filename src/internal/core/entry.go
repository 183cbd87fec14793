// FILE: actionlog/src/internal/core/entry.go
package core

import "time"

// Represents a single record emitted on a channel
type LogEntry struct {
	Time    time.Time `json:"time"`
	Source  string    `json:"source"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
}
