// FILE: actionlog/src/internal/channel/channel.go
package channel

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"actionlog/src/internal/core"
	"actionlog/src/internal/sink"
)

// LevelUnset makes a channel follow its registry's threshold
const LevelUnset core.Level = -1

// ErrHandlerNotComparable is returned by Attach for handlers that cannot be
// told apart by ==, such as a struct value holding a slice. Attach a pointer.
var ErrHandlerNotComparable = errors.New("handler is not comparable")

// Channel is a named destination for records. Handlers are attached for as
// long as someone needs their output and detached afterwards.
type Channel struct {
	name     string
	registry *Registry
	level    atomic.Int64

	mu       sync.RWMutex
	handlers map[sink.Handler]int // handler -> attach count
	order    []sink.Handler       // delivery order, first attach first
}

func newChannel(name string, registry *Registry) *Channel {
	ch := &Channel{
		name:     name,
		registry: registry,
		handlers: make(map[sink.Handler]int),
	}
	ch.level.Store(int64(LevelUnset))
	return ch
}

// Name returns the channel key
func (c *Channel) Name() string {
	return c.name
}

// SetLevel overrides the registry threshold for this channel, LevelUnset restores inheritance
func (c *Channel) SetLevel(level core.Level) {
	c.level.Store(int64(level))
}

// EffectiveLevel is the threshold records are checked against
func (c *Channel) EffectiveLevel() core.Level {
	if level := core.Level(c.level.Load()); level != LevelUnset {
		return level
	}
	return c.registry.Level()
}

// Attach adds h to the channel and returns the function that removes it.
// Attaching a handler that is already attached only raises its count, so
// overlapping callers share one delivery per record. Detach is idempotent.
func (c *Channel) Attach(h sink.Handler) (detach func(), err error) {
	if !reflect.ValueOf(h).Comparable() {
		return nil, ErrHandlerNotComparable
	}

	c.mu.Lock()
	if c.handlers[h] == 0 {
		c.order = append(c.order, h)
	}
	c.handlers[h]++
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { c.detach(h) })
	}, nil
}

func (c *Channel) detach(h sink.Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	refs, ok := c.handlers[h]
	if !ok {
		return
	}
	if refs > 1 {
		c.handlers[h] = refs - 1
		return
	}

	delete(c.handlers, h)
	for i, attached := range c.order {
		if attached == h {
			c.order = append(c.order[:i:i], c.order[i+1:]...)
			break
		}
	}
}

// HandlerCount returns the number of distinct attached handlers
func (c *Channel) HandlerCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Emit delivers a record to every attached handler in the caller's goroutine.
// Handler failures are reported to the diagnostics logger and never returned.
func (c *Channel) Emit(level core.Level, msg string) {
	if level < c.EffectiveLevel() {
		return
	}

	c.mu.RLock()
	if len(c.order) == 0 {
		c.mu.RUnlock()
		return
	}
	targets := make([]sink.Handler, len(c.order))
	copy(targets, c.order)
	c.mu.RUnlock()

	entry := core.LogEntry{
		Time:    c.registry.clock(),
		Source:  c.name,
		Level:   level,
		Message: msg,
	}

	for _, h := range targets {
		if err := h.Handle(entry); err != nil {
			c.registry.logger.Error("msg", "Handler failed to write record",
				"component", "channel",
				"channel", c.name,
				"handler", h.GetStats().Type,
				"error", err)
		}
	}
}

func (c *Channel) Debug(msg string) { c.Emit(core.LevelDebug, msg) }
func (c *Channel) Info(msg string)  { c.Emit(core.LevelInfo, msg) }
func (c *Channel) Warn(msg string)  { c.Emit(core.LevelWarn, msg) }
func (c *Channel) Error(msg string) { c.Emit(core.LevelError, msg) }
