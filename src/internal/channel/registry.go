// FILE: actionlog/src/internal/channel/registry.go
package channel

import (
	"sync"
	"sync/atomic"
	"time"

	"actionlog/src/internal/core"

	"github.com/lixenwraith/log"
)

// Registry owns named channels and the threshold they filter against.
// It is constructed explicitly and passed to whoever emits; there is no
// process-wide registry.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]*Channel
	level    atomic.Int64
	clock    func() time.Time
	logger   *log.Logger
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithLevel sets the registry-wide threshold
func WithLevel(level core.Level) RegistryOption {
	return func(r *Registry) {
		r.level.Store(int64(level))
	}
}

// WithClock replaces time.Now for record timestamps
func WithClock(clock func() time.Time) RegistryOption {
	return func(r *Registry) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithLogger sets the diagnostics logger
func WithLogger(logger *log.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates an empty registry, threshold defaults to debug
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		channels: make(map[string]*Channel),
		clock:    time.Now,
		logger:   log.NewLogger(),
	}
	r.level.Store(int64(core.LevelDebug))

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Channel returns the channel registered under name, creating it on first use
func (r *Registry) Channel(name string) *Channel {
	r.mu.RLock()
	ch, ok := r.channels[name]
	r.mu.RUnlock()
	if ok {
		return ch
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if ch, ok = r.channels[name]; ok {
		return ch
	}

	ch = newChannel(name, r)
	r.channels[name] = ch

	r.logger.Debug("msg", "Channel created",
		"component", "registry",
		"channel", name)

	return ch
}

// Names lists the registered channel names
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.channels))
	for name := range r.channels {
		names = append(names, name)
	}
	return names
}

// SetLevel changes the registry-wide threshold
func (r *Registry) SetLevel(level core.Level) {
	r.level.Store(int64(level))
}

// Level returns the registry-wide threshold
func (r *Registry) Level() core.Level {
	return core.Level(r.level.Load())
}
