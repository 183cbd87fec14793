// FILE: actionlog/src/internal/sink/filtered.go
package sink

import (
	"fmt"
	"sync/atomic"

	"actionlog/src/internal/config"
	"actionlog/src/internal/core"
	"actionlog/src/internal/filter"

	"github.com/lixenwraith/log"
)

// FilteredHandler forwards only records that pass its filter chain
type FilteredHandler struct {
	next  Handler
	chain *filter.Chain

	droppedCount atomic.Uint64
}

// NewFilteredHandler wraps next. With no filters configured next is returned unchanged.
func NewFilteredHandler(next Handler, configs []config.FilterConfig, logger *log.Logger) (Handler, error) {
	if next == nil {
		return nil, fmt.Errorf("filtered handler requires a handler to wrap")
	}
	if len(configs) == 0 {
		return next, nil
	}

	chain, err := filter.NewChain(configs, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("msg", "Output filters enabled",
		"component", "filtered_handler",
		"filter_count", chain.Len())

	return &FilteredHandler{next: next, chain: chain}, nil
}

func (f *FilteredHandler) Handle(entry core.LogEntry) error {
	if !f.chain.Apply(entry) {
		f.droppedCount.Add(1)
		return nil
	}
	return f.next.Handle(entry)
}

func (f *FilteredHandler) GetStats() HandlerStats {
	stats := f.next.GetStats()
	stats.TotalDropped += f.droppedCount.Load()

	details := make(map[string]any, len(stats.Details)+1)
	for k, v := range stats.Details {
		details[k] = v
	}
	details["filters"] = f.chain.GetStats()
	stats.Details = details

	return stats
}
