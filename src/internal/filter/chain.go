// FILE: actionlog/src/internal/filter/chain.go
package filter

import (
	"fmt"
	"sync/atomic"

	"actionlog/src/internal/config"
	"actionlog/src/internal/core"

	"github.com/lixenwraith/log"
)

// Chain applies filters in order; a record must pass all of them.
type Chain struct {
	filters []*Filter
	logger  *log.Logger

	// Statistics
	totalProcessed atomic.Uint64
	totalPassed    atomic.Uint64
}

// NewChain creates a chain from filter configurations.
func NewChain(configs []config.FilterConfig, logger *log.Logger) (*Chain, error) {
	chain := &Chain{
		filters: make([]*Filter, 0, len(configs)),
		logger:  logger,
	}

	for i, cfg := range configs {
		f, err := NewFilter(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("filter[%d]: %w", i, err)
		}
		chain.filters = append(chain.filters, f)
	}

	return chain, nil
}

// Len returns the number of filters
func (c *Chain) Len() int {
	return len(c.filters)
}

// Apply runs a record through all filters in the chain.
func (c *Chain) Apply(entry core.LogEntry) bool {
	c.totalProcessed.Add(1)

	for i, f := range c.filters {
		if !f.Apply(entry) {
			c.logger.Debug("msg", "Record filtered out",
				"component", "filter_chain",
				"filter_index", i,
				"filter_type", f.kind,
				"filter_field", f.field)
			return false
		}
	}

	c.totalPassed.Add(1)
	return true
}

// GetStats returns aggregated statistics for the entire chain.
func (c *Chain) GetStats() map[string]any {
	filterStats := make([]map[string]any, len(c.filters))
	for i, f := range c.filters {
		filterStats[i] = f.GetStats()
	}

	return map[string]any{
		"filter_count":    len(c.filters),
		"total_processed": c.totalProcessed.Load(),
		"total_passed":    c.totalPassed.Load(),
		"filters":         filterStats,
	}
}
