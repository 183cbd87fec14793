// FILE: actionlog/src/internal/sink/ratelimit.go
package sink

import (
	"fmt"
	"sync/atomic"

	"actionlog/src/internal/config"
	"actionlog/src/internal/core"

	"github.com/lixenwraith/log"
	"golang.org/x/time/rate"
)

// RateLimitedHandler drops records that exceed a token bucket before they reach the next handler
type RateLimitedHandler struct {
	next         Handler
	limiter      *rate.Limiter
	exemptErrors bool
	logger       *log.Logger

	droppedCount atomic.Uint64
}

// NewRateLimitedHandler wraps next. A zero rate returns next unchanged.
func NewRateLimitedHandler(next Handler, cfg config.RateLimitConfig, logger *log.Logger) (Handler, error) {
	if next == nil {
		return nil, fmt.Errorf("rate limited handler requires a handler to wrap")
	}
	if cfg.Rate < 0 {
		return nil, fmt.Errorf("rate must not be negative: %v", cfg.Rate)
	}
	if cfg.Rate == 0 {
		return next, nil
	}

	burst := int(cfg.Burst)
	if burst <= 0 {
		burst = max(int(cfg.Rate), 1) // Default burst to rate
	}

	return &RateLimitedHandler{
		next:         next,
		limiter:      rate.NewLimiter(rate.Limit(cfg.Rate), burst),
		exemptErrors: cfg.ExemptErrors,
		logger:       logger,
	}, nil
}

func (r *RateLimitedHandler) Handle(entry core.LogEntry) error {
	if r.exemptErrors && entry.Level >= core.LevelError {
		return r.next.Handle(entry)
	}

	if !r.limiter.Allow() {
		dropped := r.droppedCount.Add(1)
		// Report the first drop and every thousandth after
		if dropped == 1 || dropped%1000 == 0 {
			r.logger.Warn("msg", "Records dropped by rate limit",
				"component", "rate_limited_handler",
				"dropped_total", dropped)
		}
		return nil
	}

	return r.next.Handle(entry)
}

func (r *RateLimitedHandler) GetStats() HandlerStats {
	stats := r.next.GetStats()
	stats.TotalDropped += r.droppedCount.Load()

	details := make(map[string]any, len(stats.Details)+2)
	for k, v := range stats.Details {
		details[k] = v
	}
	details["rate"] = float64(r.limiter.Limit())
	details["burst"] = r.limiter.Burst()
	stats.Details = details

	return stats
}
