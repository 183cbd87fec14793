// FILE: actionlog/src/internal/filter/filter.go
package filter

import (
	"fmt"
	"regexp"
	"sync/atomic"

	"actionlog/src/internal/config"
	"actionlog/src/internal/core"

	"github.com/lixenwraith/log"
)

// Filter keeps or drops action records by matching regexes against one
// record field
type Filter struct {
	kind   config.FilterType
	logic  config.FilterLogic
	field  config.FilterField
	rules  atomic.Pointer[ruleSet]
	logger *log.Logger

	processed atomic.Uint64
	matched   atomic.Uint64
	dropped   atomic.Uint64
}

// ruleSet is replaced whole, never mutated
type ruleSet struct {
	sources []string
	res     []*regexp.Regexp
}

// NewFilter compiles cfg. Empty type, logic and field default to include,
// or and record.
func NewFilter(cfg config.FilterConfig, logger *log.Logger) (*Filter, error) {
	f := &Filter{
		kind:   cfg.Type,
		logic:  cfg.Logic,
		field:  cfg.Field,
		logger: logger,
	}
	if f.kind == "" {
		f.kind = config.FilterTypeInclude
	}
	if f.logic == "" {
		f.logic = config.FilterLogicOr
	}
	if f.field == "" {
		f.field = config.FilterFieldRecord
	}

	rules, err := compileRules(cfg.Patterns)
	if err != nil {
		return nil, err
	}
	f.rules.Store(rules)

	logger.Debug("msg", "Filter created",
		"component", "filter",
		"type", f.kind,
		"logic", f.logic,
		"field", f.field,
		"pattern_count", len(rules.res))

	return f, nil
}

// Apply reports whether entry passes
func (f *Filter) Apply(entry core.LogEntry) bool {
	f.processed.Add(1)

	rules := f.rules.Load()
	if len(rules.res) == 0 {
		return true
	}

	hit := rules.match(f.logic, fieldValue(entry, f.field))
	if hit {
		f.matched.Add(1)
	}

	pass := hit == (f.kind == config.FilterTypeInclude)
	if !pass {
		f.dropped.Add(1)
	}
	return pass
}

func (r *ruleSet) match(logic config.FilterLogic, value string) bool {
	if logic == config.FilterLogicAnd {
		for _, re := range r.res {
			if !re.MatchString(value) {
				return false
			}
		}
		return true
	}

	for _, re := range r.res {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

func fieldValue(entry core.LogEntry, field config.FilterField) string {
	switch field {
	case config.FilterFieldChannel:
		return entry.Source
	case config.FilterFieldLevel:
		return entry.Level.String()
	case config.FilterFieldMessage:
		return entry.Message
	default:
		return entry.Source + " " + entry.Level.String() + " " + entry.Message
	}
}

// UpdatePatterns replaces the patterns. A bad pattern leaves the old set in place.
func (f *Filter) UpdatePatterns(patterns []string) error {
	rules, err := compileRules(patterns)
	if err != nil {
		return err
	}
	f.rules.Store(rules)

	f.logger.Info("msg", "Filter patterns updated",
		"component", "filter",
		"field", f.field,
		"pattern_count", len(patterns))
	return nil
}

// Patterns returns the active pattern sources
func (f *Filter) Patterns() []string {
	return append([]string(nil), f.rules.Load().sources...)
}

func (f *Filter) GetStats() map[string]any {
	return map[string]any{
		"type":            f.kind,
		"logic":           f.logic,
		"field":           f.field,
		"pattern_count":   len(f.rules.Load().res),
		"total_processed": f.processed.Load(),
		"total_matched":   f.matched.Load(),
		"total_dropped":   f.dropped.Load(),
	}
}

func compileRules(patterns []string) (*ruleSet, error) {
	rules := &ruleSet{
		sources: append([]string(nil), patterns...),
		res:     make([]*regexp.Regexp, 0, len(patterns)),
	}
	for i, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern[%d] '%s': %w", i, pattern, err)
		}
		rules.res = append(rules.res, re)
	}
	return rules, nil
}
