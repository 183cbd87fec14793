// FILE: actionlog/src/internal/config/filter.go
package config

import (
	"fmt"
	"regexp"
)

type FilterType string

const (
	FilterTypeInclude FilterType = "include"
	FilterTypeExclude FilterType = "exclude"
)

type FilterLogic string

const (
	FilterLogicOr  FilterLogic = "or"
	FilterLogicAnd FilterLogic = "and"
)

// FilterField names the part of an action record a filter reads
type FilterField string

const (
	// "<channel> <LEVEL> <message>"
	FilterFieldRecord  FilterField = "record"
	FilterFieldChannel FilterField = "channel"
	FilterFieldLevel   FilterField = "level"
	FilterFieldMessage FilterField = "message"
)

// FilterConfig selects action records by regex over one record field.
// An empty field reads the whole record line.
type FilterConfig struct {
	Type     FilterType  `toml:"type"`
	Logic    FilterLogic `toml:"logic"`
	Field    FilterField `toml:"field"`
	Patterns []string    `toml:"patterns"`
}

func validateFilter(filterIndex int, cfg *FilterConfig) error {
	switch cfg.Type {
	case FilterTypeInclude, FilterTypeExclude, "":
	default:
		return fmt.Errorf("filter[%d]: invalid type '%s' (must be 'include' or 'exclude')",
			filterIndex, cfg.Type)
	}

	switch cfg.Logic {
	case FilterLogicOr, FilterLogicAnd, "":
	default:
		return fmt.Errorf("filter[%d]: invalid logic '%s' (must be 'or' or 'and')",
			filterIndex, cfg.Logic)
	}

	switch cfg.Field {
	case FilterFieldRecord, FilterFieldChannel, FilterFieldLevel, FilterFieldMessage, "":
	default:
		return fmt.Errorf("filter[%d]: invalid field '%s' (must be 'record', 'channel', 'level' or 'message')",
			filterIndex, cfg.Field)
	}

	for i, pattern := range cfg.Patterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("filter[%d] pattern[%d] '%s': invalid regex: %w",
				filterIndex, i, pattern, err)
		}
	}

	return nil
}
