package logging

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// OffLevel disables every entry for the targets it is applied to.
const OffLevel = zapcore.FatalLevel + 1

// fallbackLevel applies to loggers no directive matches when the filter has no bare level.
const fallbackLevel = zapcore.ErrorLevel

// ErrEmptyTarget is returned for directives such as "=debug".
var ErrEmptyTarget = errors.New("empty log target")

// Directive sets the minimum level for one logger name prefix.
type Directive struct {
	Target string
	Level  zapcore.Level
}

// Filter decides the minimum enabled level per logger name.
type Filter struct {
	defaultLevel zapcore.Level
	directives   []Directive
}

// ParseFilter parses a filter string such as "info,metricsvc=debug".
func ParseFilter(text string) (Filter, error) {
	f := Filter{defaultLevel: fallbackLevel}

	for _, raw := range strings.Split(text, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		target, levelText, hasTarget := strings.Cut(raw, "=")
		if !hasTarget {
			lvl, err := parseLevel(raw)
			if err != nil {
				return Filter{}, err
			}
			f.defaultLevel = lvl
			continue
		}

		target = strings.TrimSpace(target)
		if target == "" {
			return Filter{}, fmt.Errorf("invalid directive %q: %w", raw, ErrEmptyTarget)
		}
		lvl, err := parseLevel(strings.TrimSpace(levelText))
		if err != nil {
			return Filter{}, fmt.Errorf("invalid directive %q: %w", raw, err)
		}
		f.directives = append(f.directives, Directive{Target: target, Level: lvl})
	}

	return f, nil
}

// LevelFor returns the minimum level enabled for the named logger
func (f Filter) LevelFor(name string) zapcore.Level {
	lvl := f.defaultLevel
	best := -1
	for _, d := range f.directives {
		if len(d.Target) > best && matchesTarget(name, d.Target) {
			best = len(d.Target)
			lvl = d.Level
		}
	}
	return lvl
}

// MinLevel returns the lowest level enabled for any logger
func (f Filter) MinLevel() zapcore.Level {
	lvl := f.defaultLevel
	for _, d := range f.directives {
		if d.Level < lvl {
			lvl = d.Level
		}
	}
	return lvl
}

// Directives returns a copy of the parsed target directives
func (f Filter) Directives() []Directive {
	out := make([]Directive, len(f.directives))
	copy(out, f.directives)
	return out
}

func matchesTarget(name, target string) bool {
	if !strings.HasPrefix(name, target) {
		return false
	}
	return len(name) == len(target) || name[len(target)] == '.'
}

func parseLevel(text string) (zapcore.Level, error) {
	switch strings.ToLower(text) {
	case "trace", "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "off":
		return OffLevel, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", text)
	}
}

// filterCore drops entries below the level its Filter assigns to the entry's logger name.
type filterCore struct {
	zapcore.Core
	filter Filter
}

// NewFilterCore wraps core so that entries are filtered by logger name.
func NewFilterCore(core zapcore.Core, filter Filter) zapcore.Core {
	return &filterCore{Core: core, filter: filter}
}

func (c *filterCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= c.filter.MinLevel() && c.Core.Enabled(lvl)
}

func (c *filterCore) With(fields []zapcore.Field) zapcore.Core {
	return &filterCore{Core: c.Core.With(fields), filter: c.filter}
}

func (c *filterCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if ent.Level < c.filter.LevelFor(ent.LoggerName) {
		return ce
	}
	return c.Core.Check(ent, ce)
}
