package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported encodings
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// DefaultFilter is used when Options.Filter is empty or fails to parse
const DefaultFilter = "metricsvc=debug"

// Options configures New
type Options struct {
	// Name is the root logger name the filter targets are matched against.
	Name   string
	Filter string
	Format string
	// OutputPaths defaults to stderr.
	OutputPaths []string
}

// New builds a zap logger whose verbosity is controlled by opts.Filter.
// An invalid filter is not fatal: the logger falls back to DefaultFilter
// and logs a warning naming the rejected value.
func New(opts Options) (*zap.Logger, error) {
	filterText := opts.Filter
	if filterText == "" {
		filterText = DefaultFilter
	}
	filter, filterErr := ParseFilter(filterText)
	if filterErr != nil {
		var err error
		if filter, err = ParseFilter(DefaultFilter); err != nil {
			return nil, fmt.Errorf("failed to parse default log filter: %w", err)
		}
	}

	var cfg zap.Config
	switch opts.Format {
	case FormatJSON:
		cfg = zap.NewProductionConfig()
	case FormatConsole, "":
		cfg = zap.NewDevelopmentConfig()
		cfg.Development = false
	default:
		return nil, fmt.Errorf("unsupported log format: %s", opts.Format)
	}

	// Every request summary line must be written.
	cfg.Sampling = nil
	// Levels are decided by the filter core.
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if len(opts.OutputPaths) > 0 {
		cfg.OutputPaths = opts.OutputPaths
	}

	logger, err := cfg.Build(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return NewFilterCore(core, filter)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	if opts.Name != "" {
		logger = logger.Named(opts.Name)
	}

	if filterErr != nil {
		logger.Warn("invalid log filter, using default",
			zap.String("filter", opts.Filter),
			zap.String("default", DefaultFilter),
			zap.Error(filterErr))
	}

	return logger, nil
}
