package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/aescanero/metricsvc/internal/logging"
	"github.com/caarlos0/env/v10"
	"github.com/prometheus/common/model"
)

// Config holds all configuration for metricsvc
type Config struct {
	// Server configuration
	BindAddr string `env:"METRICSVC_BIND_ADDR" envDefault:"0.0.0.0:3000"`

	// Logging configuration
	Log LogConfig

	// HTTP transport configuration
	HTTP HTTPConfig

	// Metrics configuration
	Metrics MetricsConfig

	// Tracing configuration
	Tracing TracingConfig
}

// LogConfig holds logger configuration
type LogConfig struct {
	Filter string `env:"METRICSVC_LOG" envDefault:"metricsvc=debug"`
	Format string `env:"METRICSVC_LOG_FORMAT" envDefault:"console"`
}

// HTTPConfig holds HTTP server timeouts and protocol settings. Zero timeouts disable the limit.
type HTTPConfig struct {
	EnableH2C         bool          `env:"METRICSVC_H2C" envDefault:"true"`
	ReadHeaderTimeout time.Duration `env:"METRICSVC_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"METRICSVC_READ_TIMEOUT" envDefault:"0s"`
	WriteTimeout      time.Duration `env:"METRICSVC_WRITE_TIMEOUT" envDefault:"0s"`
	IdleTimeout       time.Duration `env:"METRICSVC_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout   time.Duration `env:"METRICSVC_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// MetricsConfig holds request metrics configuration
type MetricsConfig struct {
	Namespace      string    `env:"METRICSVC_METRICS_NAMESPACE" envDefault:"metricsvc"`
	Buckets        []float64 `env:"METRICSVC_METRICS_BUCKETS" envSeparator:"," envDefault:"0.005,0.01,0.025,0.05,0.1,0.25,0.5,1,2.5,5,10"`
	RuntimeMetrics bool      `env:"METRICSVC_RUNTIME_METRICS" envDefault:"false"`
}

// TracingConfig holds span export configuration
type TracingConfig struct {
	Enabled     bool   `env:"METRICSVC_TRACING" envDefault:"true"`
	ServiceName string `env:"METRICSVC_SERVICE_NAME" envDefault:"metricsvc"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate bind address
	_, port, err := net.SplitHostPort(c.BindAddr)
	if err != nil {
		return fmt.Errorf("invalid bind address %q: %w", c.BindAddr, err)
	}
	if p, err := strconv.Atoi(port); err != nil || p < 0 || p > 65535 {
		return fmt.Errorf("invalid bind port: %s", port)
	}

	// Validate logging. A bad filter is not an error: logging.New falls back to its default.
	if c.Log.Format != logging.FormatConsole && c.Log.Format != logging.FormatJSON {
		return fmt.Errorf("invalid log format: %s (must be console or json)", c.Log.Format)
	}

	// Validate timeouts
	timeouts := []struct {
		name  string
		value time.Duration
	}{
		{"read header", c.HTTP.ReadHeaderTimeout},
		{"read", c.HTTP.ReadTimeout},
		{"write", c.HTTP.WriteTimeout},
		{"idle", c.HTTP.IdleTimeout},
		{"shutdown", c.HTTP.ShutdownTimeout},
	}
	for _, to := range timeouts {
		if to.value < 0 {
			return fmt.Errorf("%s timeout must not be negative", to.name)
		}
	}

	// Validate metrics
	if !model.IsValidMetricName(model.LabelValue(c.Metrics.Namespace)) {
		return fmt.Errorf("invalid metrics namespace: %q", c.Metrics.Namespace)
	}
	if len(c.Metrics.Buckets) == 0 {
		return fmt.Errorf("at least one histogram bucket is required")
	}
	for i := 1; i < len(c.Metrics.Buckets); i++ {
		if c.Metrics.Buckets[i] <= c.Metrics.Buckets[i-1] {
			return fmt.Errorf("histogram buckets must be strictly increasing")
		}
	}

	// Validate tracing
	if c.Tracing.Enabled && c.Tracing.ServiceName == "" {
		return fmt.Errorf("service name is required when tracing is enabled")
	}

	return nil
}
