package bootstrap

import (
	"github.com/provenio/registry/common/config"
	"github.com/provenio/registry/common/logger"
)

// Option configures the bootstrap process
type Option func(*options)

type options struct {
	skipStore     bool
	skipTelemetry bool
	customLogger  *logger.Logger
	customConfig  *config.Config
}

// WithoutStore skips opening the durable store
func WithoutStore() Option {
	return func(o *options) {
		o.skipStore = true
	}
}

// WithoutTelemetry skips telemetry initialization
func WithoutTelemetry() Option {
	return func(o *options) {
		o.skipTelemetry = true
	}
}

// WithCustomLogger uses a custom logger instead of creating one
func WithCustomLogger(log *logger.Logger) Option {
	return func(o *options) {
		o.customLogger = log
	}
}

// WithCustomConfig uses a custom config instead of loading from env
func WithCustomConfig(cfg *config.Config) Option {
	return func(o *options) {
		o.customConfig = cfg
	}
}

func defaultOptions() *options {
	return &options{}
}
