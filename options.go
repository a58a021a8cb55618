package dnlib

import (
	"log/slog"

	"github.com/chuacw/dnlib/tables"
)

type options struct {
	logger         *Logger
	metrics        MetricsCollector
	linearFallback []tables.Table
}

// Option configures Resolver construction.
type Option func(*options)

// WithLogger configures structured logging for resolution operations.
// The default is a logger that discards everything.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// resolution operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithLinearFallback extends the set of tables for which FindByKey falls
// back to a linear scan when the table's sorted declaration is false.
//
// The default set is exactly {GenericParam}: its sorted flag is the one
// declaration known to be violated by real-world tooling. Extend it only
// for metadata produced by an editor you know emits other tables unsorted.
func WithLinearFallback(ts ...tables.Table) Option {
	return func(o *options) {
		o.linearFallback = append(o.linearFallback, ts...)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:         NoopLogger(),
		metrics:        NoopMetricsCollector{},
		linearFallback: []tables.Table{tables.GenericParam},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
