package dnlib

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordChildren is called after each child-list resolution.
	// count is the number of surviving rids returned.
	RecordChildren(duration time.Duration, count int)

	// RecordLookup is called after each keyed lookup (single or multi
	// match). found is false when the lookup produced no rows.
	RecordLookup(duration time.Duration, found bool)

	// RecordProjectionBuild is called once per sorted projection built.
	RecordProjectionBuild(rows int, duration time.Duration)

	// RecordSkippedRow is called for each row dropped because it could
	// not be read.
	RecordSkippedRow()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordChildren(time.Duration, int)        {}
func (NoopMetricsCollector) RecordLookup(time.Duration, bool)         {}
func (NoopMetricsCollector) RecordProjectionBuild(int, time.Duration) {}
func (NoopMetricsCollector) RecordSkippedRow()                        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ChildrenCount       atomic.Int64
	ChildrenRids        atomic.Int64
	ChildrenTotalNanos  atomic.Int64
	LookupCount         atomic.Int64
	LookupMisses        atomic.Int64
	LookupTotalNanos    atomic.Int64
	ProjectionBuilds    atomic.Int64
	ProjectionRows      atomic.Int64
	SkippedRows         atomic.Int64
}

// RecordChildren implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChildren(duration time.Duration, count int) {
	b.ChildrenCount.Add(1)
	b.ChildrenRids.Add(int64(count))
	b.ChildrenTotalNanos.Add(duration.Nanoseconds())
}

// RecordLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookup(duration time.Duration, found bool) {
	b.LookupCount.Add(1)
	b.LookupTotalNanos.Add(duration.Nanoseconds())
	if !found {
		b.LookupMisses.Add(1)
	}
}

// RecordProjectionBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordProjectionBuild(rows int, duration time.Duration) {
	b.ProjectionBuilds.Add(1)
	b.ProjectionRows.Add(int64(rows))
}

// RecordSkippedRow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSkippedRow() {
	b.SkippedRows.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ChildrenCount:    b.ChildrenCount.Load(),
		ChildrenRids:     b.ChildrenRids.Load(),
		ChildrenAvgNanos: avg(b.ChildrenTotalNanos.Load(), b.ChildrenCount.Load()),
		LookupCount:      b.LookupCount.Load(),
		LookupMisses:     b.LookupMisses.Load(),
		LookupAvgNanos:   avg(b.LookupTotalNanos.Load(), b.LookupCount.Load()),
		ProjectionBuilds: b.ProjectionBuilds.Load(),
		ProjectionRows:   b.ProjectionRows.Load(),
		SkippedRows:      b.SkippedRows.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ChildrenCount    int64
	ChildrenRids     int64
	ChildrenAvgNanos int64
	LookupCount      int64
	LookupMisses     int64
	LookupAvgNanos   int64
	ProjectionBuilds int64
	ProjectionRows   int64
	SkippedRows      int64
}
