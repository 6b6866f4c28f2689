package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	initOnce sync.Once
	registry *prometheus.Registry

	// EntriesRemovedTotal tracks files and directories removed
	EntriesRemovedTotal prometheus.Counter

	// BytesFreedTotal tracks total bytes freed across all runs
	BytesFreedTotal prometheus.Counter

	// ErrorsTotal tracks hard failures during removal
	ErrorsTotal prometheus.Counter

	// LastRunTimestamp records Unix timestamp of the last sweep run
	LastRunTimestamp prometheus.Gauge

	// RunDuration tracks how long sweep runs take
	RunDuration prometheus.Histogram

	// CategoryRemovedTotal tracks entries removed per plan category
	CategoryRemovedTotal *prometheus.CounterVec
)

// Init initializes and registers all sweep metrics.
// Safe to call multiple times (uses sync.Once).
func Init() {
	initOnce.Do(func() {
		registry = prometheus.NewRegistry()

		EntriesRemovedTotal = NewCounter(
			"reposweep_entries_removed_total",
			"Total number of files and directories removed.",
		)

		BytesFreedTotal = NewBytesCounter(
			"reposweep_bytes_freed_total",
			"Total bytes freed by removals.",
		)

		ErrorsTotal = NewCounter(
			"reposweep_errors_total",
			"Total number of hard failures during removal.",
		)

		LastRunTimestamp = NewSizeGauge(
			"reposweep_last_run_timestamp",
			"Timestamp of the last sweep run (Unix epoch seconds).",
		)

		RunDuration = NewDurationHistogram(
			"reposweep_run_duration_seconds",
			"Duration of sweep runs in seconds.",
		)

		CategoryRemovedTotal = NewCounterVec(
			"reposweep_category_entries_removed_total",
			"Entries removed per plan category.",
			[]string{"category"},
		)

		registry.MustRegister(EntriesRemovedTotal)
		registry.MustRegister(BytesFreedTotal)
		registry.MustRegister(ErrorsTotal)
		registry.MustRegister(LastRunTimestamp)
		registry.MustRegister(RunDuration)
		registry.MustRegister(CategoryRemovedTotal)

		// Default values so every metric appears in the textfile even
		// for a run that removed nothing
		LastRunTimestamp.Set(0)
	})
}

// Gatherer exposes the sweep registry for export
func Gatherer() prometheus.Gatherer {
	Init()
	return registry
}

// RecordRun updates the last run timestamp to current time
func RecordRun() {
	LastRunTimestamp.Set(float64(time.Now().Unix()))
}

// RecordCategoryRemoval records one removed entry for a plan category
func RecordCategoryRemoval(category string) {
	CategoryRemovedTotal.WithLabelValues(category).Inc()
}
