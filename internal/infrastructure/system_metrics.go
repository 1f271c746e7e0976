package infrastructure

import (
	"context"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// RegisterRuntimeMetrics exposes process gauges that are sampled on every
// collection: goroutines, heap usage, completed GC cycles and uptime.
func RegisterRuntimeMetrics(meter metric.Meter, startTime time.Time) error {
	goRoutines, err := meter.Int64ObservableGauge(
		"system_goroutines",
		metric.WithDescription("Number of active goroutines"),
	)
	if err != nil {
		return err
	}

	heapAlloc, err := meter.Int64ObservableGauge(
		"system_memory_allocated_bytes",
		metric.WithDescription("Heap memory allocated by the Go runtime"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return err
	}

	gcCount, err := meter.Int64ObservableCounter(
		"system_gc_count_total",
		metric.WithDescription("Total number of completed GC cycles"),
	)
	if err != nil {
		return err
	}

	uptime, err := meter.Float64ObservableGauge(
		"system_uptime_seconds",
		metric.WithDescription("Process uptime in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := ReadSystemStats(startTime)
		o.ObserveInt64(goRoutines, int64(stats.Goroutines))
		o.ObserveInt64(heapAlloc, int64(stats.HeapAllocBytes))
		o.ObserveInt64(gcCount, int64(stats.GCCycles))
		o.ObserveFloat64(uptime, stats.Uptime.Seconds())
		return nil
	}, goRoutines, heapAlloc, gcCount, uptime)
	return err
}

// SystemStats is a point-in-time view of the process
type SystemStats struct {
	Goroutines     int           `json:"goroutines"`
	HeapAllocBytes uint64        `json:"heap_alloc_bytes"`
	SysBytes       uint64        `json:"sys_bytes"`
	GCCycles       uint32        `json:"gc_cycles"`
	NumCPU         int           `json:"num_cpu"`
	Uptime         time.Duration `json:"uptime"`
}

// ReadSystemStats samples the Go runtime
func ReadSystemStats(startTime time.Time) SystemStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SystemStats{
		Goroutines:     runtime.NumGoroutine(),
		HeapAllocBytes: m.HeapAlloc,
		SysBytes:       m.Sys,
		GCCycles:       m.NumGC,
		NumCPU:         runtime.NumCPU(),
		Uptime:         time.Since(startTime),
	}
}
