package collectors

import (
	"context"
	"runtime"
	"time"

	"github.com/iulianpascalau/metrics-registry/metrics"
)

const runtimeComponent = "go_runtime"

const (
	memoryKindLabel = "kind"
	memoryKindAlloc = "alloc"
	memoryKindSys   = "sys"
	memoryKindHeap  = "heap_inuse"
)

// NewRuntimeCollector returns a collector contributing process-level metrics: the number
// of goroutines, a labeled memory gauge and the process uptime counter
func NewRuntimeCollector() Collector {
	startTime := time.Now()

	goroutines, _ := metrics.NewBaseDefinition(metrics.ArgsBaseDefinition{
		Component:   runtimeComponent,
		Name:        "goroutines",
		Type:        metrics.GaugeType,
		Description: "Number of goroutines currently running",
		Handler: func(_ context.Context, _ metrics.Config) ([]metrics.MetricValue, error) {
			return []metrics.MetricValue{metrics.NewValue(float64(runtime.NumGoroutine()))}, nil
		},
	})

	memoryValidator := metrics.NewLabelNameValidator(memoryKindLabel)
	memory, _ := metrics.NewBaseDefinition(metrics.ArgsBaseDefinition{
		Component:   runtimeComponent,
		Name:        "memory_bytes",
		Type:        metrics.GaugeType,
		Description: "Memory usage of the process, by kind",
		Validator:   memoryValidator,
		Handler: func(_ context.Context, _ metrics.Config) ([]metrics.MetricValue, error) {
			memStats := &runtime.MemStats{}
			runtime.ReadMemStats(memStats)

			return []metrics.MetricValue{
				metrics.NewValue(float64(memStats.Alloc), metrics.Label{Name: memoryKindLabel, Value: memoryKindAlloc}),
				metrics.NewValue(float64(memStats.Sys), metrics.Label{Name: memoryKindLabel, Value: memoryKindSys}),
				metrics.NewValue(float64(memStats.HeapInuse), metrics.Label{Name: memoryKindLabel, Value: memoryKindHeap}),
			}, nil
		},
	})

	uptime, _ := metrics.NewBaseDefinition(metrics.ArgsBaseDefinition{
		Component:   runtimeComponent,
		Name:        "uptime_seconds",
		Type:        metrics.CounterType,
		Description: "Seconds elapsed since the process started",
		Handler: func(_ context.Context, _ metrics.Config) ([]metrics.MetricValue, error) {
			return []metrics.MetricValue{metrics.NewValue(time.Since(startTime).Seconds())}, nil
		},
	})

	return FromDefinitions(goroutines, memory, uptime)
}
