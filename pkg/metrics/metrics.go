// Package metrics measures operation latency, the on-disk footprint of the
// data directory and process memory usage.
package metrics

import (
	"context"
	"os"
	"runtime"
	"time"
)

// Timed pairs a result with the wall time spent producing it.
type Timed[T any] struct {
	Data T       `json:"data"`
	Ms   float64 `json:"ms"`
}

// Measure runs fn and reports its result with the elapsed milliseconds.
func Measure[T any](fn func() (T, error)) (Timed[T], error) {
	start := time.Now()
	data, err := fn()
	elapsed := time.Since(start)
	return Timed[T]{
		Data: data,
		Ms:   float64(elapsed.Nanoseconds()) / 1e6,
	}, err
}

// Sizer reports the size of the data directory.
type Sizer interface {
	DirectorySizeBytes(ctx context.Context) (int64, error)
}

// FootprintReport describes disk usage. AppBytes is nil when the size of the
// running executable cannot be determined.
type FootprintReport struct {
	DataBytes int64  `json:"dataBytes"`
	AppBytes  *int64 `json:"appBytes"`
}

// Footprint sums the data directory and stats the current executable.
func Footprint(ctx context.Context, s Sizer) (FootprintReport, error) {
	dataBytes, err := s.DirectorySizeBytes(ctx)
	if err != nil {
		return FootprintReport{}, err
	}
	return FootprintReport{
		DataBytes: dataBytes,
		AppBytes:  executableSize(),
	}, nil
}

func executableSize() *int64 {
	exe, err := os.Executable()
	if err != nil {
		return nil
	}
	info, err := os.Stat(exe)
	if err != nil {
		return nil
	}
	size := info.Size()
	return &size
}

// MemoryReport is a snapshot of Go runtime memory statistics, in bytes.
type MemoryReport struct {
	Sys        uint64 `json:"sys"`
	HeapSys    uint64 `json:"heapSys"`
	HeapAlloc  uint64 `json:"heapAlloc"`
	StackInuse uint64 `json:"stackInuse"`
	NumGC      uint32 `json:"numGC"`
}

// MemoryUsage reads the current runtime memory statistics.
func MemoryUsage() MemoryReport {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return MemoryReport{
		Sys:        ms.Sys,
		HeapSys:    ms.HeapSys,
		HeapAlloc:  ms.HeapAlloc,
		StackInuse: ms.StackInuse,
		NumGC:      ms.NumGC,
	}
}
