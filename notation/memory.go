package notation

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryLevel is the pressure reported by the memory monitor.
type MemoryLevel int32

const (
	MemoryNormal MemoryLevel = iota
	MemoryWarning
	MemoryCritical
)

func (l MemoryLevel) String() string {
	switch l {
	case MemoryWarning:
		return "warning"
	case MemoryCritical:
		return "critical"
	default:
		return "normal"
	}
}

// MemorySampler returns the current heap usage in bytes.
type MemorySampler func() uint64

// heapInUse samples the Go heap.
func heapInUse() uint64 {
	var ms runtime.MemStats

	runtime.ReadMemStats(&ms)

	return ms.HeapAlloc
}

const mb = 1 << 20

// memoryMonitor samples heap usage on a fixed cadence while a parallel
// parse runs and publishes the latest level.
type memoryMonitor struct {
	sample   MemorySampler
	warning  uint64
	critical uint64
	interval time.Duration

	level   atomic.Int32
	failure atomic.Pointer[Error]
	wg      sync.WaitGroup
}

func newMemoryMonitor(cfg Config, sample MemorySampler) *memoryMonitor {
	if sample == nil {
		sample = heapInUse
	}

	return &memoryMonitor{
		sample:   sample,
		warning:  uint64(cfg.MemoryWarningMB) * mb,
		critical: uint64(cfg.MemoryCriticalMB) * mb,
		interval: cfg.MemorySampleInterval,
	}
}

// check takes one sample and stores the resulting level. A panicking
// sampler is recorded as a failure and reads as normal.
func (m *memoryMonitor) check() (level MemoryLevel) {
	defer func() {
		if r := recover(); r != nil {
			m.failure.CompareAndSwap(nil, ErrMemoryMonitoring.With(
				slog.String("panic", fmt.Sprint(r)),
			))
			m.level.Store(int32(MemoryNormal))

			level = MemoryNormal
		}
	}()

	used := m.sample()

	switch {
	case used >= m.critical:
		level = MemoryCritical
	case used >= m.warning:
		level = MemoryWarning
	}

	m.level.Store(int32(level))

	return level
}

// Err returns the first sampling failure, if any.
func (m *memoryMonitor) Err() *Error { return m.failure.Load() }

// Level returns the most recent sample's level.
func (m *memoryMonitor) Level() MemoryLevel {
	return MemoryLevel(m.level.Load())
}

// start samples immediately and then every interval until ctx is done.
// The returned function stops sampling and waits for the sampler to exit.
func (m *memoryMonitor) start(ctx context.Context) (stop func()) {
	m.check()

	ctx, cancel := context.WithCancel(ctx)

	m.wg.Add(1)

	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.check()
			}
		}
	}()

	return func() {
		cancel()
		m.wg.Wait()
	}
}

// reclaim forces a collection and returns freed memory to the OS.
func reclaim() {
	runtime.GC()
	debug.FreeOSMemory()
}
