package notation

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestMemoryMonitor_Levels(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MemoryWarningMB = 10
	cfg.MemoryCriticalMB = 20

	tests := []struct {
		used uint64
		want MemoryLevel
	}{
		{0, MemoryNormal},
		{9 * mb, MemoryNormal},
		{10 * mb, MemoryWarning},
		{19 * mb, MemoryWarning},
		{20 * mb, MemoryCritical},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			m := newMemoryMonitor(cfg, func() uint64 { return tt.used })

			if got := m.check(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}

			if got := m.Level(); got != tt.want {
				t.Errorf("expected stored level %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMemoryMonitor_SamplesUntilStopped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MemorySampleInterval = time.Millisecond

	var samples atomic.Int32

	m := newMemoryMonitor(cfg, func() uint64 {
		samples.Add(1)

		return 0
	})

	stop := m.start(context.Background())

	deadline := time.Now().Add(5 * time.Second)
	for samples.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	stop()

	n := samples.Load()
	if n < 3 {
		t.Fatalf("expected repeated sampling, got %d samples", n)
	}

	time.Sleep(10 * time.Millisecond)

	if samples.Load() != n {
		t.Error("expected sampling to stop")
	}
}

func TestMemoryMonitor_SamplerPanic(t *testing.T) {
	m := newMemoryMonitor(DefaultConfig(), func() uint64 { panic("no stats") })

	if got := m.check(); got != MemoryNormal {
		t.Errorf("expected normal level, got %v", got)
	}

	if m.Err() == nil {
		t.Error("expected a recorded monitoring failure")
	}
}

func TestHeapInUse(t *testing.T) {
	if heapInUse() == 0 {
		t.Error("expected non-zero heap usage")
	}
}
