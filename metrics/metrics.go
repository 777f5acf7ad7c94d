package metrics

import "time"

// Recorder receives parser events. Implementations must be safe for
// concurrent use and must not block.
type Recorder interface {
	// ObserveParse records one completed parse (cache misses only).
	ObserveParse(d time.Duration, nodes int, parallel bool)
	CacheHit()
	CacheMiss()
	// ObserveChunk records one chunk processed on the parallel path.
	ObserveChunk(d time.Duration, lines int)
	// ChunkFailed records a chunk replaced by an error node.
	ChunkFailed(reason string)
	// MemoryPressure records a sampled memory level above normal.
	MemoryPressure(level string)
}

// Chunk failure reasons.
const (
	ReasonTimeout = "timeout"
	ReasonPanic   = "panic"
	ReasonCancel  = "canceled"
)

type noop struct{}

// NoOp returns a Recorder that discards every event.
func NoOp() Recorder { return noop{} }

func (noop) ObserveParse(time.Duration, int, bool) {}
func (noop) CacheHit()                             {}
func (noop) CacheMiss()                            {}
func (noop) ObserveChunk(time.Duration, int)       {}
func (noop) ChunkFailed(string)                    {}
func (noop) MemoryPressure(string)                 {}
