package notation

import (
	"log/slog"
	"runtime"
	"time"
)

// Config holds the coordinator's thresholds.
type Config struct {
	// ChunkMinLines and ChunkMaxLines bound the chunk target on the parallel
	// path. A single block longer than ChunkMaxLines forms its own chunk.
	ChunkMinLines int `yaml:"chunk_min_lines"`
	ChunkMaxLines int `yaml:"chunk_max_lines"`
	// ParallelThreshold is the line count above which documents are chunked.
	ParallelThreshold int `yaml:"parallel_threshold"`
	// Workers bounds concurrently processed chunks.
	Workers int `yaml:"workers"`

	MemoryWarningMB      int           `yaml:"memory_warning_mb"`
	MemoryCriticalMB     int           `yaml:"memory_critical_mb"`
	MemorySampleInterval time.Duration `yaml:"memory_sample_interval"`

	ChunkTimeout    time.Duration `yaml:"chunk_timeout"`
	DocumentTimeout time.Duration `yaml:"document_timeout"`

	LineCacheSize   int `yaml:"line_cache_size"`
	ResultCacheSize int `yaml:"result_cache_size"`
}

// Default configuration values.
const (
	DefaultChunkMinLines        = 50
	DefaultChunkMaxLines        = 2000
	DefaultParallelThreshold    = 5000
	DefaultMemoryWarningMB      = 512
	DefaultMemoryCriticalMB     = 1024
	DefaultMemorySampleInterval = 100 * time.Millisecond
	DefaultChunkTimeout         = 30 * time.Second
	DefaultDocumentTimeout      = 5 * time.Minute
	DefaultResultCacheSize      = 64
)

// DefaultConfig returns the default thresholds. Workers defaults to
// GOMAXPROCS.
func DefaultConfig() Config {
	return Config{
		ChunkMinLines:        DefaultChunkMinLines,
		ChunkMaxLines:        DefaultChunkMaxLines,
		ParallelThreshold:    DefaultParallelThreshold,
		Workers:              runtime.GOMAXPROCS(0),
		MemoryWarningMB:      DefaultMemoryWarningMB,
		MemoryCriticalMB:     DefaultMemoryCriticalMB,
		MemorySampleInterval: DefaultMemorySampleInterval,
		ChunkTimeout:         DefaultChunkTimeout,
		DocumentTimeout:      DefaultDocumentTimeout,
		LineCacheSize:        DefaultLineCacheSize,
		ResultCacheSize:      DefaultResultCacheSize,
	}
}

// Validate checks every field and returns [ErrConfiguration] carrying one
// attribute per failed field, or nil.
func (c Config) Validate() error {
	var failed []slog.Attr

	fail := func(field, issue string) {
		failed = append(failed, slog.String(field, issue))
	}

	if c.ChunkMinLines < 1 {
		fail("chunk_min_lines", "must be at least 1")
	}

	if c.ChunkMaxLines < c.ChunkMinLines {
		fail("chunk_max_lines", "must not be less than chunk_min_lines")
	}

	if c.ParallelThreshold < 1 {
		fail("parallel_threshold", "must be at least 1")
	}

	if c.Workers < 1 {
		fail("workers", "must be at least 1")
	}

	if c.MemoryWarningMB < 1 {
		fail("memory_warning_mb", "must be at least 1")
	}

	if c.MemoryWarningMB >= c.MemoryCriticalMB {
		fail("memory_critical_mb", "must exceed memory_warning_mb")
	}

	if c.MemorySampleInterval <= 0 {
		fail("memory_sample_interval", "must be positive")
	}

	if c.ChunkTimeout <= 0 {
		fail("chunk_timeout", "must be positive")
	}

	if c.DocumentTimeout <= 0 {
		fail("document_timeout", "must be positive")
	}

	if c.LineCacheSize < 1 {
		fail("line_cache_size", "must be at least 1")
	}

	if c.ResultCacheSize < 1 {
		fail("result_cache_size", "must be at least 1")
	}

	if len(failed) == 0 {
		return nil
	}

	return ErrConfiguration.With(failed...)
}
