package cli

import (
	"runtime"
	"strconv"
	"time"

	"github.com/alecthomas/kong"

	"github.com/ardnew/kumihan/notation"
)

// parserConfig exposes [notation.Config] as flags. Flag names match the
// configuration file keys with underscores replaced by hyphens.
type parserConfig struct {
	ChunkMinLines        int           `default:"${chunkMinLines}"        help:"Minimum lines per parallel chunk."`
	ChunkMaxLines        int           `default:"${chunkMaxLines}"        help:"Maximum lines per parallel chunk."`
	ParallelThreshold    int           `default:"${parallelThreshold}"    help:"Documents longer than this many lines are parsed in parallel."`
	Workers              int           `default:"${workers}"              help:"Maximum concurrent chunk workers."`
	MemoryWarningMB      int           `default:"${memoryWarningMB}"      help:"Heap size (MiB) that shrinks chunks." name:"memory-warning-mb"`
	MemoryCriticalMB     int           `default:"${memoryCriticalMB}"     help:"Heap size (MiB) that purges caches." name:"memory-critical-mb"`
	MemorySampleInterval time.Duration `default:"${memorySampleInterval}" help:"Heap sampling interval during parallel parses."`
	ChunkTimeout         time.Duration `default:"${chunkTimeout}"         help:"Time limit for one chunk."`
	DocumentTimeout      time.Duration `default:"${documentTimeout}"      help:"Time limit for one document."`
	LineCacheSize        int           `default:"${lineCacheSize}"        help:"Line classification cache entries per pipeline."`
	ResultCacheSize      int           `default:"${resultCacheSize}"      help:"Parse result cache entries."`
}

func (parserConfig) vars() kong.Vars {
	return kong.Vars{
		"chunkMinLines":        strconv.Itoa(notation.DefaultChunkMinLines),
		"chunkMaxLines":        strconv.Itoa(notation.DefaultChunkMaxLines),
		"parallelThreshold":    strconv.Itoa(notation.DefaultParallelThreshold),
		"workers":              strconv.Itoa(runtime.GOMAXPROCS(0)),
		"memoryWarningMB":      strconv.Itoa(notation.DefaultMemoryWarningMB),
		"memoryCriticalMB":     strconv.Itoa(notation.DefaultMemoryCriticalMB),
		"memorySampleInterval": notation.DefaultMemorySampleInterval.String(),
		"chunkTimeout":         notation.DefaultChunkTimeout.String(),
		"documentTimeout":      notation.DefaultDocumentTimeout.String(),
		"lineCacheSize":        strconv.Itoa(notation.DefaultLineCacheSize),
		"resultCacheSize":      strconv.Itoa(notation.DefaultResultCacheSize),
	}
}

func (parserConfig) group() kong.Group {
	var group kong.Group

	group.Key = "parser"
	group.Title = "Parser options"

	return group
}

// config converts the flags into a parser configuration. Validation is
// left to [notation.NewCoordinator].
func (p parserConfig) config() notation.Config {
	return notation.Config{
		ChunkMinLines:        p.ChunkMinLines,
		ChunkMaxLines:        p.ChunkMaxLines,
		ParallelThreshold:    p.ParallelThreshold,
		Workers:              p.Workers,
		MemoryWarningMB:      p.MemoryWarningMB,
		MemoryCriticalMB:     p.MemoryCriticalMB,
		MemorySampleInterval: p.MemorySampleInterval,
		ChunkTimeout:         p.ChunkTimeout,
		DocumentTimeout:      p.DocumentTimeout,
		LineCacheSize:        p.LineCacheSize,
		ResultCacheSize:      p.ResultCacheSize,
	}
}
