package notation

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/zeebo/xxh3"
)

// ParseContext carries optional per-call state. It is owned by the caller and
// never retained by the parser after a call returns.
type ParseContext struct {
	// SourceID names the document (file path, URL, ...). It is part of the
	// cache identity.
	SourceID string
	// Line and Column locate the start of the text within SourceID.
	Line   int
	Column int
	// State is scratch space carried across parse calls for one document.
	// Only the heading counter ("heading_count") is part of the cache
	// identity, since it decides heading ids.
	State map[string]any
	// Config holds caller-specific settings. It is part of the cache
	// identity.
	Config map[string]any
}

// NewParseContext returns a context for the named source with empty state
// and configuration maps.
func NewParseContext(sourceID string) *ParseContext {
	return &ParseContext{
		SourceID: sourceID,
		Line:     1,
		Column:   1,
		State:    make(map[string]any),
		Config:   make(map[string]any),
	}
}

// identity hashes the parts of the context that influence parse output.
// A nil context hashes to zero.
func (c *ParseContext) identity() uint64 {
	if c == nil {
		return 0
	}

	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	_ = enc.Encode(c.SourceID)
	_ = enc.Encode(c.Line)
	_ = enc.Encode(c.stateInt(stateHeadingCount))

	for _, k := range sortedKeys(c.Config) {
		_ = enc.Encode(k)
		_ = enc.Encode(fmt.Sprint(c.Config[k]))
	}

	return xxh3.Hash(buf.Bytes())
}

// lineOffset returns the document line number of the first line of text.
func (c *ParseContext) lineOffset() int {
	if c == nil || c.Line < 1 {
		return 1
	}

	return c.Line
}

// stateHeadingCount is the State key of the running heading counter.
const stateHeadingCount = "heading_count"

// stateInt reads an integer counter from State.
func (c *ParseContext) stateInt(key string) int {
	if c == nil || c.State == nil {
		return 0
	}

	n, _ := c.State[key].(int)

	return n
}

func (c *ParseContext) setState(key string, v any) {
	if c == nil {
		return
	}

	if c.State == nil {
		c.State = make(map[string]any)
	}

	c.State[key] = v
}

// ParseResult is the outcome of one parse call. It is built once and must be
// treated as immutable, since cached results are shared between callers.
type ParseResult struct {
	Success  bool           `json:"success"`
	Nodes    []*Node        `json:"nodes"`
	Errors   []string       `json:"errors"`
	Warnings []string       `json:"warnings"`
	Metadata map[string]any `json:"metadata"`
}

// Metadata keys set on every ParseResult.
const (
	MetaBlockCount = "block_count"
	MetaNodeCount  = "node_count"
	MetaLineCount  = "line_count"
	MetaChunkCount = "chunk_count"
	MetaParallel   = "parallel"
	MetaCacheKey   = "cache_key"
	MetaRunID      = "run_id"
	MetaDuration   = "duration_ms"
	MetaParser     = "parser"
)
