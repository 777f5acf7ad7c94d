package notation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/readahead"

	"github.com/ardnew/kumihan/log"
	"github.com/ardnew/kumihan/metrics"
	"github.com/ardnew/kumihan/pkg"
)

// Coordinator parses whole documents. It is safe for concurrent use; each
// call builds its own pipeline, and only the result cache is shared.
type Coordinator struct {
	cfg      Config
	logger   log.Logger
	registry Registry
	metrics  metrics.Recorder
	sampler  MemorySampler
	cache    *resultCache
}

// Option configures a [Coordinator].
type Option func(*Coordinator)

// WithLogger sets the logger. The zero [log.Logger] discards everything.
func WithLogger(l log.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithRegistry sets the keyword registry. A nil registry accepts every
// keyword.
func WithRegistry(r Registry) Option {
	return func(c *Coordinator) { c.registry = r }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m metrics.Recorder) Option {
	return func(c *Coordinator) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithMemorySampler replaces the heap sampler used by the memory monitor.
func WithMemorySampler(f MemorySampler) Option {
	return func(c *Coordinator) { c.sampler = f }
}

// NewCoordinator validates cfg and returns a coordinator using
// [DefaultRegistry] unless opts say otherwise. An invalid cfg fails with
// [ErrConfiguration].
func NewCoordinator(cfg Config, opts ...Option) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Coordinator{
		cfg:      cfg,
		registry: DefaultRegistry(),
		metrics:  metrics.NoOp(),
		sampler:  heapInUse,
		cache:    newResultCache(cfg.ResultCacheSize),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Config returns the coordinator's configuration.
func (c *Coordinator) Config() Config { return c.cfg }

// Stats returns result cache counters.
func (c *Coordinator) Stats() CacheStats { return c.cache.stats() }

// ClearCache drops every cached result.
func (c *Coordinator) ClearCache() { c.cache.purge() }

// Parse parses text. It never fails: malformed input yields error nodes
// and diagnostics in the result. Identical text and context identity return
// the same cached *ParseResult, which callers must not modify.
func (c *Coordinator) Parse(
	ctx context.Context,
	text string,
	pc *ParseContext,
) *ParseResult {
	if ctx == nil {
		ctx = context.Background()
	}

	key := cacheKey(text, pc)
	headings := pc.stateInt(stateHeadingCount)

	compute := func() computed {
		r, keep := c.parse(ctx, text, pc, key)

		return computed{result: r, keep: keep, abandoned: !keep && ctx.Err() != nil}
	}

	out, hit := c.cache.get(key, compute)
	if out.abandoned && ctx.Err() == nil {
		// Joined a run whose caller gave up; this caller is still live.
		out = c.cache.run(key, compute)
	}

	result := out.result

	// Results never write the caller's State, so advance the counter
	// here for hits and misses alike.
	pc.setState(stateHeadingCount, headings+countHeadings(result.Nodes))

	if hit {
		c.metrics.CacheHit()
	} else {
		c.metrics.CacheMiss()
	}

	c.logger.TraceContext(ctx, "cache lookup",
		slog.String("cache_key", strconv.FormatUint(key, 36)),
		slog.Bool("cache_hit", hit),
	)

	return result
}

// ParseReader reads all of r and parses it. Only reading can fail.
func (c *Coordinator) ParseReader(
	ctx context.Context,
	r io.Reader,
	pc *ParseContext,
) (*ParseResult, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		source := "reader"
		if pc != nil && pc.SourceID != "" {
			source = pc.SourceID
		}

		return nil, ErrReadInput.Wrap(err).With(slog.String("source", source))
	}

	c.logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return c.Parse(ctx, string(data), pc), nil
}

// output collects the nodes and diagnostics of one parse.
type output struct {
	nodes  []*Node
	errs   []*Error
	warns  []*Error
	blocks int
	chunks int
}

func (o *output) add(p *pipeline) {
	o.nodes = append(o.nodes, p.nodes...)
	o.errs = append(o.errs, p.errs...)
	o.warns = append(o.warns, p.warns...)
	o.blocks += p.blocks
}

// parse runs the pipeline and assembles the result. The second return
// value is false when processing was cut short, so the result is not
// cached.
func (c *Coordinator) parse(
	ctx context.Context,
	text string,
	pc *ParseContext,
	key uint64,
) (*ParseResult, bool) {
	start := time.Now()
	lines := splitLines(text)

	ctx, cancel := context.WithTimeout(ctx, c.cfg.DocumentTimeout)
	defer cancel()

	parallel := len(lines) > c.cfg.ParallelThreshold

	var (
		out      *output
		complete bool
	)

	if parallel {
		out, complete = c.parseParallel(ctx, lines, pc)
	} else {
		out, complete = c.parseSequential(ctx, lines, pc)
	}

	assignHeadingIDs(out.nodes, pc.stateInt(stateHeadingCount))

	result := &ParseResult{
		Success:  len(out.errs) == 0,
		Nodes:    out.nodes,
		Errors:   describeAll(out.errs),
		Warnings: describeAll(out.warns),
		Metadata: map[string]any{
			MetaBlockCount: out.blocks,
			MetaNodeCount:  countNodes(out.nodes),
			MetaLineCount:  len(lines),
			MetaChunkCount: out.chunks,
			MetaParallel:   parallel,
			MetaCacheKey:   strconv.FormatUint(key, 36),
			MetaRunID:      uuid.NewString(),
			MetaParser:     pkg.Name + "/" + pkg.Version(),
		},
	}

	if result.Nodes == nil {
		result.Nodes = []*Node{}
	}

	elapsed := time.Since(start)
	result.Metadata[MetaDuration] = float64(elapsed.Microseconds()) / 1000

	c.metrics.ObserveParse(elapsed, len(result.Nodes), parallel)
	c.logger.DebugContext(ctx, "parse complete",
		slog.Int("lines", len(lines)),
		slog.Int("blocks", out.blocks),
		slog.Int("nodes", len(result.Nodes)),
		slog.Bool("parallel", parallel),
		slog.Duration("elapsed", elapsed),
	)

	return result, complete
}

func (c *Coordinator) parseSequential(
	ctx context.Context,
	lines []string,
	pc *ParseContext,
) (*output, bool) {
	out := &output{chunks: 1}
	p := c.newPipeline(pc)

	err := p.run(ctx, lines, 0)
	if err != nil {
		p.nodes = append(p.nodes, c.abort(ctx, p, len(lines), err))
	}

	out.add(p)

	return out, err == nil
}

// abort records why a pipeline stopped and returns the error node marking
// the point where output ends.
func (c *Coordinator) abort(
	ctx context.Context,
	p *pipeline,
	lineCount int,
	cause error,
) *Node {
	e := ErrDocumentTimeout
	if !errors.Is(cause, context.DeadlineExceeded) {
		e = ErrChunkProcessing
	}

	err := e.Wrap(cause).With(slog.Int("lines", lineCount))
	p.errs = append(p.errs, err)

	c.logger.WarnContext(ctx, "parse aborted", slog.Any("error", err))

	return p.builder.BuildError(err.Error(), "", "", p.firstLine, []string{err.describe()})
}

// Validate returns human-readable diagnostics for text without caching or
// logging: unbalanced blocks, marker syntax problems, bracket errors and
// stray closing markers.
func (c *Coordinator) Validate(
	ctx context.Context,
	text string,
	pc *ParseContext,
) []string {
	if ctx == nil {
		ctx = context.Background()
	}

	lines := splitLines(text)

	p := c.newPipeline(pc)
	p.logger = log.Logger{}

	blocks := p.segmenter.Segment(lines)
	for i := range blocks {
		blocks[i].Start += p.firstLine - 1
	}

	diags := p.segmenter.Validate(blocks)

	if err := p.run(ctx, lines, 0); err != nil {
		diags = append(diags, ErrChunkProcessing.Wrap(err).describe())
	}

	for _, e := range slices.Concat(p.errs, p.warns) {
		if errors.Is(e, ErrBlockBoundary) {
			continue
		}

		if msg := e.describe(); !slices.Contains(diags, msg) {
			diags = append(diags, msg)
		}
	}

	return diags
}

// ParserInfo describes the parser.
type ParserInfo struct {
	Name             string   `json:"name" yaml:"name"`
	Version          string   `json:"version" yaml:"version"`
	SupportedFormats []string `json:"supported_formats" yaml:"supported_formats"`
	Capabilities     []string `json:"capabilities" yaml:"capabilities"`
}

var supportedFormats = []string{"kumihan", "text", "txt", ".txt", ".kumihan"}

// Info returns the parser's name, version, input formats and capabilities.
func (c *Coordinator) Info() ParserInfo {
	return ParserInfo{
		Name:             pkg.Name,
		Version:          pkg.Version(),
		SupportedFormats: slices.Clone(supportedFormats),
		Capabilities: []string{
			"block_markers",
			"compound_keywords",
			"ruby",
			"nested_lists",
			"block_recovery",
			"result_cache",
			"parallel_chunks",
			"memory_monitor",
		},
	}
}

// SupportsFormat reports whether hint names a supported input format. A
// file name is matched by its extension.
func (c *Coordinator) SupportsFormat(hint string) bool {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if slices.Contains(supportedFormats, hint) {
		return true
	}

	ext := filepath.Ext(hint)

	return ext != "" && ext != hint && slices.Contains(supportedFormats, ext)
}

// assignHeadingIDs numbers headings in document order, continuing after
// start.
func assignHeadingIDs(nodes []*Node, start int) {
	n := start

	for _, root := range nodes {
		for node := range root.All() {
			if node.Type != KindHeading.String() {
				continue
			}

			n++
			node.Attributes.Set(AttrID, "heading-"+strconv.Itoa(n))
		}
	}
}

func countHeadings(nodes []*Node) int {
	total := 0

	for _, root := range nodes {
		for node := range root.All() {
			if node.Type == KindHeading.String() {
				total++
			}
		}
	}

	return total
}

func countNodes(nodes []*Node) int {
	total := 0

	for _, root := range nodes {
		for range root.All() {
			total++
		}
	}

	return total
}

func describeAll(errs []*Error) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.describe()
	}

	return out
}
