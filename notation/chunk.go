package notation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/kumihan/metrics"
)

// chunkPlanner chooses chunk boundaries. It cuts only where a block
// starts, where segmentation state is empty, so segmenting each chunk on
// its own yields the same blocks as segmenting the whole document.
type chunkPlanner struct {
	cuts     []int
	lines    int
	min, max int
}

func newChunkPlanner(lines []string, cfg Config) *chunkPlanner {
	seg := NewBlockSegmenter(cfg.LineCacheSize)
	blocks := seg.Segment(lines)

	cuts := make([]int, 0, len(blocks))
	for _, b := range blocks {
		if b.Start > 0 {
			cuts = append(cuts, b.Start)
		}
	}

	return &chunkPlanner{
		cuts:  cuts,
		lines: len(lines),
		min:   cfg.ChunkMinLines,
		max:   cfg.ChunkMaxLines,
	}
}

// target returns the initial chunk size for workers.
func (p *chunkPlanner) target(workers int) int {
	t := (p.lines + workers - 1) / max(workers, 1)

	return min(max(t, p.min), p.max)
}

// shrink halves target, not below the minimum.
func (p *chunkPlanner) shrink(target int) int {
	return max(target/2, p.min)
}

// next returns the end (exclusive) of the chunk starting at start. It
// prefers the last cut within [start+min, start+target]; failing that, the
// first cut after start+target, which may exceed the maximum when a single
// block is longer than it.
func (p *chunkPlanner) next(start, target int) int {
	if p.lines-start <= target {
		return p.lines
	}

	lo, hi := start+p.min, start+target

	i := sort.SearchInts(p.cuts, hi+1)
	if i > 0 && p.cuts[i-1] >= lo && p.cuts[i-1] > start {
		return p.cuts[i-1]
	}

	if i < len(p.cuts) {
		return p.cuts[i]
	}

	return p.lines
}

// chunk is one unit of parallel work and its result slot.
type chunk struct {
	index      int
	start, end int

	out      output
	panicked any
}

func (c *Coordinator) parseParallel(
	ctx context.Context,
	lines []string,
	pc *ParseContext,
) (*output, bool) {
	planner := newChunkPlanner(lines, c.cfg)
	monitor := newMemoryMonitor(c.cfg, c.sampler)

	stop := monitor.start(ctx)

	var (
		g      errgroup.Group
		chunks []*chunk
	)

	g.SetLimit(c.cfg.Workers)

	target := planner.target(c.cfg.Workers)

	for start := 0; start < len(lines); {
		if ctx.Err() != nil {
			// The remainder is reported as one abandoned chunk.
			ch := &chunk{index: len(chunks), start: start, end: len(lines)}
			c.failChunk(ctx, ch, pc, ctx.Err())
			chunks = append(chunks, ch)

			break
		}

		target = c.relieve(ctx, monitor.Level(), planner, target)

		ch := &chunk{
			index: len(chunks),
			start: start,
			end:   planner.next(start, target),
		}
		chunks = append(chunks, ch)
		start = ch.end

		c.logger.DebugContext(ctx, "dispatch chunk",
			slog.Int("chunk", ch.index),
			slog.Int("start", ch.start),
			slog.Int("end", ch.end),
		)

		g.Go(func() error {
			c.runChunk(ctx, ch, lines[ch.start:ch.end], pc)

			return nil
		})
	}

	_ = g.Wait()

	stop()

	out := &output{chunks: len(chunks)}
	if err := monitor.Err(); err != nil {
		out.warns = append(out.warns, err)
	}

	complete := true

	for _, ch := range chunks {
		if ch.panicked != nil {
			c.retryChunk(ctx, ch, lines[ch.start:ch.end], pc)
		}

		if errors.Is(ctx.Err(), context.DeadlineExceeded) || chunkFailed(ch) {
			complete = false
		}

		out.nodes = append(out.nodes, ch.out.nodes...)
		out.errs = append(out.errs, ch.out.errs...)
		out.warns = append(out.warns, ch.out.warns...)
		out.blocks += ch.out.blocks
	}

	return out, complete
}

// relieve applies memory pressure feedback and returns the next target.
func (c *Coordinator) relieve(
	ctx context.Context,
	level MemoryLevel,
	planner *chunkPlanner,
	target int,
) int {
	switch level {
	case MemoryWarning:
		next := planner.shrink(target)

		c.metrics.MemoryPressure(level.String())
		c.logger.WarnContext(ctx, "memory pressure",
			slog.String("level", level.String()),
			slog.Int("chunk_target", next),
		)

		return next

	case MemoryCritical:
		c.metrics.MemoryPressure(level.String())
		c.logger.WarnContext(ctx, "memory pressure",
			slog.String("level", level.String()),
			slog.Int("chunk_target", planner.min),
		)

		c.cache.purge()
		reclaim()

		return planner.min

	default:
		return target
	}
}

// runChunk processes one chunk under the chunk timeout. A panic is stored
// for a sequential retry instead of crashing the worker.
func (c *Coordinator) runChunk(
	ctx context.Context,
	ch *chunk,
	lines []string,
	pc *ParseContext,
) {
	defer func() {
		if r := recover(); r != nil {
			ch.panicked = r
		}
	}()

	began := time.Now()

	cctx, cancel := context.WithTimeout(ctx, c.cfg.ChunkTimeout)
	defer cancel()

	p := c.newPipeline(pc)

	if err := p.run(cctx, lines, ch.start); err != nil {
		c.failChunk(ctx, ch, pc, err)

		return
	}

	ch.out = output{nodes: p.nodes, errs: p.errs, warns: p.warns, blocks: p.blocks}

	c.metrics.ObserveChunk(time.Since(began), len(lines))
	c.logger.DebugContext(ctx, "chunk complete",
		slog.Int("chunk", ch.index),
		slog.Int("nodes", len(p.nodes)),
		slog.Duration("elapsed", time.Since(began)),
	)
}

// retryChunk reprocesses a chunk whose worker panicked, once, on the
// calling goroutine. A second panic replaces the chunk with an error node.
func (c *Coordinator) retryChunk(
	ctx context.Context,
	ch *chunk,
	lines []string,
	pc *ParseContext,
) {
	first := ch.panicked
	ch.panicked = nil

	c.metrics.ChunkFailed(metrics.ReasonPanic)
	c.logger.WarnContext(ctx, "retrying chunk sequentially",
		slog.Int("chunk", ch.index),
		slog.String("panic", fmt.Sprint(first)),
	)

	c.runChunk(ctx, ch, lines, pc)

	if ch.panicked == nil {
		return
	}

	err := ErrParallelProcessing.With(
		slog.Int("chunk", ch.index),
		slog.String("panic", fmt.Sprint(ch.panicked)),
	)
	c.replaceChunk(ctx, ch, pc, err)
}

// failChunk replaces a chunk's output after a timeout or cancellation.
func (c *Coordinator) failChunk(
	ctx context.Context,
	ch *chunk,
	pc *ParseContext,
	cause error,
) {
	e, reason := ErrChunkProcessing, metrics.ReasonTimeout

	switch {
	case ctx.Err() != nil && errors.Is(cause, context.DeadlineExceeded):
		e = ErrDocumentTimeout
	case errors.Is(cause, context.Canceled):
		reason = metrics.ReasonCancel
	}

	c.metrics.ChunkFailed(reason)
	c.replaceChunk(ctx, ch, pc, e.Wrap(cause).With(slog.Int("chunk", ch.index)))
}

// replaceChunk discards partial output and substitutes one error node.
func (c *Coordinator) replaceChunk(
	ctx context.Context,
	ch *chunk,
	pc *ParseContext,
	err *Error,
) {
	err = err.With(
		slog.Int("start_line", pc.lineOffset()+ch.start),
		slog.Int("end_line", pc.lineOffset()+ch.end-1),
	)

	c.logger.WarnContext(ctx, "chunk failed", slog.Any("error", err))

	b := NewNodeBuilder(c.registry)
	ch.out = output{
		nodes: []*Node{b.BuildError(
			err.Error(), "", "", pc.lineOffset()+ch.start, []string{err.describe()},
		)},
		errs: []*Error{err},
	}
}

func chunkFailed(ch *chunk) bool {
	for _, e := range ch.out.errs {
		if errors.Is(e, ErrChunkProcessing) ||
			errors.Is(e, ErrDocumentTimeout) ||
			errors.Is(e, ErrParallelProcessing) {
			return true
		}
	}

	return false
}
