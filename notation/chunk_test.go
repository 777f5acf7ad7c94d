package notation

import (
	"testing"
)

func TestChunkPlanner_CutsAtBlockStarts(t *testing.T) {
	lines := []string{
		"#枠線#", "a", "b", "c", "##", // 0-4
		"", "para", "para", // 5-7
		"", "#太字#x##", // 8-9
		"tail", "tail", // 10-11
	}

	cfg := DefaultConfig()
	cfg.ChunkMinLines = 2
	cfg.ChunkMaxLines = 4

	p := newChunkPlanner(lines, cfg)

	// Block starts: 6, 9, 10.
	var ends []int

	for start := 0; start < len(lines); {
		end := p.next(start, 4)
		ends = append(ends, end)
		start = end
	}

	want := []int{6, 10, 12}
	if len(ends) != len(want) {
		t.Fatalf("expected ends %v, got %v", want, ends)
	}

	for i := range want {
		if ends[i] != want[i] {
			t.Errorf("expected ends %v, got %v", want, ends)

			break
		}
	}
}

func TestChunkPlanner_OversizeBlock(t *testing.T) {
	lines := []string{"#枠線#"}
	for range 20 {
		lines = append(lines, "body")
	}

	lines = append(lines, "##", "", "after")

	cfg := DefaultConfig()
	cfg.ChunkMinLines = 2
	cfg.ChunkMaxLines = 5

	p := newChunkPlanner(lines, cfg)

	if end := p.next(0, 5); end != 23 {
		t.Errorf("expected oversize chunk ending at 23, got %d", end)
	}
}

func TestChunkPlanner_TargetAndShrink(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ChunkMinLines = 10
	cfg.ChunkMaxLines = 100

	p := &chunkPlanner{lines: 1000, min: cfg.ChunkMinLines, max: cfg.ChunkMaxLines}

	if got := p.target(4); got != 100 {
		t.Errorf("expected target clamped to max, got %d", got)
	}

	p.lines = 30
	if got := p.target(4); got != 10 {
		t.Errorf("expected target clamped to min, got %d", got)
	}

	if got := p.shrink(64); got != 32 {
		t.Errorf("expected halved target, got %d", got)
	}

	if got := p.shrink(12); got != 10 {
		t.Errorf("expected target floored at min, got %d", got)
	}
}
