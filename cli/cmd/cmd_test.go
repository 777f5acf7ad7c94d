package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/kumihan/notation"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestOpenSources_Dedupe(t *testing.T) {
	dir := t.TempDir()

	first := writeFile(t, dir, "first.txt", "first")
	second := writeFile(t, dir, "second.txt", "second")

	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(first, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	srcs, err := openSources([]string{first, second, link, first})
	if err != nil {
		t.Fatalf("openSources failed: %v", err)
	}
	defer closeSources(srcs)

	if len(srcs) != 2 {
		t.Fatalf("expected 2 unique sources, got %d", len(srcs))
	}

	var got []string

	for _, s := range srcs {
		data, err := io.ReadAll(s)
		if err != nil {
			t.Fatal(err)
		}

		got = append(got, string(data))
	}

	if got[0] != "first" || got[1] != "second" {
		t.Errorf("expected sources in order, got %q", got)
	}

	if srcs[0].name != first {
		t.Errorf("expected source name %q, got %q", first, srcs[0].name)
	}
}

func TestOpenSources_StdinLast(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "doc.txt", "x")

	srcs, err := openSources([]string{"-", file, "-"})
	if err != nil {
		t.Fatalf("openSources failed: %v", err)
	}
	defer closeSources(srcs)

	if len(srcs) != 2 {
		t.Fatalf("expected file and stdin, got %d sources", len(srcs))
	}

	if srcs[1].name != stdinName {
		t.Errorf("expected stdin last, got %q", srcs[1].name)
	}
}

func TestOpenSources_Missing(t *testing.T) {
	_, err := openSources([]string{filepath.Join(t.TempDir(), "missing.txt")})
	if !errors.Is(err, ErrOpenSource) {
		t.Errorf("expected ErrOpenSource, got %v", err)
	}
}

func TestParserConfigFrom(t *testing.T) {
	ctx := context.Background()

	if got := parserConfigFrom(ctx); got != notation.DefaultConfig() {
		t.Errorf("expected defaults, got %+v", got)
	}

	cfg := notation.DefaultConfig()
	cfg.ChunkMinLines = 0

	_, err := newCoordinator(WithParserConfig(ctx, cfg))
	if !errors.Is(err, ErrParserConfig) {
		t.Errorf("expected ErrParserConfig, got %v", err)
	}

	if !errors.Is(err, notation.ErrConfiguration) {
		t.Errorf("expected wrapped configuration error, got %v", err)
	}
}
