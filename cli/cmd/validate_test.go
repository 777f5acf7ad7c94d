package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "#太字#ok##\n")
	bad := writeFile(t, dir, "bad.txt", "#太字#\nopen\n\n#謎#x##\n")

	var out bytes.Buffer

	v := Validate{Sources: []string{good}}
	if err := v.run(context.Background(), &out); err != nil {
		t.Fatalf("expected no findings, got %v", err)
	}

	if !strings.Contains(out.String(), "ok") {
		t.Errorf("expected ok report, got %q", out.String())
	}

	out.Reset()

	v = Validate{Sources: []string{good, bad}}

	err := v.run(context.Background(), &out)
	if !errors.Is(err, ErrFindings) {
		t.Fatalf("expected ErrFindings, got %v", err)
	}

	for _, want := range []string{bad, "1 opening and 0 closing", "unknown keyword"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in report:\n%s", want, out.String())
		}
	}
}
