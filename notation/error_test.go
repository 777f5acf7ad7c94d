package notation

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"
)

func TestError_MessageFormats(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"message only", NewError("boom"), "boom"},
		{"wrapped", NewError("outer").Wrap(errors.New("inner")), "outer: inner"},
		{"cause only", WrapError(errors.New("plain")), "plain"},
		{"empty", &Error{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestError_DerivedMatchesSentinel(t *testing.T) {
	err := ErrConfiguration.
		With(slog.String("field", "chunk_min_lines")).
		Wrap(errors.New("greater than max"))

	if !errors.Is(err, ErrConfiguration) {
		t.Error("expected derived error to match its sentinel")
	}

	if errors.Is(err, ErrMarkerSyntax) {
		t.Error("expected derived error not to match an unrelated sentinel")
	}

	wrapped := fmt.Errorf("construct: %w", err)
	if !errors.Is(wrapped, ErrConfiguration) {
		t.Error("expected match through fmt.Errorf wrapping")
	}
}

func TestError_WithIsImmutable(t *testing.T) {
	base := NewError("base")
	derived := base.With(slog.Int("line", 3))

	if len(base.Attrs()) != 0 {
		t.Error("expected base attributes unchanged")
	}

	if len(derived.Attrs()) != 1 {
		t.Errorf("expected one attribute, got %d", len(derived.Attrs()))
	}
}

func TestError_Describe(t *testing.T) {
	err := ErrBlockBoundary.With(slog.Int("line", 4), slog.String("text", "#太字#"))

	want := "missing closing marker (line=4, text=#太字#)"
	if got := err.describe(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestError_LogValue(t *testing.T) {
	v := ErrUnclosedList.Wrap(errors.New("eof")).LogValue()

	if v.Kind() != slog.KindGroup {
		t.Fatalf("expected group value, got %v", v.Kind())
	}

	got := map[string]string{}
	for _, a := range v.Group() {
		got[a.Key] = a.Value.String()
	}

	if got["error"] != "unclosed list" || got["cause"] != "eof" {
		t.Errorf("unexpected log value %v", got)
	}
}
