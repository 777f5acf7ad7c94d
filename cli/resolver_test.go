package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	v, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
	if err != nil {
		t.Fatalf("Resolve(%q) failed: %v", name, err)
	}

	return v
}

func TestResolve(t *testing.T) {
	src := `
log_level: debug
log:
  pretty: false
chunk_max_lines: 300
document-timeout: 2m
parser:
  ratio: 0.5
`

	r, err := resolve(strings.NewReader(src))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-pretty", false},
		{"chunk-max-lines", "300"},
		{"document-timeout", "2m"},
		{"parser-ratio", "0.5"},
		{"workers", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			if got := resolveFlag(t, r, tt.flag); got != tt.want {
				t.Errorf("expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestResolve_Invalid(t *testing.T) {
	for _, src := range []string{"", "- not\n- a map\n", "key: [unclosed"} {
		r, err := resolve(strings.NewReader(src))
		if err != nil {
			t.Fatalf("resolve(%q) failed: %v", src, err)
		}

		if got := resolveFlag(t, r, "log-level"); got != nil {
			t.Errorf("expected no values for %q, got %v", src, got)
		}
	}
}
