package cli

import "testing"

func TestPrefixFor(t *testing.T) {
	tests := map[string]string{
		"/usr/local/bin/kumihan": "kumihan",
		"/tmp/__debug_bin123":    "kumihan",
		"/tmp/go-build/cli.test": "kumihan",
		"/opt/.kumihan":          "kumihan",
		"kumihan.exe":            "kumihan",
		"/bin/notes":             "notes",
		"/bin/...":               "kumihan",
	}

	for path, want := range tests {
		if got := prefixFor(path); got != want {
			t.Errorf("prefixFor(%q): expected %q, got %q", path, want, got)
		}
	}
}
