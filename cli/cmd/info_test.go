package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ardnew/kumihan/pkg"
)

func TestInfo(t *testing.T) {
	var out bytes.Buffer

	if err := (&Info{Format: "json"}).run(context.Background(), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var info struct {
		Name    string   `json:"name"`
		Version string   `json:"version"`
		Formats []string `json:"supported_formats"`
	}

	if err := json.Unmarshal(out.Bytes(), &info); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if info.Name != pkg.Name || info.Version != pkg.Version() || len(info.Formats) == 0 {
		t.Errorf("unexpected info %+v", info)
	}

	out.Reset()

	if err := (&Info{Format: "yaml"}).run(context.Background(), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !strings.Contains(out.String(), "name: kumihan") {
		t.Errorf("expected YAML name, got\n%s", out.String())
	}
}
