package pkg

import (
	"regexp"
	"testing"
)

func TestVersion_IsSemantic(t *testing.T) {
	re := regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)

	if v := Version(); !re.MatchString(v) {
		t.Errorf("expected semantic version, got %q", v)
	}
}

func TestName_NotEmpty(t *testing.T) {
	if Name == "" || Description == "" {
		t.Error("expected non-empty Name and Description")
	}
}
