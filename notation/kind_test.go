package notation

import (
	"slices"
	"testing"
)

func TestResolveKind(t *testing.T) {
	tests := []struct {
		keyword string
		kind    Kind
		level   int
	}{
		{"太字", KindBold, 0},
		{"BOLD", KindBold, 0},
		{"ｂｏｌｄ", KindBold, 0},
		{"イタリック", KindItalic, 0},
		{"取り消し線", KindStrikethrough, 0},
		{"コードブロック", KindCodeBlock, 0},
		{"見出し", KindHeading, 1},
		{"見出し5", KindHeading, 5},
		{"大見出し", KindHeading, 1},
		{"中見出し", KindHeading, 2},
		{"H2", KindHeading, 2},
		{"見出し7", KindCustom, 0},
		{"h0", KindCustom, 0},
		{"目次", KindToc, 0},
		{"脚注", KindFootnote, 0},
		{"中央寄せ", KindCenter, 0},
		{"unknown", KindCustom, 0},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			kind, level := ResolveKind(tt.keyword)
			if kind != tt.kind || level != tt.level {
				t.Errorf("expected (%v, %d), got (%v, %d)", tt.kind, tt.level, kind, level)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	tests := map[Kind]string{
		KindCustom:    "custom",
		KindCodeBlock: "code_block",
		KindQuote:     "blockquote",
		KindDetails:   "details",
	}

	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestKnownKeywords_Registered(t *testing.T) {
	r := DefaultRegistry()

	for _, kw := range KnownKeywords() {
		if !r.IsValid(kw) {
			t.Errorf("expected %q to be valid", kw)
		}
	}

	if r.IsValid("nonsense") {
		t.Error("expected unknown keyword to be invalid")
	}

	if !slices.Contains(r.Keywords(), "見出し3") {
		t.Error("expected numbered heading keywords to be registered")
	}
}

func TestKeywordRegistry_Register(t *testing.T) {
	r := NewKeywordRegistry()

	r.Register("Custom", "", "  ")

	if !r.IsValid("custom") || !r.IsValid("ＣＵＳＴＯＭ") {
		t.Error("expected normalized lookup to match")
	}

	if got := r.Keywords(); !slices.Equal(got, []string{"custom"}) {
		t.Errorf("expected [custom], got %q", got)
	}

	if r.IsValid("") {
		t.Error("expected empty keyword to be invalid")
	}
}
