package notation

import (
	"slices"
	"strings"
	"testing"
)

func TestKeywordExtractor_ParseMarkerKeywords(t *testing.T) {
	e := NewKeywordExtractor(DefaultRegistry())

	tests := []struct {
		name     string
		payload  string
		keywords []string
		attrs    map[string]any
		errs     int
	}{
		{name: "empty", payload: "   "},
		{name: "single", payload: "太字", keywords: []string{"太字"}},
		{name: "english alias", payload: "bold", keywords: []string{"bold"}},
		{name: "fullwidth alias", payload: "ＢＯＬＤ", keywords: []string{"ＢＯＬＤ"}},
		{
			name: "compound", payload: "太字+イタリック",
			keywords: []string{"太字", "イタリック"},
		},
		{
			name: "fullwidth separator", payload: "太字 ＋ 下線",
			keywords: []string{"太字", "下線"},
		},
		{
			name: "compound drops invalid part", payload: "太字+存在しない",
			keywords: []string{"太字"},
		},
		{name: "compound all invalid", payload: "foo+bar", errs: 1},
		{name: "unknown single", payload: "unknown", errs: 1},
		{
			name: "ruby ascii parens", payload: "ルビ 漢字(かんじ)",
			attrs: map[string]any{AttrRuby: Ruby{BaseText: "漢字", RubyText: "かんじ"}},
		},
		{
			name: "ruby fullwidth parens", payload: "ルビ 振仮名（ふりがな）",
			attrs: map[string]any{AttrRuby: Ruby{BaseText: "振仮名", RubyText: "ふりがな"}},
		},
		{name: "ruby missing reading", payload: "ルビ 漢字", errs: 1},
		{
			name: "attribute", payload: "ハイライト color=#ff0000",
			keywords: []string{"ハイライト"},
			attrs:    map[string]any{AttrColor: "#ff0000"},
		},
		{
			name: "quoted attribute", payload: `画像 alt="a cat" src=cat.png`,
			keywords: []string{"画像"},
			attrs:    map[string]any{AttrAlt: "a cat", AttrSrc: "cat.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keywords, attrs, errs := e.ParseMarkerKeywords(tt.payload)

			if !slices.Equal(keywords, tt.keywords) {
				t.Errorf("keywords: expected %q, got %q", tt.keywords, keywords)
			}

			if attrs == nil {
				t.Fatal("expected non-nil attributes")
			}

			if attrs.Len() != len(tt.attrs) {
				t.Errorf("expected %d attributes, got %v", len(tt.attrs), attrs.Keys())
			}

			for k, want := range tt.attrs {
				if got, _ := attrs.Get(k); got != want {
					t.Errorf("attribute %q: expected %v, got %v", k, want, got)
				}
			}

			if len(errs) != tt.errs {
				t.Errorf("expected %d errors, got %q", tt.errs, errs)
			}
		})
	}
}

func TestKeywordExtractor_AttributeOrder(t *testing.T) {
	_, attrs, _ := ParseMarkerKeywords("画像 src=a.png alt=b width=10")

	want := []string{"src", "alt", "width"}
	if got := attrs.Keys(); !slices.Equal(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestKeywordExtractor_UnknownKeywordMessage(t *testing.T) {
	_, _, errs := NewKeywordExtractor(DefaultRegistry()).ParseMarkerKeywords("謎")

	if len(errs) != 1 || !strings.Contains(errs[0], "unknown keyword") {
		t.Errorf("expected unknown keyword error, got %q", errs)
	}
}

func TestKeywordExtractor_NilRegistryAcceptsAll(t *testing.T) {
	keywords, _, errs := ParseMarkerKeywords("anything")

	if !slices.Equal(keywords, []string{"anything"}) || len(errs) != 0 {
		t.Errorf("expected [anything] without errors, got %q %q", keywords, errs)
	}
}

func TestKeywordExtractor_Unescape(t *testing.T) {
	keywords, _, _ := ParseMarkerKeywords(`c\#`)

	if !slices.Equal(keywords, []string{"c#"}) {
		t.Errorf("expected [c#], got %q", keywords)
	}
}

func TestSplitCompoundKeywords(t *testing.T) {
	got := SplitCompoundKeywords("太字+イタリック")
	want := []string{"太字", "イタリック"}

	if !slices.Equal(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}

	// Splitting an already split keyword is the identity.
	for _, kw := range got {
		again := SplitCompoundKeywords(kw)
		if !slices.Equal(again, []string{kw}) {
			t.Errorf("expected [%s], got %q", kw, again)
		}
	}
}

func TestSplitCompoundKeywords_Registry(t *testing.T) {
	e := NewKeywordExtractor(NewKeywordRegistry("a", "c"))

	got := e.SplitCompoundKeywords(" a + b ＋ c + ")
	if want := []string{"a", "c"}; !slices.Equal(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestKeywordExtractor_ParseMarker(t *testing.T) {
	e := NewKeywordExtractor(DefaultRegistry())

	inline := e.ParseMarker(ClassifyLine("#太字 color=red#x##"), 3, 3)
	if inline.Format != MarkerInline || inline.Start != 3 || inline.End != 3 {
		t.Errorf("unexpected inline marker %+v", inline)
	}

	if len(inline.Keywords) != 1 || inline.Keywords[0] != "太字" {
		t.Errorf("expected keyword 太字, got %q", inline.Keywords)
	}

	if got := inline.Attributes.GetString("color"); got != "red" {
		t.Errorf("expected color attribute, got %q", got)
	}

	block := e.ParseMarker(ClassifyLine("#枠線+謎#"), 0, 4)
	if block.Format != MarkerMultiline {
		t.Errorf("expected multiline marker, got %q", block.Format)
	}

	if len(block.Keywords) != 1 || block.Keywords[0] != "枠線" {
		t.Errorf("expected the valid part of the compound, got %q", block.Keywords)
	}
}
