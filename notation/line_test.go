package notation

import "testing"

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		kind    LineKind
		opening bool
		closing bool
		list    bool
		payload string
		rest    string
	}{
		{name: "empty", line: "", kind: LineBlank},
		{name: "whitespace", line: " \t ", kind: LineBlank},
		{name: "comment", line: "  // note", kind: LineComment},
		{name: "plain", line: "hello world", kind: LinePlain},
		{
			name: "block opening", line: "#太字#", kind: LineOpeningMarker,
			opening: true, payload: "太字",
		},
		{
			name: "spaced opening", line: "# 太字 #unterminated",
			kind: LineOpeningMarker, opening: true,
			payload: "太字", rest: "unterminated",
		},
		{
			name: "inline marker", line: "#太字#content##",
			kind: LineClosingMarker, opening: true, closing: true,
			payload: "太字", rest: "content##",
		},
		{
			name: "fullwidth opening", line: "＃太字＃全角##",
			kind: LineClosingMarker, opening: true, closing: true,
			payload: "太字", rest: "全角##",
		},
		{
			name: "hex colour in payload", line: "#ハイライト color=#ff0000#text##",
			kind: LineClosingMarker, opening: true, closing: true,
			payload: "ハイライト color=#ff0000", rest: "text##",
		},
		{
			name: "escaped number sign", line: `#\#tag#x`,
			kind: LineOpeningMarker, opening: true,
			payload: `\#tag`, rest: "x",
		},
		{name: "standalone closer", line: "##", kind: LineClosingMarker, closing: true},
		{name: "fullwidth closer", line: " ＃＃ ", kind: LineClosingMarker, closing: true},
		{name: "content closer", line: "text##", kind: LineClosingMarker, closing: true},
		{name: "markdown heading", line: "### Title", kind: LinePlain},
		{name: "unordered item", line: "- item", kind: LineListItem, list: true},
		{name: "star item", line: "  * item", kind: LineListItem, list: true},
		{name: "ordered item", line: "12. item", kind: LineListItem, list: true},
		{name: "form feed item", line: "\f- item", kind: LineListItem, list: true},
		{name: "ideographic indent item", line: "　　- item", kind: LineListItem, list: true},
		{name: "no space after dash", line: "-item", kind: LinePlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyLine(tt.line)

			if got.Kind != tt.kind {
				t.Errorf("kind: expected %v, got %v", tt.kind, got.Kind)
			}

			if got.Opening != tt.opening || got.Closing != tt.closing {
				t.Errorf("flags: expected opening=%v closing=%v, got opening=%v closing=%v",
					tt.opening, tt.closing, got.Opening, got.Closing)
			}

			if got.ListItem != tt.list {
				t.Errorf("list item: expected %v, got %v", tt.list, got.ListItem)
			}

			if got.Payload != tt.payload {
				t.Errorf("payload: expected %q, got %q", tt.payload, got.Payload)
			}

			if got.Rest != tt.rest {
				t.Errorf("rest: expected %q, got %q", tt.rest, got.Rest)
			}
		})
	}
}

func TestLineInfo_Inline(t *testing.T) {
	if !ClassifyLine("#太字#x##").Inline() {
		t.Error("expected inline marker")
	}

	if ClassifyLine("#太字#").Inline() {
		t.Error("expected block opening not to be inline")
	}
}

func TestLineKind_String(t *testing.T) {
	tests := map[LineKind]string{
		LinePlain:         "plain",
		LineBlank:         "blank",
		LineComment:       "comment",
		LineOpeningMarker: "opening_marker",
		LineClosingMarker: "closing_marker",
		LineListItem:      "list_item",
		LineKind(99):      "LineKind(99)",
	}

	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestLineClassifier_Memoizes(t *testing.T) {
	c := newLineClassifier(2)

	first := c.classify("#太字#")
	second := c.classify("#太字#")

	if first != second {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}

	if c.hits != 1 || c.misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d and %d", c.hits, c.misses)
	}

	// Evicts the oldest entry beyond capacity.
	c.classify("a")
	c.classify("b")
	c.classify("#太字#")

	if c.misses != 4 {
		t.Errorf("expected eviction to cause a miss, got %d misses", c.misses)
	}
}

func TestLineClassifier_NilFallsBack(t *testing.T) {
	var c *lineClassifier

	if got := c.classify("##"); got.Kind != LineClosingMarker {
		t.Errorf("expected closing marker, got %v", got.Kind)
	}
}
