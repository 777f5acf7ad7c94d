package notation

//go:generate go tool stringer --linecomment --type LineKind,BlockType,Kind --output kind_string.go

import (
	"regexp"
	"strings"

	"github.com/golang/groupcache/lru"
)

// LineKind classifies a single source line.
type LineKind int

const (
	LinePlain         LineKind = iota // plain
	LineBlank                         // blank
	LineComment                       // comment
	LineOpeningMarker                 // opening_marker
	LineClosingMarker                 // closing_marker
	LineListItem                      // list_item
)

// LineInfo is the classification of one line.
//
// Kind is the single most specific kind. The flags are computed
// independently: an inline marker line (#kw#content##) has both Opening and
// Closing set and Kind [LineClosingMarker].
type LineInfo struct {
	Kind     LineKind
	Opening  bool
	Closing  bool
	ListItem bool
	// Payload is the keyword text between the first two markers of an
	// opening line, with escapes intact.
	Payload string
	// Rest is the text following the payload delimiter on an opening line.
	Rest string
}

// Inline reports whether the line opens and closes a marker on its own.
func (li LineInfo) Inline() bool { return li.Opening && li.Closing }

var (
	// #payload#rest, where payload may contain \# escapes and =# (hex
	// colour values), using ASCII or fullwidth number signs.
	markerPattern = regexp.MustCompile(
		`^[#＃]\s*((?:\\.|=[#＃]|[^#＃\\])+?)\s*[#＃](.*)$`,
	)
	// indent, bullet or "N.", item text
	listItemPattern = regexp.MustCompile(`^([\s　]*)([-*+]|\d+\.)\s+(.*)$`)
)

const commentPrefix = "//"

// ClassifyLine classifies line without memoization. It never fails; lines
// that match nothing are [LinePlain].
func ClassifyLine(line string) LineInfo {
	var info LineInfo

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		info.Kind = LineBlank

		return info
	}

	if strings.HasPrefix(trimmed, commentPrefix) {
		info.Kind = LineComment

		return info
	}

	info.ListItem = listItemPattern.MatchString(line)
	info.Closing = isClosingMarker(trimmed)

	if m := markerPattern.FindStringSubmatch(trimmed); m != nil {
		info.Opening = true
		info.Payload = m[1]
		info.Rest = m[2]
	}

	switch {
	case info.Closing:
		info.Kind = LineClosingMarker
	case info.Opening:
		info.Kind = LineOpeningMarker
	case info.ListItem:
		info.Kind = LineListItem
	default:
		info.Kind = LinePlain
	}

	return info
}

// isClosingMarker reports whether trimmed ends in "##" (ASCII or
// fullwidth). This covers both the standalone block closer "##" and inline
// content terminated by "##", which is at least three runes long.
func isClosingMarker(trimmed string) bool {
	return strings.HasSuffix(trimmed, "##") ||
		strings.HasSuffix(trimmed, "＃＃")
}

// trimClosing removes a trailing closing marker from s.
func trimClosing(s string) string {
	s = strings.TrimRightFunc(s, isSpace)

	switch {
	case strings.HasSuffix(s, "##"):
		return strings.TrimSuffix(s, "##")
	case strings.HasSuffix(s, "＃＃"):
		return strings.TrimSuffix(s, "＃＃")
	default:
		return s
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '　'
}

// DefaultLineCacheSize bounds the classification cache of a single parse.
const DefaultLineCacheSize = 4096

// lineClassifier memoizes ClassifyLine by exact line text. One instance
// serves one parse call (or one chunk), so it needs no locking.
type lineClassifier struct {
	cache  *lru.Cache
	hits   int
	misses int
}

func newLineClassifier(size int) *lineClassifier {
	if size <= 0 {
		size = DefaultLineCacheSize
	}

	return &lineClassifier{cache: lru.New(size)}
}

func (c *lineClassifier) classify(line string) LineInfo {
	if c == nil {
		return ClassifyLine(line)
	}

	if v, ok := c.cache.Get(line); ok {
		c.hits++

		return v.(LineInfo)
	}

	c.misses++

	info := ClassifyLine(line)
	c.cache.Add(line, info)

	return info
}
