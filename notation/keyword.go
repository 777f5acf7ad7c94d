package notation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// MarkerFormat distinguishes single-line markers from multi-line blocks.
type MarkerFormat string

const (
	MarkerInline    MarkerFormat = "inline"
	MarkerMultiline MarkerFormat = "multiline"
)

// Marker is the parsed header of a marker block. It exists only while a
// block is being converted into nodes.
type Marker struct {
	Keywords   []string
	Attributes *Attributes
	Errors     []string
	Start, End int
	Format     MarkerFormat
}

// AttrRuby holds a [Ruby] value on ruby annotations.
const AttrRuby = "ruby"

var (
	compoundSeparator = regexp.MustCompile(`\s*[+＋]\s*`)
	rubyPattern       = regexp.MustCompile(`^(.+?)[(（](.+?)[)）]$`)
	trailingAttr      = regexp.MustCompile(
		`\s+([A-Za-z_][\w-]*)=("[^"]*"|\S*)$`,
	)
	escapeReplacer = strings.NewReplacer(`\#`, "#", `\＃`, "＃", `\\`, `\`)
)

// rubyIntroducers start a ruby annotation payload. The introducer must be
// followed by a space.
var rubyIntroducers = []string{"ルビ", "ruby"}

// KeywordExtractor turns marker payload text into keywords and attributes.
type KeywordExtractor struct {
	registry Registry
}

// NewKeywordExtractor returns an extractor validating keywords against r.
// A nil r accepts every non-empty keyword.
func NewKeywordExtractor(r Registry) *KeywordExtractor {
	if r == nil {
		r = acceptAll{}
	}

	return &KeywordExtractor{registry: r}
}

// ParseMarkerKeywords parses payload into its ordered keywords, the raw
// attributes and soft errors. It never fails: problems are reported in
// errs and the offending keywords are omitted.
func (e *KeywordExtractor) ParseMarkerKeywords(
	payload string,
) (keywords []string, attrs *Attributes, errs []string) {
	attrs = NewAttributes()

	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, attrs, nil
	}

	if rest, ok := cutRubyIntroducer(payload); ok {
		ruby, err := parseRuby(rest)
		if err != "" {
			return nil, attrs, []string{err}
		}

		attrs.Set(AttrRuby, ruby)

		return nil, attrs, nil
	}

	payload = extractAttributes(payload, attrs)

	if compoundSeparator.MatchString(payload) {
		keywords = e.SplitCompoundKeywords(payload)
		if len(keywords) == 0 {
			errs = append(errs,
				fmt.Sprintf("no valid keyword in compound %q", unescape(payload)))
		}

		return keywords, attrs, errs
	}

	keyword := unescape(payload)
	if !e.registry.IsValid(keyword) {
		return nil, attrs, []string{fmt.Sprintf("unknown keyword %q", keyword)}
	}

	return []string{keyword}, attrs, nil
}

// SplitCompoundKeywords splits text on "+" or "＋" and returns the valid,
// non-empty parts in order. Invalid parts are dropped.
func (e *KeywordExtractor) SplitCompoundKeywords(text string) []string {
	parts := compoundSeparator.Split(strings.TrimSpace(text), -1)
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = unescape(strings.TrimSpace(p))
		if p != "" && e.registry.IsValid(p) {
			out = append(out, p)
		}
	}

	return slices.Clip(out)
}

// ParseMarker parses the header line info of a marker block spanning the
// zero-based lines start through end.
func (e *KeywordExtractor) ParseMarker(info LineInfo, start, end int) Marker {
	keywords, attrs, errs := e.ParseMarkerKeywords(info.Payload)

	format := MarkerMultiline
	if info.Inline() {
		format = MarkerInline
	}

	return Marker{
		Keywords:   keywords,
		Attributes: attrs,
		Errors:     errs,
		Start:      start,
		End:        end,
		Format:     format,
	}
}

// ParseMarkerKeywords parses payload accepting every non-empty keyword.
func ParseMarkerKeywords(
	payload string,
) (keywords []string, attrs *Attributes, errs []string) {
	return NewKeywordExtractor(nil).ParseMarkerKeywords(payload)
}

// SplitCompoundKeywords splits text accepting every non-empty keyword.
func SplitCompoundKeywords(text string) []string {
	return NewKeywordExtractor(nil).SplitCompoundKeywords(text)
}

func cutRubyIntroducer(payload string) (string, bool) {
	for _, intro := range rubyIntroducers {
		rest, ok := strings.CutPrefix(payload, intro)
		if !ok || rest == "" {
			continue
		}

		trimmed := strings.TrimLeftFunc(rest, isSpace)
		if len(trimmed) < len(rest) {
			return trimmed, true
		}
	}

	return "", false
}

// parseRuby parses "base(reading)" with ASCII or fullwidth parentheses.
func parseRuby(text string) (Ruby, string) {
	m := rubyPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Ruby{}, fmt.Sprintf("invalid ruby annotation %q", text)
	}

	base := strings.TrimSpace(m[1])
	reading := strings.TrimSpace(m[2])

	if base == "" || reading == "" {
		return Ruby{}, fmt.Sprintf("invalid ruby annotation %q", text)
	}

	return Ruby{BaseText: base, RubyText: reading}, ""
}

// extractAttributes moves trailing key=value tokens from payload into attrs
// and returns the remaining keyword text.
func extractAttributes(payload string, attrs *Attributes) string {
	type pair struct{ key, value string }

	var found []pair

	for {
		loc := trailingAttr.FindStringSubmatchIndex(payload)
		if loc == nil {
			break
		}

		value := payload[loc[4]:loc[5]]
		value = strings.TrimSuffix(strings.TrimPrefix(value, `"`), `"`)
		found = append(found, pair{payload[loc[2]:loc[3]], unescape(value)})
		payload = payload[:loc[0]]
	}

	for _, p := range slices.Backward(found) {
		attrs.Set(p.key, p.value)
	}

	return payload
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	return escapeReplacer.Replace(s)
}
