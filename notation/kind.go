package notation

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Kind identifies the handler for a marker keyword. The set is closed;
// keywords outside it resolve to [KindCustom].
type Kind int

const (
	KindCustom        Kind = iota // custom
	KindBold                      // bold
	KindItalic                    // italic
	KindUnderline                 // underline
	KindStrikethrough             // strikethrough
	KindCode                      // code
	KindCodeBlock                 // code_block
	KindQuote                     // blockquote
	KindHighlight                 // highlight
	KindHeading                   // heading
	KindBox                       // box
	KindImage                     // image
	KindToc                       // toc
	KindFootnote                  // footnote
	KindCenter                    // center
	KindDetails                   // details
)

// kindNames lists the spellings of each kind. Japanese and English
// spellings share a handler.
var kindNames = []struct {
	kind  Kind
	names []string
}{
	{KindBold, []string{"太字", "bold", "strong"}},
	{KindItalic, []string{"イタリック", "斜体", "italic", "em"}},
	{KindUnderline, []string{"下線", "underline"}},
	{KindStrikethrough, []string{"取り消し線", "打ち消し線", "strikethrough", "strike"}},
	{KindCode, []string{"コード", "code"}},
	{KindCodeBlock, []string{"コードブロック", "codeblock", "code_block"}},
	{KindQuote, []string{"引用", "quote", "blockquote"}},
	{KindHighlight, []string{"ハイライト", "マーカー", "highlight"}},
	{KindHeading, []string{"見出し", "大見出し", "中見出し", "小見出し", "heading"}},
	{KindBox, []string{
		"枠線", "box",
		"注意", "警告", "情報", "ヒント", "重要", "ノート",
		"note", "warning", "info", "tip", "important",
	}},
	{KindImage, []string{"画像", "image", "img"}},
	{KindToc, []string{"目次", "toc"}},
	{KindFootnote, []string{"脚注", "footnote"}},
	{KindCenter, []string{"中央寄せ", "center"}},
	{KindDetails, []string{"折りたたみ", "details"}},
}

// classNames lists the keywords contributing each CSS-like class token.
var classNames = map[string][]string{
	"highlight": {"highlight", "ハイライト", "マーカー"},
	"note":      {"note", "ノート"},
	"warning":   {"warning", "注意", "警告"},
	"info":      {"info", "情報"},
	"tip":       {"tip", "ヒント"},
	"important": {"important", "重要"},
}

var (
	aliases     = invertKinds()
	classTokens = invertClasses()
)

func invertKinds() map[string]Kind {
	m := make(map[string]Kind)

	for _, e := range kindNames {
		for _, name := range e.names {
			m[name] = e.kind
		}
	}

	return m
}

func invertClasses() map[string]string {
	m := make(map[string]string)

	for class, names := range classNames {
		for _, name := range names {
			m[name] = class
		}
	}

	return m
}

// maxHeadingLevel bounds numbered heading keywords (見出し1..見出し6, h1..h6).
const maxHeadingLevel = 6

// NormalizeKeyword folds fullwidth ASCII to halfwidth, trims surrounding
// space and lowercases, so "ＢＯＬＤ" and "bold" compare equal.
func NormalizeKeyword(keyword string) string {
	return strings.ToLower(width.Fold.String(strings.TrimSpace(keyword)))
}

// ResolveKind returns the kind for keyword and, for headings, its level.
// Unknown keywords return [KindCustom] and level 0.
func ResolveKind(keyword string) (Kind, int) {
	norm := NormalizeKeyword(keyword)

	if level, ok := headingLevel(norm); ok {
		return KindHeading, level
	}

	if kind, ok := aliases[norm]; ok {
		return kind, 0
	}

	return KindCustom, 0
}

// headingLevel recognizes 見出しN, hN and the 大/中/小見出し sizes.
func headingLevel(norm string) (int, bool) {
	switch norm {
	case "見出し", "heading", "大見出し":
		return 1, true
	case "中見出し":
		return 2, true
	case "小見出し":
		return 3, true
	}

	var digits string

	switch {
	case strings.HasPrefix(norm, "見出し"):
		digits = strings.TrimPrefix(norm, "見出し")
	case strings.HasPrefix(norm, "h") && utf8.RuneCountInString(norm) == 2:
		digits = norm[1:]
	default:
		return 0, false
	}

	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || n > maxHeadingLevel {
		return 0, false
	}

	return n, true
}

// classFor returns the class token contributed by keyword, if any.
func classFor(keyword string) (string, bool) {
	c, ok := classTokens[NormalizeKeyword(keyword)]

	return c, ok
}

// KnownKeywords returns every keyword spelling with a dedicated handler,
// including the numbered heading forms.
func KnownKeywords() []string {
	out := sortedKeys(aliases)

	for i := 1; i <= maxHeadingLevel; i++ {
		out = append(out, "見出し"+strconv.Itoa(i), "h"+strconv.Itoa(i))
	}

	return out
}
