package notation

import (
	"log/slog"
	"strings"
)

// NestedList is a tree of bracketed, comma-separated values. Each element
// is either a string or a NestedList.
type NestedList []any

// String re-serializes l in bracket notation.
func (l NestedList) String() string {
	var sb strings.Builder

	l.write(&sb)

	return sb.String()
}

func (l NestedList) write(sb *strings.Builder) {
	sb.WriteByte('[')

	for i, v := range l {
		if i > 0 {
			sb.WriteByte(',')
		}

		switch e := v.(type) {
		case NestedList:
			e.write(sb)
		case string:
			sb.WriteString(e)
		}
	}

	sb.WriteByte(']')
}

// Equal reports whether l and o have the same shape and values.
func (l NestedList) Equal(o NestedList) bool {
	if len(l) != len(o) {
		return false
	}

	for i := range l {
		switch a := l[i].(type) {
		case string:
			if b, ok := o[i].(string); !ok || a != b {
				return false
			}

		case NestedList:
			if b, ok := o[i].(NestedList); !ok || !a.Equal(b) {
				return false
			}

		default:
			return false
		}
	}

	return true
}

// listFrame is one level of the parse stack: the list under construction
// and the token being accumulated for it.
type listFrame struct {
	list  NestedList
	token strings.Builder
}

// NestedListParser parses bracketed lists such as "[1,[2,3],4]".
//
// A parser is not safe for concurrent use; each Parse call starts from a
// fresh stack, so one parser may be reused sequentially.
type NestedListParser struct {
	stack []*listFrame
}

// NewNestedListParser returns a parser ready for use.
func NewNestedListParser() *NestedListParser {
	p := new(NestedListParser)
	p.reset()

	return p
}

func (p *NestedListParser) reset() {
	p.stack = append(p.stack[:0], &listFrame{list: NestedList{}})
}

// Parse parses text in a single left-to-right pass.
//
// It returns [ErrUnmatchedBracket] when a "]" has no matching "[" and
// [ErrUnclosedList] when input ends inside a list. When the top level holds
// exactly one list, that list is returned directly, so "[1,2,3]" yields
// ["1" "2" "3"].
func (p *NestedListParser) Parse(text string) (NestedList, error) {
	p.reset()

	for i, r := range text {
		switch r {
		case '[':
			p.flush()
			p.stack = append(p.stack, &listFrame{list: NestedList{}})

		case ']':
			p.flush()

			if len(p.stack) == 1 {
				return nil, ErrUnmatchedBracket.With(slog.Int("offset", i))
			}

			top := p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]
			parent := p.top()
			parent.list = append(parent.list, top.list)

		case ',':
			p.flush()

		default:
			p.top().token.WriteRune(r)
		}
	}

	p.flush()

	return p.Result()
}

// Result returns the root list. It fails with [ErrUnclosedList] unless
// every opened list has been closed.
func (p *NestedListParser) Result() (NestedList, error) {
	if len(p.stack) != 1 {
		return nil, ErrUnclosedList.With(slog.Int("depth", len(p.stack)-1))
	}

	root := p.stack[0].list
	if len(root) == 1 {
		if inner, ok := root[0].(NestedList); ok {
			return inner, nil
		}
	}

	return root, nil
}

func (p *NestedListParser) top() *listFrame {
	return p.stack[len(p.stack)-1]
}

// flush moves the pending token, trimmed, into the current list. Empty
// tokens are discarded.
func (p *NestedListParser) flush() {
	f := p.top()
	tok := strings.TrimSpace(f.token.String())
	f.token.Reset()

	if tok != "" {
		f.list = append(f.list, tok)
	}
}

// FindOutermostList returns the byte offsets of the opening and closing
// brackets of the first complete top-level list in text, or (-1, -1).
func FindOutermostList(text string) (start, end int) {
	depth := 0
	start = -1

	for i := range len(text) {
		switch text[i] {
		case '[':
			if depth == 0 {
				start = i
			}

			depth++

		case ']':
			if depth == 0 {
				continue
			}

			depth--
			if depth == 0 {
				return start, i
			}
		}
	}

	return -1, -1
}
