package notation

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/kumihan/log"
)

// pipeline converts one run of lines (a whole document or one chunk) into
// nodes. It owns its classification cache and list parser, so it must not
// be shared between goroutines.
type pipeline struct {
	segmenter *BlockSegmenter
	extractor *KeywordExtractor
	builder   *NodeBuilder
	lists     *NestedListParser
	logger    log.Logger

	// firstLine is the document line number of line index 0.
	firstLine int

	nodes  []*Node
	errs   []*Error
	warns  []*Error
	blocks int
}

func (c *Coordinator) newPipeline(pc *ParseContext) *pipeline {
	return &pipeline{
		segmenter: NewBlockSegmenter(c.cfg.LineCacheSize),
		extractor: NewKeywordExtractor(c.registry),
		builder:   NewNodeBuilder(c.registry),
		lists:     NewNestedListParser(),
		logger:    c.logger,
		firstLine: pc.lineOffset(),
	}
}

// run processes lines whose first element is at index offset of the
// document. It checks ctx between blocks and returns its error if
// processing stopped early; nodes built so far are kept.
func (p *pipeline) run(ctx context.Context, lines []string, offset int) error {
	for _, b := range p.segmenter.Segment(lines) {
		if err := ctx.Err(); err != nil {
			return err
		}

		b.Start += offset
		b.End += offset

		p.blocks++
		p.nodes = append(p.nodes, p.block(b)...)
	}

	return nil
}

// lineNumber converts a zero-based line index to a document line number.
func (p *pipeline) lineNumber(index int) int { return p.firstLine + index }

// block converts one block, turning a panic into an error node.
func (p *pipeline) block(b Block) (nodes []*Node) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		err := ErrBlockFault.With(
			slog.Int("line", p.lineNumber(b.Start)),
			slog.String("panic", fmt.Sprint(r)),
		)
		p.errs = append(p.errs, err)
		p.logger.Warn("recovered block fault", slog.Any("error", err))

		nodes = []*Node{p.builder.BuildError(
			err.Error(), b.Text(), "", p.lineNumber(b.Start), []string{err.describe()},
		)}
	}()

	first := p.segmenter.classify(b.Lines[0])

	switch {
	case first.Opening:
		return p.markerBlock(b, first)
	case first.Closing:
		return p.strayClosing(b)
	case first.ListItem:
		return p.listBlock(b)
	default:
		return []*Node{paragraph(b.Lines)}
	}
}

func paragraph(lines []string) *Node {
	trimmed := make([]string, len(lines))
	for i, l := range lines {
		trimmed[i] = strings.TrimRightFunc(l, isSpace)
	}

	return NewNode(TypeParagraph, Text(sanitizeText(strings.Join(trimmed, "\n"))), nil)
}

// strayClosing keeps any text before the unmatched "##" as a paragraph.
func (p *pipeline) strayClosing(b Block) []*Node {
	p.warns = append(p.warns, ErrStrayClosing.With(
		slog.Int("line", p.lineNumber(b.Start)),
	))

	text := strings.TrimSpace(trimClosing(strings.TrimSpace(b.Lines[0])))
	if text == "" {
		return nil
	}

	return []*Node{paragraph([]string{text})}
}

// markerBlock builds the node of a block starting with an opening marker.
// Blocks with more opening than closing markers are salvaged.
func (p *pipeline) markerBlock(b Block, first LineInfo) []*Node {
	if opening, closing := p.segmenter.Balance(b); opening > closing {
		return p.salvage(b, first)
	}

	return []*Node{p.markerNode(b, first, true)}
}

// markerNode builds a marker block's node. closed reports whether the last
// line of b is the block's closing marker.
func (p *pipeline) markerNode(b Block, first LineInfo, closed bool) *Node {
	line := p.lineNumber(b.Start)
	m := p.extractor.ParseMarker(first, b.Start, b.End)
	keywords, attrs, soft := m.Keywords, m.Attributes, m.Errors

	if _, ruby := attrs.Get(AttrRuby); len(keywords) == 0 && !ruby {
		if len(soft) == 0 {
			soft = []string{"empty keyword"}
		}

		err := ErrMarkerSyntax.With(slog.Int("line", line),
			slog.String("reason", strings.Join(soft, "; ")))
		p.errs = append(p.errs, err)

		return p.builder.BuildError(
			err.Error(), b.Text(), unescape(strings.TrimSpace(first.Payload)),
			line, soft,
		)
	}

	body, bodyStart := p.body(b, m, first.Rest, closed)

	var content Content

	switch {
	case rawContent(keywords):
		content = Text(strings.Join(body, "\n"))
	case p.hasMarker(body):
		content = p.nested(body, bodyStart)
	default:
		content = Text(sanitizeText(strings.Join(dropComments(body), "\n")))
	}

	n := p.builder.Build(keywords, content, attrs)
	for _, e := range soft {
		n.AddError(e)
	}

	return n
}

// body returns the content lines of a marker block and the index of the
// first of them: text after the opening marker, the inner lines and text
// before the closing "##".
func (p *pipeline) body(b Block, m Marker, rest string, closed bool) ([]string, int) {
	if m.Format == MarkerInline {
		return []string{strings.TrimSpace(trimClosing(rest))}, b.Start
	}

	var body []string

	start := b.Start + 1
	if rest := strings.TrimSpace(rest); rest != "" {
		body = append(body, rest)
		start = b.Start
	}

	inner := b.Lines[1:]
	if closed && len(inner) > 0 {
		last := strings.TrimSpace(inner[len(inner)-1])
		inner = inner[:len(inner)-1]

		body = append(body, inner...)
		if text := strings.TrimSpace(trimClosing(last)); text != "" {
			body = append(body, text)
		}

		return body, start
	}

	return append(body, inner...), start
}

func (p *pipeline) hasMarker(lines []string) bool {
	return slices.ContainsFunc(lines, func(l string) bool {
		info := p.segmenter.classify(l)

		return info.Opening
	})
}

// nested parses marker-bearing block content into child nodes.
func (p *pipeline) nested(lines []string, offset int) Sequence {
	var seq Sequence

	for _, b := range p.segmenter.Segment(lines) {
		b.Start += offset
		b.End += offset

		for _, n := range p.block(b) {
			seq = append(seq, n)
		}
	}

	return seq
}

// rawContent reports whether any keyword keeps its content verbatim.
func rawContent(keywords []string) bool {
	return slices.ContainsFunc(keywords, func(kw string) bool {
		kind, _ := ResolveKind(kw)

		return kind == KindCodeBlock || kind == KindCode
	})
}

func dropComments(lines []string) []string {
	return slices.DeleteFunc(slices.Clone(lines), func(l string) bool {
		return strings.HasPrefix(strings.TrimSpace(l), commentPrefix)
	})
}

// salvage recovers a block missing its closing marker. The block keeps its
// lines up to the next opening marker line; the remaining lines are
// segmented again as ordinary blocks.
func (p *pipeline) salvage(b Block, first LineInfo) []*Node {
	cut := len(b.Lines)

	for i := 1; i < len(b.Lines); i++ {
		if p.segmenter.classify(b.Lines[i]).Opening {
			cut = i

			break
		}
	}

	err := ErrBlockBoundary.With(
		slog.Int("line", p.lineNumber(b.Start)),
		slog.String("marker", strings.TrimSpace(b.Lines[0])),
	)
	p.warns = append(p.warns, err)
	p.errs = append(p.errs, err)

	head := Block{Lines: b.Lines[:cut], Start: b.Start, End: b.Start + cut - 1}

	n := p.markerNode(head, first, false)
	n.AddError(err.Error())

	nodes := []*Node{n}

	if cut == len(b.Lines) {
		return nodes
	}

	offset := b.Start + cut

	for _, rest := range p.segmenter.Segment(b.Lines[cut:]) {
		rest.Start += offset
		rest.End += offset

		p.blocks++
		nodes = append(nodes, p.block(rest)...)
	}

	return nodes
}

// listLevel is one indentation level of a list under construction.
type listLevel struct {
	indent int
	list   *Node
}

// listBlock builds nested list nodes from a block of list items. Lines
// that are not items continue the previous item. An item beginning with
// "[" is parsed as a nested list into its "data" attribute; a bracket
// error fails the whole block.
func (p *pipeline) listBlock(b Block) []*Node {
	type item struct {
		indent  int
		ordered bool
		text    string
		line    int
	}

	var items []item

	for i, l := range b.Lines {
		m := listItemPattern.FindStringSubmatch(l)
		if m == nil {
			if len(items) > 0 {
				last := &items[len(items)-1]
				last.text += "\n" + strings.TrimSpace(l)
			}

			continue
		}

		items = append(items, item{
			indent:  indentWidth(m[1]),
			ordered: m[2] != "-" && m[2] != "*" && m[2] != "+",
			text:    strings.TrimSpace(m[3]),
			line:    p.lineNumber(b.Start + i),
		})
	}

	if len(items) == 0 {
		return []*Node{paragraph(b.Lines)}
	}

	newList := func(ordered bool) *Node {
		return NewNode(TypeList, Sequence{}, NewAttributes().Set(AttrOrdered, ordered))
	}

	root := newList(items[0].ordered)
	stack := []listLevel{{indent: items[0].indent, list: root}}

	for _, it := range items {
		node, err := p.listItem(it.text)
		if err != nil {
			e := WrapError(err).With(slog.Int("line", it.line))
			p.errs = append(p.errs, e)

			return []*Node{p.builder.BuildError(
				err.Error(), b.Text(), "", it.line, []string{e.describe()},
			)}
		}

		for len(stack) > 1 && it.indent < stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}

		top := stack[len(stack)-1]

		if it.indent > top.indent {
			if parent := lastChild(top.list); parent != nil {
				nested := newList(it.ordered)
				appendChild(parent, nested)

				stack = append(stack, listLevel{indent: it.indent, list: nested})
				top = stack[len(stack)-1]
			}
		}

		appendChild(top.list, node)
	}

	return []*Node{root}
}

func (p *pipeline) listItem(text string) (*Node, error) {
	attrs := NewAttributes()

	if strings.HasPrefix(text, "[") {
		data, err := p.lists.Parse(text)
		if err != nil {
			return nil, err
		}

		attrs.Set(AttrData, data)
	}

	return NewNode(TypeListItem, Text(sanitizeText(text)), attrs), nil
}

// indentWidth measures leading whitespace: tab 4, ideographic space 2.
func indentWidth(s string) int {
	w := 0

	for _, r := range s {
		switch r {
		case '\t':
			w += 4
		case '　':
			w += 2
		default:
			w++
		}
	}

	return w
}

func lastChild(n *Node) *Node {
	seq, _ := n.Content.(Sequence)

	for i := len(seq) - 1; i >= 0; i-- {
		if c, ok := seq[i].(*Node); ok {
			return c
		}
	}

	return nil
}

// appendChild appends child to n's content, converting text content into a
// sequence.
func appendChild(n *Node, child *Node) {
	switch c := n.Content.(type) {
	case Sequence:
		n.Content = append(c, child)
	case Text:
		if c == "" {
			n.Content = Sequence{child}
		} else {
			n.Content = Sequence{c, child}
		}
	default:
		n.Content = Sequence{child}
	}
}
