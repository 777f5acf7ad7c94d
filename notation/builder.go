package notation

import (
	"slices"
)

// Attribute keys set by the builder.
const (
	AttrLevel      = "level"
	AttrID         = "id"
	AttrColor      = "color"
	AttrLanguage   = "language"
	AttrSrc        = "src"
	AttrAlt        = "alt"
	AttrSummary    = "summary"
	AttrKeyword    = "keyword"
	AttrData       = "data"
	AttrOrdered    = "ordered"
	AttrMessage    = "message"
	AttrSuggestion = "suggestion"
	AttrLine       = "line"
)

// DefaultSummary labels a details node without a summary attribute.
const DefaultSummary = "詳細"

// NodeBuilder maps keywords and content to nodes.
type NodeBuilder struct {
	registry Registry
}

// NewNodeBuilder returns a builder. The registry supplies candidates for
// keyword suggestions on error nodes; it may be nil.
func NewNodeBuilder(r Registry) *NodeBuilder {
	return &NodeBuilder{registry: r}
}

// Build returns the node for keywords applied to content.
//
// Compound keywords nest with the first keyword outermost. The outermost
// node carries the raw attributes, the full keyword list under "keywords"
// and any class tokens under "class". With no keywords, a ruby attribute
// yields a ruby node and anything else a paragraph.
func (b *NodeBuilder) Build(
	keywords []string,
	content Content,
	attrs *Attributes,
) *Node {
	if content == nil {
		content = Text("")
	}

	if len(keywords) == 0 {
		if r, ok := attrs.Get(AttrRuby); ok {
			if ruby, ok := r.(Ruby); ok && content.PlainText() == "" {
				content = Text(ruby.BaseText)
			}

			return NewNode(TypeRuby, content, attrs.Clone())
		}

		return NewNode(TypeParagraph, content, attrs.Clone())
	}

	var node *Node

	for _, kw := range slices.Backward(keywords) {
		if node != nil {
			content = Sequence{node}
		}

		node = b.buildOne(kw, content, attrs)
	}

	for k, v := range attrs.All() {
		if _, ok := node.Attributes.Get(k); ok {
			continue
		}

		if c, ok := v.(string); ok && k == AttrColor {
			v = SanitizeColor(c)
		}

		node.Attributes.Set(k, v)
	}

	node.Attributes.Set(AttrKeywords, slices.Clone(keywords))

	if classes := classList(keywords); len(classes) > 0 {
		node.Attributes.Set(AttrClass, classes)
	}

	return node
}

// buildOne dispatches a single keyword on its kind.
func (b *NodeBuilder) buildOne(
	keyword string,
	content Content,
	raw *Attributes,
) *Node {
	kind, level := ResolveKind(keyword)
	attrs := NewAttributes()

	switch kind {
	case KindHeading:
		attrs.Set(AttrLevel, level)

	case KindHighlight:
		if c := raw.GetString(AttrColor); c != "" {
			attrs.Set(AttrColor, SanitizeColor(c))
		}

	case KindCodeBlock:
		lang := raw.GetString(AttrLanguage)
		if lang == "" {
			lang = raw.GetString("lang")
		}

		if lang != "" {
			attrs.Set(AttrLanguage, lang)
		}

	case KindImage:
		src := raw.GetString(AttrSrc)
		if src == "" {
			src = content.PlainText()
		}

		attrs.Set(AttrSrc, src)
		attrs.Set(AttrAlt, raw.GetString(AttrAlt))

		content = Text("")

	case KindToc:
		content = Text("")

	case KindDetails:
		summary := raw.GetString(AttrSummary)
		if summary == "" {
			summary = DefaultSummary
		}

		attrs.Set(AttrSummary, summary)

	case KindCustom:
		attrs.Set(AttrKeyword, keyword)
		return NewNode(TypeCustom, content, attrs)
	}

	return NewNode(kind.String(), content, attrs)
}

// BuildError returns an error_block node preserving the original text.
// The suggestion names the registered keyword closest to keyword, if any.
func (b *NodeBuilder) BuildError(
	message, text, keyword string,
	line int,
	errs []string,
) *Node {
	attrs := NewAttributes().
		Set(AttrMessage, message).
		Set(AttrSuggestion, b.suggest(keyword)).
		Set(AttrLine, line)

	n := NewNode(TypeErrorBlock, Text(text), attrs)
	for _, e := range errs {
		n.AddError(e)
	}

	if len(errs) == 0 {
		n.AddError(message)
	}

	return n
}

func (b *NodeBuilder) suggest(keyword string) string {
	var candidates []string

	if kr, ok := b.registry.(*KeywordRegistry); ok {
		candidates = kr.Keywords()
	} else {
		candidates = KnownKeywords()
	}

	return suggestion(keyword, candidates)
}

// classList returns the distinct class tokens of keywords in order.
func classList(keywords []string) []string {
	var out []string

	for _, kw := range keywords {
		if c, ok := classFor(kw); ok && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}

	return out
}
