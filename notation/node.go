package notation

import (
	"iter"
	"reflect"
	"slices"
	"strings"
)

// Content is the body of a [Node]: either [Text] or a [Sequence] of mixed
// text and child nodes.
type Content interface {
	isContent()
	// PlainText returns the concatenated text of the content, descending into
	// child nodes.
	PlainText() string
}

// Item is one element of a [Sequence]: [Text] or *[Node].
type Item interface {
	isItem()
}

// Text is raw text content. It is both a [Content] and an [Item].
type Text string

func (Text) isContent() {}
func (Text) isItem()    {}

// PlainText returns t as a string.
func (t Text) PlainText() string { return string(t) }

// Sequence is ordered mixed content.
type Sequence []Item

func (Sequence) isContent() {}

// PlainText concatenates the text of all items.
func (s Sequence) PlainText() string {
	var sb strings.Builder

	for _, item := range s {
		switch v := item.(type) {
		case Text:
			sb.WriteString(string(v))
		case *Node:
			sb.WriteString(v.PlainText())
		}
	}

	return sb.String()
}

// Node is one element of the parsed document tree.
//
// Content and Attributes are never nil on nodes created by [NewNode]; a node
// owns its children exclusively.
type Node struct {
	Type       string
	Content    Content
	Attributes *Attributes
}

func (*Node) isItem() {}

// Node type tags produced by the parser.
const (
	TypeParagraph  = "paragraph"
	TypeList       = "list"
	TypeListItem   = "list_item"
	TypeRuby       = "ruby"
	TypeCustom     = "custom"
	TypeErrorBlock = "error_block"
)

// Reserved attribute keys.
const (
	AttrErrors   = "errors"
	AttrKeywords = "keywords"
	AttrClass    = "class"
)

// NewNode returns a node with nil content replaced by empty [Text] and nil
// attributes replaced by an empty map.
func NewNode(typ string, content Content, attrs *Attributes) *Node {
	if content == nil {
		content = Text("")
	}

	if attrs == nil {
		attrs = NewAttributes()
	}

	return &Node{Type: typ, Content: content, Attributes: attrs}
}

// PlainText returns the concatenated text content of n.
func (n *Node) PlainText() string {
	if n == nil || n.Content == nil {
		return ""
	}

	return n.Content.PlainText()
}

// Children returns the direct child nodes of n in order.
func (n *Node) Children() []*Node {
	seq, ok := n.Content.(Sequence)
	if !ok {
		return nil
	}

	var out []*Node

	for _, item := range seq {
		if c, ok := item.(*Node); ok {
			out = append(out, c)
		}
	}

	return out
}

// All returns a pre-order iterator over n and its descendants.
func (n *Node) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(yield)
	}
}

func (n *Node) walk(yield func(*Node) bool) bool {
	if n == nil {
		return true
	}

	if !yield(n) {
		return false
	}

	for _, c := range n.Children() {
		if !c.walk(yield) {
			return false
		}
	}

	return true
}

// AddError appends msg to the node-local errors list.
func (n *Node) AddError(msg string) {
	errs, _ := n.Attributes.Get(AttrErrors)
	list, _ := errs.([]string)
	n.Attributes.Set(AttrErrors, append(slices.Clip(list), msg))
}

// Errors returns the node-local errors list.
func (n *Node) Errors() []string {
	errs, _ := n.Attributes.Get(AttrErrors)
	list, _ := errs.([]string)

	return list
}

// Equal reports whether n and o are structurally identical.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}

	if n.Type != o.Type || !n.Attributes.Equal(o.Attributes) {
		return false
	}

	return contentEqual(n.Content, o.Content)
}

func contentEqual(a, b Content) bool {
	switch x := a.(type) {
	case Text:
		y, ok := b.(Text)

		return ok && x == y

	case Sequence:
		y, ok := b.(Sequence)
		if !ok || len(x) != len(y) {
			return false
		}

		for i := range x {
			switch xi := x[i].(type) {
			case Text:
				if yi, ok := y[i].(Text); !ok || xi != yi {
					return false
				}

			case *Node:
				if yi, ok := y[i].(*Node); !ok || !xi.Equal(yi) {
					return false
				}
			}
		}

		return true

	default:
		return a == nil && b == nil
	}
}

// NodesEqual reports whether two node lists are structurally identical.
func NodesEqual(a, b []*Node) bool {
	return slices.EqualFunc(a, b, (*Node).Equal)
}

// Ruby is the value of the "ruby" attribute: a base text and its reading.
type Ruby struct {
	BaseText string `json:"base_text" yaml:"base_text"`
	RubyText string `json:"ruby_text" yaml:"ruby_text"`
}

// Attributes is an insertion-ordered string-keyed map.
// A nil *Attributes reads as empty.
type Attributes struct {
	keys   []string
	values map[string]any
}

// NewAttributes returns an empty attribute map.
func NewAttributes() *Attributes {
	return &Attributes{values: make(map[string]any)}
}

// Set stores v under key, keeping the original position of an existing key.
// It returns a for chaining.
func (a *Attributes) Set(key string, v any) *Attributes {
	if a.values == nil {
		a.values = make(map[string]any)
	}

	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}

	a.values[key] = v

	return a
}

// Get returns the value stored under key.
func (a *Attributes) Get(key string) (any, bool) {
	if a == nil {
		return nil, false
	}

	v, ok := a.values[key]

	return v, ok
}

// GetString returns the value under key if it is a string.
func (a *Attributes) GetString(key string) string {
	v, _ := a.Get(key)
	s, _ := v.(string)

	return s
}

// Delete removes key.
func (a *Attributes) Delete(key string) {
	if a == nil {
		return
	}

	if _, ok := a.values[key]; !ok {
		return
	}

	delete(a.values, key)
	a.keys = slices.DeleteFunc(a.keys, func(k string) bool { return k == key })
}

// Len returns the number of entries.
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}

	return len(a.keys)
}

// Keys returns the keys in insertion order.
func (a *Attributes) Keys() []string {
	if a == nil {
		return nil
	}

	return slices.Clone(a.keys)
}

// All returns an iterator over entries in insertion order.
func (a *Attributes) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if a == nil {
			return
		}

		for _, k := range a.keys {
			if !yield(k, a.values[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy of a.
func (a *Attributes) Clone() *Attributes {
	c := NewAttributes()

	for k, v := range a.All() {
		c.Set(k, v)
	}

	return c
}

// Equal reports whether a and o hold the same entries in the same order.
func (a *Attributes) Equal(o *Attributes) bool {
	if !slices.Equal(a.Keys(), o.Keys()) {
		return false
	}

	for k, v := range a.All() {
		w, _ := o.Get(k)
		if !reflect.DeepEqual(v, w) {
			return false
		}
	}

	return true
}
