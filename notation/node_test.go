package notation

import (
	"slices"
	"testing"
)

func TestAttributes_Order(t *testing.T) {
	a := NewAttributes().Set("b", 1).Set("a", 2).Set("c", 3)
	a.Set("b", 4)

	if got := a.Keys(); !slices.Equal(got, []string{"b", "a", "c"}) {
		t.Errorf("expected insertion order, got %q", got)
	}

	if v, _ := a.Get("b"); v != 4 {
		t.Errorf("expected overwritten value, got %v", v)
	}

	a.Delete("a")
	a.Delete("missing")

	if got := a.Keys(); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("expected a removed, got %q", got)
	}

	if a.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", a.Len())
	}
}

func TestAttributes_Nil(t *testing.T) {
	var a *Attributes

	if _, ok := a.Get("x"); ok {
		t.Error("expected nil attributes to be empty")
	}

	if a.Len() != 0 || a.Keys() != nil || a.GetString("x") != "" {
		t.Error("expected nil attributes to read as empty")
	}

	for range a.All() {
		t.Fatal("expected no entries")
	}

	a.Delete("x")

	if !a.Equal(NewAttributes()) {
		t.Error("expected nil attributes to equal empty attributes")
	}
}

func TestAttributes_Equal(t *testing.T) {
	a := NewAttributes().Set("k", []string{"x"}).Set("n", 1)
	b := a.Clone()

	if !a.Equal(b) {
		t.Fatal("expected clone to be equal")
	}

	b.Set("n", 2)

	if a.Equal(b) {
		t.Error("expected value change to break equality")
	}

	c := NewAttributes().Set("n", 1).Set("k", []string{"x"})
	if a.Equal(c) {
		t.Error("expected order to matter")
	}
}

func TestNode_Tree(t *testing.T) {
	inner := NewNode("italic", Text("b"), nil)
	outer := NewNode("bold", Sequence{Text("a"), inner, Text("c")}, nil)

	if got := outer.PlainText(); got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}

	if got := outer.Children(); len(got) != 1 || got[0] != inner {
		t.Errorf("expected one child, got %v", got)
	}

	var types []string
	for n := range outer.All() {
		types = append(types, n.Type)
	}

	if !slices.Equal(types, []string{"bold", "italic"}) {
		t.Errorf("unexpected walk order %q", types)
	}

	if NewNode("x", nil, nil).Content != Text("") {
		t.Error("expected nil content to become empty text")
	}
}

func TestNode_Errors(t *testing.T) {
	n := NewNode(TypeParagraph, Text("x"), nil)

	if n.Errors() != nil {
		t.Error("expected no errors")
	}

	n.AddError("first")
	n.AddError("second")

	if got := n.Errors(); !slices.Equal(got, []string{"first", "second"}) {
		t.Errorf("unexpected errors %q", got)
	}
}

func TestNodesEqual(t *testing.T) {
	build := func(text string) []*Node {
		return []*Node{
			NewNode("bold", Sequence{NewNode("italic", Text(text), nil)},
				NewAttributes().Set(AttrKeywords, []string{"太字", "イタリック"})),
		}
	}

	if !NodesEqual(build("x"), build("x")) {
		t.Error("expected equal trees")
	}

	if NodesEqual(build("x"), build("y")) {
		t.Error("expected nested text difference to be detected")
	}

	if NodesEqual(build("x"), nil) {
		t.Error("expected length difference to be detected")
	}

	text := []*Node{NewNode("bold", Text("x"), nil)}
	seq := []*Node{NewNode("bold", Sequence{Text("x")}, nil)}

	if NodesEqual(text, seq) {
		t.Error("expected content shape to matter")
	}
}
