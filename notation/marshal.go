package notation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// contentValue converts c into plain values for serialization: Text becomes a
// string, Sequence becomes a []any of strings and *Node.
func contentValue(c Content) any {
	switch v := c.(type) {
	case Text:
		return string(v)

	case Sequence:
		out := make([]any, 0, len(v))

		for _, item := range v {
			switch x := item.(type) {
			case Text:
				out = append(out, string(x))
			case *Node:
				out = append(out, x)
			}
		}

		return out

	default:
		return ""
	}
}

// MarshalJSON implements json.Marshaler for Node.
func (n *Node) MarshalJSON() ([]byte, error) {
	attrs := n.Attributes
	if attrs == nil {
		attrs = NewAttributes()
	}

	return json.Marshal(struct {
		Type       string      `json:"type"`
		Content    any         `json:"content"`
		Attributes *Attributes `json:"attributes"`
	}{n.Type, contentValue(n.Content), attrs})
}

// MarshalYAML implements yaml.InterfaceMarshaler for Node.
func (n *Node) MarshalYAML() (any, error) {
	return yaml.MapSlice{
		{Key: "type", Value: n.Type},
		{Key: "content", Value: contentValue(n.Content)},
		{Key: "attributes", Value: n.Attributes.mapSlice()},
	}, nil
}

// MarshalJSON implements json.Marshaler, preserving insertion order.
func (a *Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	i := 0
	for k, v := range a.All() {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)

		i++
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.InterfaceMarshaler, preserving insertion order.
func (a *Attributes) MarshalYAML() (any, error) {
	return a.mapSlice(), nil
}

func (a *Attributes) mapSlice() yaml.MapSlice {
	ms := make(yaml.MapSlice, 0, a.Len())

	for k, v := range a.All() {
		ms = append(ms, yaml.MapItem{Key: k, Value: v})
	}

	return ms
}

// FormatJSON writes the result as JSON. A positive indent pretty-prints.
func (r *ParseResult) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(r, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(r)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the result as YAML. A non-positive indent selects flow
// style.
func (r *ParseResult) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, r.mapSlice(), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

func (r *ParseResult) mapSlice() yaml.MapSlice {
	nodes := make([]any, len(r.Nodes))
	for i, n := range r.Nodes {
		nodes[i] = n
	}

	meta := make(yaml.MapSlice, 0, len(r.Metadata))
	for _, k := range sortedKeys(r.Metadata) {
		meta = append(meta, yaml.MapItem{Key: k, Value: r.Metadata[k]})
	}

	return yaml.MapSlice{
		{Key: "success", Value: r.Success},
		{Key: "nodes", Value: nodes},
		{Key: "errors", Value: r.Errors},
		{Key: "warnings", Value: r.Warnings},
		{Key: "metadata", Value: meta},
	}
}

// Print writes an indented tree of the result's nodes to w.
func (r *ParseResult) Print(w io.Writer) {
	for _, n := range r.Nodes {
		n.Print(w, 0)
	}
}

func writer(w io.Writer) func(line string) {
	return func(line string) {
		_, err := io.WriteString(w, line+"\n")
		if err != nil {
			panic(err)
		}
	}
}

// Print writes an indented tree representation of n to w.
func (n *Node) Print(w io.Writer, indent int) {
	prefix := strings.Repeat("  ", indent)
	put := writer(w)

	var head strings.Builder

	head.WriteString(prefix + n.Type)

	for k, v := range n.Attributes.All() {
		head.WriteString(" " + k + "=" + fmt.Sprint(v))
	}

	put(head.String())

	switch c := n.Content.(type) {
	case Text:
		if c != "" {
			put(prefix + "  " + strconv.Quote(string(c)))
		}

	case Sequence:
		for _, item := range c {
			switch x := item.(type) {
			case Text:
				put(prefix + "  " + strconv.Quote(string(x)))
			case *Node:
				x.Print(w, indent+1)
			}
		}
	}
}
