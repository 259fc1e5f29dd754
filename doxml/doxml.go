// Package doxml loads Doxygen-generated XML into a generic document
// tree. The tree keeps only what the extraction pass needs: element tags,
// attribute order, child order and character data. Attributes of the
// XML declaration, comments and processing instructions are dropped.
package doxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Attr is a single element attribute. Order is preserved as it appears
// in the source document.
type Attr struct {
	Name  string
	Value string
}

// Node is one element or text node of the document tree. Element nodes
// carry a Tag and possibly Attrs and Children; text nodes have an empty
// Tag and their character data in Text.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n.Tag == ""
}

// Attr returns the value of the named attribute, or "" if absent.
func (n *Node) Attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// ChildElements returns the direct element children in document order.
func (n *Node) ChildElements() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if !c.IsText() {
			out = append(out, c)
		}
	}
	return out
}

// FlatText concatenates the character data of the direct text children.
// It does not descend into child elements.
func (n *Node) FlatText() string {
	var b strings.Builder
	for _, c := range n.Children {
		if c.IsText() {
			b.WriteString(c.Text)
		}
	}
	return b.String()
}

// Find returns the first descendant element with the given tag in
// document order, or nil.
func (n *Node) Find(tag string) *Node {
	for _, c := range n.Children {
		if c.IsText() {
			continue
		}
		if c.Tag == tag {
			return c
		}
		if m := c.Find(tag); m != nil {
			return m
		}
	}
	return nil
}

// FindAll returns every descendant element with the given tag in
// document order.
func (n *Node) FindAll(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.IsText() {
			continue
		}
		if c.Tag == tag {
			out = append(out, c)
		}
		out = append(out, c.FindAll(tag)...)
	}
	return out
}

// Load reads and parses the XML document at path and returns its root
// element.
func Load(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	root, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %v: %w", path, err)
	}
	return root, nil
}

// Parse reads an XML document from r and returns its root element.
// Character data is kept verbatim; whitespace-only text nodes are the
// consumer's concern.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	var root *Node
	var stack []*Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			n := &Node{Tag: tok.Name.Local}
			for _, a := range tok.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("multiple root elements")
				}
				root = n
			} else {
				top := stack[len(stack)-1]
				top.Children = append(top.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			top.Children = append(top.Children, &Node{Text: string(tok)})
		}
	}
	if root == nil {
		return nil, fmt.Errorf("no root element")
	}
	return root, nil
}
