// Package document provides the generic key/value/sequence tree consumed
// by the validator and the reference extractor. The tree is produced from
// YAML source but is deliberately markup-agnostic: nodes carry only text
// and byte ranges into the original source.
package document

// Range is a half-open [Start, End) byte span into the source text.
type Range struct {
	Start int
	End   int
}

// Len returns the span length in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether offset falls inside the span.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Shift returns the range moved by delta bytes.
func (r Range) Shift(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// Node is any node of the document tree.
type Node interface {
	// Span returns the byte range the node covers in the source.
	Span() Range
	// Parent returns the enclosing node, nil at the root.
	Parent() Node

	setParent(Node)
}

// Scalar is a leaf text node.
type Scalar struct {
	Text   string
	Rng    Range
	parent Node
}

func (s *Scalar) Span() Range { return s.Rng }
func (s *Scalar) Parent() Node { return s.parent }
func (s *Scalar) setParent(p Node) { s.parent = p }

// KeyValue is a `key: value` entry of a mapping. Value is nil when the
// key carries no value at all (bare key, no colon value, no block); the
// validator reports that case distinctly.
type KeyValue struct {
	Key    string
	KeyRng Range
	Value  Node
	parent Node
}

func (k *KeyValue) Span() Range {
	if k.Value != nil {
		return Range{Start: k.KeyRng.Start, End: k.Value.Span().End}
	}
	return k.KeyRng
}
func (k *KeyValue) Parent() Node { return k.parent }
func (k *KeyValue) setParent(p Node) { k.parent = p }

// Mapping is an ordered set of KeyValue entries.
type Mapping struct {
	Entries []*KeyValue
	Rng     Range
	parent  Node
}

func (m *Mapping) Span() Range { return m.Rng }
func (m *Mapping) Parent() Node { return m.parent }
func (m *Mapping) setParent(p Node) { m.parent = p }

// Sequence is an ordered list of items.
type Sequence struct {
	Items  []*SequenceItem
	Rng    Range
	parent Node
}

func (s *Sequence) Span() Range { return s.Rng }
func (s *Sequence) Parent() Node { return s.parent }
func (s *Sequence) setParent(p Node) { s.parent = p }

// SequenceItem wraps a single sequence element.
type SequenceItem struct {
	Value  Node
	parent Node
}

func (i *SequenceItem) Span() Range {
	if i.Value != nil {
		return i.Value.Span()
	}
	return Range{}
}
func (i *SequenceItem) Parent() Node { return i.parent }
func (i *SequenceItem) setParent(p Node) { i.parent = p }

// Document is one parsed YAML document of a flow file.
type Document struct {
	Root   Node
	Source []byte
}

// Walk visits every node of the subtree rooted at n in document order.
// Returning false from visit skips the node's children.
func Walk(n Node, visit func(Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	switch node := n.(type) {
	case *Mapping:
		for _, entry := range node.Entries {
			Walk(entry, visit)
		}
	case *Sequence:
		for _, item := range node.Items {
			Walk(item, visit)
		}
	case *SequenceItem:
		Walk(node.Value, visit)
	case *KeyValue:
		Walk(node.Value, visit)
	}
}

// link wires parent pointers for a freshly built subtree.
func link(n Node, parent Node) {
	if n == nil {
		return
	}
	n.setParent(parent)
	switch node := n.(type) {
	case *Mapping:
		for _, entry := range node.Entries {
			link(entry, node)
		}
	case *Sequence:
		for _, item := range node.Items {
			link(item, node)
		}
	case *SequenceItem:
		link(node.Value, node)
	case *KeyValue:
		link(node.Value, node)
	}
}
