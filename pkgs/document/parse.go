package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseAll decodes every YAML document in source (flow files separate the
// config section from actions with ---) into document trees. Documents
// decoded before a syntax error are returned alongside the error.
func ParseAll(source []byte) ([]*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(source))
	lines := lineOffsets(source)

	var docs []*Document
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return docs, fmt.Errorf("document: parse: %w", err)
		}
		root := convert(&node, lines)
		link(root, nil)
		docs = append(docs, &Document{Root: root, Source: source})
	}
}

// Parse decodes the first YAML document in source.
func Parse(source []byte) (*Document, error) {
	docs, err := ParseAll(source)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return &Document{Source: source}, nil
	}
	return docs[0], nil
}

// convert maps a yaml.v3 node onto the generic tree, translating
// line/column positions into byte offsets.
func convert(n *yaml.Node, lines []int) Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return convert(n.Content[0], lines)

	case yaml.AliasNode:
		return convert(n.Alias, lines)

	case yaml.ScalarNode:
		if isNullScalar(n) {
			return nil
		}
		return &Scalar{Text: n.Value, Rng: scalarRange(n, lines)}

	case yaml.MappingNode:
		m := &Mapping{Rng: nodeStartRange(n, lines)}
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			valNode := n.Content[i+1]
			entry := &KeyValue{
				Key:    keyNode.Value,
				KeyRng: scalarRange(keyNode, lines),
				Value:  convert(valNode, lines),
			}
			m.Entries = append(m.Entries, entry)
		}
		if last := lastEntryEnd(m); last > m.Rng.End {
			m.Rng.End = last
		}
		return m

	case yaml.SequenceNode:
		s := &Sequence{Rng: nodeStartRange(n, lines)}
		for _, item := range n.Content {
			s.Items = append(s.Items, &SequenceItem{Value: convert(item, lines)})
		}
		for _, item := range s.Items {
			if end := item.Span().End; end > s.Rng.End {
				s.Rng.End = end
			}
		}
		return s

	default:
		return nil
	}
}

// isNullScalar reports whether the node is YAML's representation of an
// absent value (bare key with no colon value).
func isNullScalar(n *yaml.Node) bool {
	return n.Tag == "!!null" && n.Value == ""
}

// scalarRange computes the byte span of a scalar token. Quoted styles add
// the quote characters; block styles are approximated by the decoded
// length, which is sufficient for diagnostics anchored at the start.
func scalarRange(n *yaml.Node, lines []int) Range {
	start := offsetAt(lines, n.Line, n.Column)
	length := len(n.Value)
	switch n.Style {
	case yaml.SingleQuotedStyle, yaml.DoubleQuotedStyle:
		length += 2
	}
	return Range{Start: start, End: start + length}
}

func nodeStartRange(n *yaml.Node, lines []int) Range {
	start := offsetAt(lines, n.Line, n.Column)
	return Range{Start: start, End: start}
}

func lastEntryEnd(m *Mapping) int {
	if len(m.Entries) == 0 {
		return m.Rng.End
	}
	return m.Entries[len(m.Entries)-1].Span().End
}

// lineOffsets indexes the byte offset of each line start.
func lineOffsets(source []byte) []int {
	offsets := []int{0}
	for i, b := range source {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// offsetAt translates a 1-based line/column position into a byte offset,
// clamping out-of-range positions to the nearest valid offset.
func offsetAt(lines []int, line, column int) int {
	if line < 1 {
		return 0
	}
	if line > len(lines) {
		line = len(lines)
	}
	off := lines[line-1] + column - 1
	if off < 0 {
		off = 0
	}
	return off
}
