package parser

import (
	"gopkg.in/yaml.v3"
)

// Node is a value of the untyped document tree: a Scalar, a Sequence or a Mapping.
type Node interface {
	node()
}

// Scalar is a leaf value. Null scalars (`key:` or `~`) have Null set and an empty Value.
type Scalar struct {
	Value string
	Null  bool
}

// Sequence is an ordered list of nodes.
type Sequence []Node

// Mapping is an ordered list of key/value pairs. Key order is the source order.
type Mapping []Pair

// Pair is one entry of a Mapping.
type Pair struct {
	Key   string
	Value Node
}

func (Scalar) node()   {}
func (Sequence) node() {}
func (Mapping) node()  {}

// Get returns the value stored under key.
func (m Mapping) Get(key string) (Node, bool) {
	for _, p := range m {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// String returns the non-null scalar stored under key.
func (m Mapping) String(key string) (string, bool) {
	n, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := n.(Scalar)
	if !ok || s.Null {
		return "", false
	}
	return s.Value, true
}

// Mapping returns the mapping stored under key.
func (m Mapping) Mapping(key string) (Mapping, bool) {
	n, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	sub, ok := n.(Mapping)
	return sub, ok
}

// Sequence returns the sequence stored under key.
func (m Mapping) Sequence(key string) (Sequence, bool) {
	n, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	seq, ok := n.(Sequence)
	return seq, ok
}

// fromYAML converts a yaml.v3 node into the document tree. Aliases are
// followed; document nodes unwrap to their single child.
func fromYAML(n *yaml.Node) Node {
	if n == nil {
		return Scalar{Null: true}
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Scalar{Null: true}
		}
		return fromYAML(n.Content[0])

	case yaml.AliasNode:
		return fromYAML(n.Alias)

	case yaml.MappingNode:
		m := make(Mapping, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			m = append(m, Pair{
				Key:   n.Content[i].Value,
				Value: fromYAML(n.Content[i+1]),
			})
		}
		return m

	case yaml.SequenceNode:
		seq := make(Sequence, 0, len(n.Content))
		for _, c := range n.Content {
			seq = append(seq, fromYAML(c))
		}
		return seq

	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return Scalar{Null: true}
		}
		return Scalar{Value: n.Value}

	default:
		return Scalar{Null: true}
	}
}
