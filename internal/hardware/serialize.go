package hardware

import "gopkg.in/yaml.v3"

// Serialize renders t in the canonical textual form of spec §4.4: leaves
// as `key: 'OP RHS'` with an explicit operator and a single-quoted value,
// composites as a mapping `and:`/`or:` holding a sequence. Built directly
// as a yaml.Node tree (rather than a plain map marshaled with default
// style) so the single-quoted leaf style survives the round trip spec §8
// property 3 requires.
func Serialize(t Tree) ([]byte, error) {
	node := toYAMLNode(t)
	return yaml.Marshal(node)
}

func toYAMLNode(t Tree) *yaml.Node {
	switch n := t.(type) {
	case LeafNode:
		return leafYAMLNode(n)
	case AndNode:
		return compositeYAMLNode("and", n.Children)
	case OrNode:
		return compositeYAMLNode("or", n.Children)
	default:
		return &yaml.Node{Kind: yaml.MappingNode}
	}
}

func leafYAMLNode(n LeafNode) *yaml.Node {
	key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.Path}
	value := &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: n.Op + " " + n.RHS,
		Style: yaml.SingleQuotedStyle,
	}
	return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{key, value}}
}

func compositeYAMLNode(op string, children []Tree) *yaml.Node {
	key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: op}
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, c := range children {
		seq.Content = append(seq.Content, toYAMLNode(c))
	}
	return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{key, seq}}
}
