// Package policy implements the Policy engine of spec §4.3: an
// unconditional second metadata-rewrite pass that renders templated
// directives against a normalized test, re-parses the rendered output,
// re-normalizes it, and substitutes it back into the test.
package policy

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Rule is one mapping from a test-key name to a template string within a
// policy document's `test-policy` sequence. Keys carries declaration
// order since within one rule, "order of key processing is declaration
// order" (spec §4.3) and a plain Go map cannot preserve that.
type Rule struct {
	Keys      []string
	Templates map[string]string
}

// UnmarshalYAML decodes a rule directly from its mapping node's Content
// slice rather than through map[string]string, which is how Keys keeps
// the source's declaration order.
func (r *Rule) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("policy: rule must be a mapping, got %v", node.Kind)
	}
	r.Templates = make(map[string]string, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key, tmpl string
		if err := node.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("policy: rule key: %w", err)
		}
		if err := node.Content[i+1].Decode(&tmpl); err != nil {
			return fmt.Errorf("policy: rule %q template: %w", key, err)
		}
		r.Keys = append(r.Keys, key)
		r.Templates[key] = tmpl
	}
	return nil
}

// Document is a parsed policy document: the ordered `test-policy`
// sequence of spec §6.
type Document struct {
	Rules []Rule `yaml:"test-policy"`
}

// LoadDocument decodes data as a policy document.
func LoadDocument(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("policy: decoding document: %w", err)
	}
	return doc, nil
}
