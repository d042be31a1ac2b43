package adjust

import (
	"fmt"

	"github.com/fmfcore/tmtmeta/internal/dimension"
	fmterrors "github.com/fmfcore/tmtmeta/internal/errors"
	"github.com/fmfcore/tmtmeta/internal/metanode"
)

// Rule is one entry of an "adjust" sequence (spec §4.1).
type Rule struct {
	When     string
	Continue bool // default true; parseRule sets it explicitly, since the zero value false means "stop"
	Because  string
	Payload  metanode.Node
}

const reservedContinue = "continue"
const reservedWhen = "when"
const reservedBecause = "because"

// parseRules normalizes an "adjust" value (a single rule mapping or an
// ordered sequence of rule mappings, spec §4.1) into an ordered []Rule.
func parseRules(raw interface{}) ([]Rule, error) {
	switch v := raw.(type) {
	case map[string]interface{}:
		r, err := parseRule(v)
		if err != nil {
			return nil, err
		}
		return []Rule{r}, nil
	case metanode.Node:
		r, err := parseRule(v)
		if err != nil {
			return nil, err
		}
		return []Rule{r}, nil
	case []interface{}:
		rules := make([]Rule, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]interface{})
			if !ok {
				if n, ok2 := item.(metanode.Node); ok2 {
					m = n
				} else {
					return nil, &fmterrors.SchemaError{Key: fmt.Sprintf("adjust[%d]", i), Value: item, Want: "mapping"}
				}
			}
			r, err := parseRule(m)
			if err != nil {
				return nil, err
			}
			rules = append(rules, r)
		}
		return rules, nil
	default:
		return nil, &fmterrors.SchemaError{Key: "adjust", Value: raw, Want: "mapping or sequence of mappings"}
	}
}

func parseRule(m map[string]interface{}) (Rule, error) {
	r := Rule{Continue: true, Payload: metanode.Node{}}

	whenRaw, ok := m[reservedWhen]
	if !ok {
		return Rule{}, &fmterrors.SchemaError{Key: reservedWhen, Value: nil, Want: "required string"}
	}
	when, ok := whenRaw.(string)
	if !ok {
		return Rule{}, &fmterrors.SchemaError{Key: reservedWhen, Value: whenRaw, Want: "string"}
	}
	r.When = when

	if c, ok := m[reservedContinue]; ok {
		b, ok := c.(bool)
		if !ok {
			return Rule{}, &fmterrors.SchemaError{Key: reservedContinue, Value: c, Want: "boolean"}
		}
		r.Continue = b
	}

	if b, ok := m[reservedBecause]; ok {
		if s, ok := b.(string); ok {
			r.Because = s
		}
	}

	for k, v := range m {
		if k == reservedWhen || k == reservedContinue || k == reservedBecause {
			continue
		}
		r.Payload[k] = v
	}

	return r, nil
}

// Apply evaluates when in declared order against ctx, merging the payload
// of every matching rule into node, honoring continue:false as an early
// stop (spec §4.1 "Rule application"). adjust is consumed and removed.
func Apply(node metanode.Node, ctx dimension.Context) (metanode.Node, error) {
	out := metanode.Clone(node)

	raw, has := out["adjust"]
	if !has {
		return out, nil
	}
	delete(out, "adjust")

	rules, err := parseRules(raw)
	if err != nil {
		return nil, err
	}

	for _, rule := range rules {
		matched, err := Eval(rule.When, ctx)
		if err != nil {
			return nil, &fmterrors.SyntaxError{Source: "when", Input: rule.When, Detail: err.Error()}
		}
		if !matched {
			continue
		}
		mergePayload(out, rule.Payload)
		if !rule.Continue {
			break
		}
	}

	return out, nil
}

func mergePayload(node, payload metanode.Node) {
	for key, value := range payload {
		bare, marked := metanode.HasMergeMarker(key)
		if !marked {
			node[bare] = value
			continue
		}
		existing, _ := node[bare]
		node[bare] = metanode.Merge(existing, value)
	}
}
