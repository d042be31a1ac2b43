// Package normalize implements the Normalizer of spec §4.2: given a raw
// (post-adjustment) node, it produces the typed Test object of spec §3,
// expanding scalar shorthand to sequences, resolving and stripping merge
// markers against already-normalized parent values, and tagging every key
// with its source.
package normalize

import (
	"fmt"
	"strings"

	fmterrors "github.com/fmfcore/tmtmeta/internal/errors"
	"github.com/fmfcore/tmtmeta/internal/metanode"
	"github.com/fmfcore/tmtmeta/internal/schema"
)

// Normalize converts node into a typed Test. inherited holds the parent
// fmf level's already-normalized plain values (spec §4.2: "resolved
// against parent node values already loaded"), used only to satisfy
// merge markers; it may be nil for a root-level node. source is the tag
// applied to every key taken directly from node (ordinarily
// schema.SourceFMF; internal/config.Resolve reports schema.SourceCLI or
// SourceDefault for values a caller takes from flags, the environment or
// built-in defaults).
func Normalize(name string, node metanode.Node, inherited map[string]interface{}, source schema.SourceTag) (*schema.Test, error) {
	if !strings.HasPrefix(name, "/") {
		return nil, &fmterrors.SchemaError{Node: name, Key: "name", Value: name, Want: "identifier path starting with '/'"}
	}

	t := schema.NewTest(name)

	for rawKey, rawValue := range node {
		bare, marked := metanode.HasMergeMarker(rawKey)
		value := rawValue
		if marked {
			var parentValue interface{}
			if inherited != nil {
				parentValue = inherited[bare]
			}
			value = metanode.Merge(parentValue, rawValue)
		}

		canonical, err := canonicalize(name, bare, value)
		if err != nil {
			return nil, err
		}
		t.Set(bare, canonical, source)
	}

	applyDefaults(t)

	return t, nil
}

func applyDefaults(t *schema.Test) {
	for key, ks := range schema.Registry {
		if _, present := t.Get(key); present {
			continue
		}
		if ks.Default == nil {
			continue
		}
		switch key {
		case "duration":
			secs, _ := ParseDurationSeconds(ks.Default.(string))
			t.Set(key, secs, schema.SourceDefault)
		default:
			t.Set(key, ks.Default, schema.SourceDefault)
		}
	}
}

// Canonicalize exposes canonicalize to internal/policy, which must
// re-normalize a template's rendered output against the same key schema
// (spec §4.3 step 3: "normalize the parsed result per the key's schema").
func Canonicalize(testName, key string, raw interface{}) (interface{}, error) {
	return canonicalize(testName, key, raw)
}

// canonicalize converts a raw value into key's declared canonical shape.
// Unknown keys pass through unchanged (spec §4.2 forward-compatibility).
func canonicalize(testName, key string, raw interface{}) (interface{}, error) {
	ks, known := schema.Registry[key]
	if !known {
		return raw, nil
	}

	switch ks.Kind {
	case schema.KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, &fmterrors.SchemaError{Node: testName, Key: key, Value: raw, Want: "string"}
		}
		return s, nil

	case schema.KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, &fmterrors.SchemaError{Node: testName, Key: key, Value: raw, Want: "boolean"}
		}
		return b, nil

	case schema.KindEnum:
		s, ok := raw.(string)
		if !ok {
			return nil, &fmterrors.SchemaError{Node: testName, Key: key, Value: raw, Want: "string"}
		}
		if len(ks.Enum) > 0 && !contains(ks.Enum, s) {
			return nil, &fmterrors.SchemaError{Node: testName, Key: key, Value: raw, Want: fmt.Sprintf("one of %v", ks.Enum)}
		}
		return s, nil

	case schema.KindStringSeq:
		return toStringSeq(testName, key, raw)

	case schema.KindMapping:
		return toStringMapping(testName, key, raw)

	case schema.KindDuration:
		switch v := raw.(type) {
		case string:
			secs, err := ParseDurationSeconds(v)
			if err != nil {
				return nil, &fmterrors.SchemaError{Node: testName, Key: key, Value: raw, Want: "duration string"}
			}
			return secs, nil
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		default:
			return nil, &fmterrors.SchemaError{Node: testName, Key: key, Value: raw, Want: "duration string or seconds"}
		}

	case schema.KindCheckSeq:
		return toCheckSeq(testName, key, raw)

	case schema.KindLinkSeq:
		return toLinkSeq(testName, key, raw)

	default:
		return raw, nil
	}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// toStringSeq expands the scalar shorthand (spec §3 invariant: a
// "sequence"-declared key is always materialized as a sequence).
func toStringSeq(testName, key string, raw interface{}) ([]string, error) {
	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, &fmterrors.SchemaError{Node: testName, Key: key, Value: item, Want: "string element"}
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, &fmterrors.SchemaError{Node: testName, Key: key, Value: raw, Want: "string or sequence of string"}
	}
}

func toStringMapping(testName, key string, raw interface{}) (map[string]string, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		if m2, ok2 := raw.(map[string]string); ok2 {
			return m2, nil
		}
		return nil, &fmterrors.SchemaError{Node: testName, Key: key, Value: raw, Want: "mapping"}
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprintf("%v", v)
		}
		out[k] = s
	}
	return out, nil
}

func toCheckSeq(testName, key string, raw interface{}) ([]schema.Check, error) {
	items, err := asMappingSeq(testName, key, raw)
	if err != nil {
		return nil, err
	}
	out := make([]schema.Check, 0, len(items))
	for _, m := range items {
		c := schema.Check{Extra: map[string]interface{}{}}
		for k, v := range m {
			switch k {
			case "how":
				s, ok := v.(string)
				if !ok {
					return nil, &fmterrors.SchemaError{Node: testName, Key: key + ".how", Value: v, Want: "string"}
				}
				c.How = s
			case "result":
				s, ok := v.(string)
				if !ok {
					return nil, &fmterrors.SchemaError{Node: testName, Key: key + ".result", Value: v, Want: "string"}
				}
				c.Result = s
			default:
				c.Extra[k] = v
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func toLinkSeq(testName, key string, raw interface{}) ([]schema.Link, error) {
	items, err := asMappingSeq(testName, key, raw)
	if err != nil {
		return nil, err
	}
	out := make([]schema.Link, 0, len(items))
	for _, m := range items {
		l := schema.Link{}
		if v, ok := m["relation"].(string); ok {
			l.Relation = v
		}
		if v, ok := m["target"].(string); ok {
			l.Target = v
		}
		if v, ok := m["note"].(string); ok {
			l.Note = v
		}
		out = append(out, l)
	}
	return out, nil
}

func asMappingSeq(testName, key string, raw interface{}) ([]map[string]interface{}, error) {
	switch v := raw.(type) {
	case map[string]interface{}:
		return []map[string]interface{}{v}, nil
	case []interface{}:
		out := make([]map[string]interface{}, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]interface{})
			if !ok {
				return nil, &fmterrors.SchemaError{Node: testName, Key: key, Value: item, Want: "mapping element"}
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, &fmterrors.SchemaError{Node: testName, Key: key, Value: raw, Want: "mapping or sequence of mapping"}
	}
}
