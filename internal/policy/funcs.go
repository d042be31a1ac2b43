package policy

import (
	"strings"
	"text/template"

	sprig "github.com/Masterminds/sprig/v3"
	"gopkg.in/yaml.v3"
)

// IndexedItem pairs a sequence element with its position, the value
// `enumerate` produces for range-with-index templates.
type IndexedItem struct {
	Index int
	Value interface{}
}

// funcMap is the template capability set of spec §4.3: sprig's filter
// library (default, lower, upper, regexMatch, join, ...) plus three small
// additions for "attribute-extraction over sequences" and "enumerate",
// which sprig has no equivalent for, and a toYaml helper for emitting
// structured values.
func funcMap() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["attr"] = attrFunc
	fm["containsValue"] = containsValueFunc
	fm["enumerate"] = enumerateFunc
	fm["toYaml"] = toYamlFunc
	return fm
}

// attrFunc extracts one attribute across a sequence of mappings, e.g.
// `attr VALUE "how"` over a `check` sequence yields its `how` values.
func attrFunc(seq interface{}, key string) []interface{} {
	items, _ := seq.([]interface{})
	out := make([]interface{}, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, m[key])
		}
	}
	return out
}

func containsValueFunc(seq interface{}, want interface{}) bool {
	items, _ := seq.([]interface{})
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}

func enumerateFunc(seq interface{}) []IndexedItem {
	items, _ := seq.([]interface{})
	out := make([]IndexedItem, len(items))
	for i, item := range items {
		out[i] = IndexedItem{Index: i, Value: item}
	}
	return out
}

// toYamlFunc renders any plain value (as produced by schema.Test.ToPlain)
// back into YAML, for templates that need to emit a structured value
// rather than a bare scalar.
func toYamlFunc(v interface{}) (string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\n"), nil
}
