package hardware

import (
	"fmt"
	"sort"

	fmterrors "github.com/fmfcore/tmtmeta/internal/errors"
)

// Parse builds a constraint Tree from a decoded document (spec §4.4
// "Document shape"). doc must contain either exactly one of "and"/"or",
// or one or more dotted-path leaf constraints; mixing the two at the
// same level is a hard parse error.
func Parse(doc map[string]interface{}) (Tree, error) {
	if len(doc) == 0 {
		return AndNode{}, nil
	}

	_, hasAnd := doc["and"]
	_, hasOr := doc["or"]

	switch {
	case hasAnd && hasOr:
		return nil, &fmterrors.SemanticError{Where: "hardware document", Detail: "a node cannot declare both 'and' and 'or'"}
	case hasAnd || hasOr:
		if len(doc) != 1 {
			return nil, &fmterrors.SemanticError{Where: "hardware document", Detail: "leaf constraints cannot be mixed with 'and'/'or' at the same level"}
		}
		op := "and"
		raw := doc["and"]
		if hasOr {
			op = "or"
			raw = doc["or"]
		}
		return parseComposite(op, raw)
	default:
		return parseLeaves(doc)
	}
}

func parseComposite(op string, raw interface{}) (Tree, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, &fmterrors.SchemaError{Node: op, Key: op, Value: raw, Want: "sequence of sub-documents"}
	}
	children := make([]Tree, 0, len(items))
	for _, item := range items {
		sub, ok := item.(map[string]interface{})
		if !ok {
			return nil, &fmterrors.SchemaError{Node: op, Key: op, Value: item, Want: "mapping sub-document"}
		}
		child, err := Parse(sub)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	if op == "or" {
		return OrNode{Children: children}, nil
	}
	return AndNode{Children: children}, nil
}

// parseLeaves treats every key in doc as a leaf constraint, implicitly
// ANDed together when more than one is present. Keys are sorted so the
// resulting tree (and its canonical serialization) does not depend on Go's
// unordered map iteration.
func parseLeaves(doc map[string]interface{}) (Tree, error) {
	paths := make([]string, 0, len(doc))
	for k := range doc {
		paths = append(paths, k)
	}
	sort.Strings(paths)

	leaves := make([]Tree, 0, len(paths))
	for _, path := range paths {
		raw, ok := doc[path].(string)
		if !ok {
			return nil, &fmterrors.SchemaError{Node: path, Key: path, Value: doc[path], Want: fmt.Sprintf("constraint string, e.g. %q", "= 8 GB")}
		}
		leaf, err := parseLeaf(path, raw)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, leaf)
	}

	if len(leaves) == 1 {
		return leaves[0], nil
	}
	return AndNode{Children: leaves}, nil
}
