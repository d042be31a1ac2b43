package hardware

import (
	"fmt"
	"strconv"

	"github.com/fmfcore/tmtmeta/internal/quantity"
	"github.com/fmfcore/tmtmeta/internal/regexsearch"
	"github.com/fmfcore/tmtmeta/pkg/ver"
)

// Satisfies evaluates t against a concrete hardware description per
// spec §4.4's three-valued logic: missing facts in h yield Unknown
// rather than failing the whole tree.
func Satisfies(t Tree, h map[string]interface{}) Tristate {
	switch n := t.(type) {
	case LeafNode:
		return satisfiesLeaf(n, h)
	case AndNode:
		return reduceAnd(n.Children, h)
	case OrNode:
		return reduceOr(n.Children, h)
	default:
		return Unknown
	}
}

func reduceAnd(children []Tree, h map[string]interface{}) Tristate {
	sawUnknown := false
	for _, c := range children {
		switch Satisfies(c, h) {
		case No:
			return No
		case Unknown:
			sawUnknown = true
		}
	}
	if sawUnknown {
		return Unknown
	}
	return Yes
}

func reduceOr(children []Tree, h map[string]interface{}) Tristate {
	sawUnknown := false
	for _, c := range children {
		switch Satisfies(c, h) {
		case Yes:
			return Yes
		case Unknown:
			sawUnknown = true
		}
	}
	if sawUnknown {
		return Unknown
	}
	return No
}

func satisfiesLeaf(leaf LeafNode, h map[string]interface{}) Tristate {
	fact, ok := h[leaf.Path]
	if !ok || leaf.Kind == KindOpaque {
		return Unknown
	}

	switch leaf.Kind {
	case KindNumeric:
		return satisfiesNumeric(leaf, fact)
	case KindBoolean:
		return satisfiesBoolean(leaf, fact)
	case KindString:
		return satisfiesString(leaf, fact)
	case KindVersion:
		return satisfiesVersion(leaf, fact)
	default:
		return Unknown
	}
}

func toQuantity(v interface{}) (quantity.Quantity, bool) {
	switch x := v.(type) {
	case float64:
		return quantity.Quantity{Value: x}, true
	case int:
		return quantity.Quantity{Value: float64(x)}, true
	case int64:
		return quantity.Quantity{Value: float64(x)}, true
	case string:
		q, err := quantity.Parse(x)
		return q, err == nil
	default:
		return quantity.Quantity{}, false
	}
}

func satisfiesNumeric(leaf LeafNode, fact interface{}) Tristate {
	rhs, err := quantity.Parse(leaf.RHS)
	if err != nil {
		return Unknown
	}
	lhs, ok := toQuantity(fact)
	if !ok {
		return Unknown
	}
	c := quantity.Compare(lhs, rhs)
	return boolToTri(applyNumericOp(c, leaf.Op))
}

func applyNumericOp(c int, op string) bool {
	switch op {
	case "=":
		return c == 0
	case "!=":
		return c != 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	default:
		return false
	}
}

func satisfiesBoolean(leaf LeafNode, fact interface{}) Tristate {
	want, err := strconv.ParseBool(leaf.RHS)
	if err != nil {
		return Unknown
	}
	got, ok := fact.(bool)
	if !ok {
		return Unknown
	}
	switch leaf.Op {
	case "=":
		return boolToTri(got == want)
	case "!=":
		return boolToTri(got != want)
	default:
		return Unknown
	}
}

func satisfiesString(leaf LeafNode, fact interface{}) Tristate {
	got, ok := fact.(string)
	if !ok {
		got = fmt.Sprintf("%v", fact)
	}
	switch leaf.Op {
	case "=":
		return boolToTri(got == leaf.RHS)
	case "!=":
		return boolToTri(got != leaf.RHS)
	case "~":
		matched, err := regexsearch.Match(leaf.RHS, got)
		if err != nil {
			return Unknown
		}
		return boolToTri(matched)
	case "!~":
		matched, err := regexsearch.Match(leaf.RHS, got)
		if err != nil {
			return Unknown
		}
		return boolToTri(!matched)
	default:
		return Unknown
	}
}

func satisfiesVersion(leaf LeafNode, fact interface{}) Tristate {
	got, ok := fact.(string)
	if !ok {
		return Unknown
	}
	ok2, err := ver.CompareIdentifiers(got, leaf.RHS, leaf.Op)
	if err != nil {
		return Unknown
	}
	return boolToTri(ok2)
}

func boolToTri(b bool) Tristate {
	if b {
		return Yes
	}
	return No
}
