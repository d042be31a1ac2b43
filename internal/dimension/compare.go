package dimension

import "github.com/fmfcore/tmtmeta/pkg/ver"

// Op is a comparison operator recognized by the when-expression language.
type Op string

const (
	OpEq  Op = "=="
	OpNeq Op = "!="
	OpLt  Op = "<"
	OpLte Op = "<="
	OpGt  Op = ">"
	OpGte Op = ">="
)

// Compare evaluates "dim op literal" against the context using any-match
// semantics (spec §4.1): if dim carries multiple values, the predicate
// fires if any one of them satisfies it. An undefined dimension yields
// false for every operator except "!=", which yields true only when the
// dimension IS defined and differs — so an undefined dimension yields
// false there too.
func Compare(c Context, dim string, op Op, literal string) bool {
	values, ok := c[dim]
	if !ok || len(values) == 0 {
		return false
	}

	for _, v := range values {
		if matches, err := ver.CompareIdentifiers(v, literal, string(op)); err == nil && matches {
			return true
		}
	}
	return false
}
