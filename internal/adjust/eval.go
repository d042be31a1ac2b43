package adjust

import (
	"github.com/fmfcore/tmtmeta/internal/dimension"
	"github.com/fmfcore/tmtmeta/internal/regexsearch"
)

type evalContext struct {
	ctx dimension.Context
}

func (e *definedExpr) eval(c evalContext) bool {
	defined := c.ctx.Defined(e.dim)
	if e.negation {
		return !defined
	}
	return defined
}

func (e *compareExpr) eval(c evalContext) bool {
	switch e.op {
	case "~", "!~":
		return evalRegex(c.ctx, e.dim, e.op, e.literal)
	default:
		return dimension.Compare(c.ctx, e.dim, dimension.Op(e.op), e.literal)
	}
}

func evalRegex(ctx dimension.Context, dim, op, pattern string) bool {
	values := ctx.Values(dim)
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		matched, err := regexsearch.Match(pattern, v)
		if err != nil {
			return false
		}
		if op == "~" && matched {
			return true
		}
		if op == "!~" && !matched {
			return true
		}
	}
	return false
}

// Eval parses and evaluates a when expression against ctx.
func Eval(when string, ctx dimension.Context) (bool, error) {
	e, err := parse(when)
	if err != nil {
		return false, err
	}
	return e.eval(evalContext{ctx: ctx}), nil
}
