package adjust

// expr is the parsed when-expression AST (spec §4.1 grammar: not > comparisons
// > and > or, with parentheses).
type expr interface {
	eval(ctx evalContext) bool
}

type andExpr struct{ left, right expr }
type orExpr struct{ left, right expr }
type notExpr struct{ inner expr }

type compareExpr struct {
	dim     string
	op      string
	literal string
}

type definedExpr struct {
	dim      string
	negation bool // "is not defined" when true
}

func (e *andExpr) eval(c evalContext) bool { return e.left.eval(c) && e.right.eval(c) }
func (e *orExpr) eval(c evalContext) bool  { return e.left.eval(c) || e.right.eval(c) }
func (e *notExpr) eval(c evalContext) bool { return !e.inner.eval(c) }
