// Package dimension implements the execution Context of spec §3: a mapping
// from dimension name (distro, arch, component, trigger, collection,
// initiator, ...) to one or more dimension values, with the comparison
// semantics the when-expression language (internal/adjust) and CLI/env/
// config inputs (§6) rely on.
package dimension

// Context is a mapping from dimension name to its values. A dimension may
// carry more than one value (spec §3: "treated disjunctively").
type Context map[string][]string

// New builds a Context from single-valued pairs, a convenience for tests
// and CLI flag parsing where one value per dimension is the common case.
func New(pairs map[string]string) Context {
	c := make(Context, len(pairs))
	for k, v := range pairs {
		c[k] = []string{v}
	}
	return c
}

// Defined reports whether dimension has at least one value in the context.
func (c Context) Defined(dim string) bool {
	vs, ok := c[dim]
	return ok && len(vs) > 0
}

// Values returns the values for dim, or nil if undefined.
func (c Context) Values(dim string) []string {
	return c[dim]
}

// Add appends value to dim's value set, creating it if absent. Used when
// parsing the CLI's repeatable --context flag.
func (c Context) Add(dim, value string) {
	c[dim] = append(c[dim], value)
}

// Clone returns a deep copy.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		cp := make([]string, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}
