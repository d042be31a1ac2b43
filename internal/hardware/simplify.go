package hardware

// Simplify flattens trivially-nested boolean nodes per spec §4.4 "Tree
// simplification": a singleton and/or reduces to its child, nested
// same-operator composites flatten into one level, and empty/degenerate
// and/or nodes are left as-is (they are meaningful: empty and is
// trivially satisfied, empty or is unsatisfiable).
func Simplify(t Tree) Tree {
	switch n := t.(type) {
	case LeafNode:
		return n
	case AndNode:
		return simplifyComposite(n.Children, true)
	case OrNode:
		return simplifyComposite(n.Children, false)
	default:
		return t
	}
}

func simplifyComposite(children []Tree, isAnd bool) Tree {
	flat := make([]Tree, 0, len(children))
	for _, c := range children {
		sc := Simplify(c)
		switch same := sc.(type) {
		case AndNode:
			if isAnd {
				flat = append(flat, same.Children...)
				continue
			}
		case OrNode:
			if !isAnd {
				flat = append(flat, same.Children...)
				continue
			}
		}
		flat = append(flat, sc)
	}

	if len(flat) == 1 {
		return flat[0]
	}
	if isAnd {
		return AndNode{Children: flat}
	}
	return OrNode{Children: flat}
}
