// Package ver provides versioned-identifier comparison for context
// dimension values (spec §3: "fedora-33 < fedora-40") and for the
// hardware-requirement language's version-like leaves (spec §4.4,
// e.g. tpm.version).
//
// It wraps Masterminds/semver/v3, grounded on
// input-output-hk-catalyst-forge-libs/schemas/version.go's use of the same
// library for compatibility checks. Dimension and leaf values are rarely
// strict semver (e.g. "fedora-33"), so Parse extracts the trailing
// dotted-numeric run of the identifier and feeds that to semver; values
// with no numeric suffix are not version-comparable and callers fall back
// to lexical equality-only comparison per spec §3.
package ver

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

var numericSuffix = regexp.MustCompile(`(\d+(?:\.\d+){0,3})$`)

// Version is a parsed, comparable identifier.
type Version struct {
	raw string
	sv  *semver.Version
}

// Parse attempts to interpret s as a versioned identifier. ok is false
// when s carries no trailing numeric-dotted suffix, meaning the caller
// must fall back to lexical-equality-only comparison.
func Parse(s string) (v Version, ok bool) {
	m := numericSuffix.FindString(s)
	if m == "" {
		return Version{raw: s}, false
	}
	sv, err := semver.NewVersion(padTriple(m))
	if err != nil {
		return Version{raw: s}, false
	}
	return Version{raw: s, sv: sv}, true
}

// padTriple extends a 1- or 2-component dotted number to a full semver
// major.minor.patch triple, since semver.NewVersion requires one.
func padTriple(s string) string {
	dots := 0
	for _, c := range s {
		if c == '.' {
			dots++
		}
	}
	switch dots {
	case 0:
		return s + ".0.0"
	case 1:
		return s + ".0"
	default:
		return s
	}
}

// Compare returns -1, 0, or 1. Both values must have parsed with ok=true.
func Compare(a, b Version) int {
	if a.sv == nil || b.sv == nil {
		if a.raw == b.raw {
			return 0
		}
		if a.raw < b.raw {
			return -1
		}
		return 1
	}
	return a.sv.Compare(b.sv)
}

// String renders the original identifier.
func (v Version) String() string {
	if v.raw == "" && v.sv != nil {
		return v.sv.String()
	}
	return v.raw
}

// CompareIdentifiers compares two bare identifiers, using version
// semantics when both parse and lexical equality-only semantics
// otherwise, per spec §3: "arbitrary string dimensions compare lexically
// with equality only". op must be one of ==, !=, <, <=, >, >=.
func CompareIdentifiers(a, b, op string) (bool, error) {
	va, aok := Parse(a)
	vb, bok := Parse(b)

	if aok && bok {
		c := Compare(va, vb)
		return applyOp(c, op)
	}

	// Lexical fallback: only equality operators are meaningful.
	switch op {
	case "==":
		return a == b, nil
	case "!=":
		return a != b, nil
	default:
		return false, fmt.Errorf("ver: operator %q requires version-comparable values, got %q and %q", op, a, b)
	}
}

func applyOp(c int, op string) (bool, error) {
	switch op {
	case "==":
		return c == 0, nil
	case "!=":
		return c != 0, nil
	case "<":
		return c < 0, nil
	case "<=":
		return c <= 0, nil
	case ">":
		return c > 0, nil
	case ">=":
		return c >= 0, nil
	default:
		return false, fmt.Errorf("ver: unknown operator %q", op)
	}
}
