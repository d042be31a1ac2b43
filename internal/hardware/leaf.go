package hardware

import (
	"regexp"
	"sort"
	"strings"

	fmterrors "github.com/fmfcore/tmtmeta/internal/errors"
)

// leafKinds is the known-leaf-families table of spec §4.4. Paths carrying
// a sequence index (disk[0].size) are looked up with the index stripped
// to "[]"; the index itself is preserved in the parsed LeafNode's Path so
// it still matches the hardware description exactly.
var leafKinds = map[string]LeafKind{
	"arch":                           KindString,
	"memory":                         KindNumeric,
	"cpu.family":                     KindNumeric,
	"cpu.model":                      KindNumeric,
	"cpu.model-name":                 KindString,
	"cpu.cores":                      KindNumeric,
	"cpu.threads":                    KindNumeric,
	"cpu.stepping":                   KindNumeric,
	"cpu.flag":                       KindString,
	"virtualization.is-virtualized":  KindBoolean,
	"virtualization.hypervisor":      KindString,
	"tpm.version":                    KindVersion,
	"disk[].size":                    KindNumeric,
	"disk[].model-name":              KindString,
	"network[].type":                 KindString,
	"hostname":                       KindString,
	"compatible.distro":              KindString,
	"boot.method":                    KindString,
}

var indexPattern = regexp.MustCompile(`\[\d+\]`)

// kindOf returns the registered kind for path, or KindOpaque for a path
// outside the known-leaf-families table (spec §4.4: "implementers MUST
// accept unknown leaf paths as opaque constraints").
func kindOf(path string) LeafKind {
	key := indexPattern.ReplaceAllString(path, "[]")
	if k, ok := leafKinds[key]; ok {
		return k
	}
	return KindOpaque
}

// opsByLength lists every recognized operator token, longest first, so
// prefix matching never mistakes "!=" for "!" or ">=" for ">".
var opsByLength = func() []string {
	ops := []string{"=", "!=", ">", ">=", "<", "<=", "~", "!~"}
	sort.Slice(ops, func(i, j int) bool { return len(ops[i]) > len(ops[j]) })
	return ops
}()

// parseOpRHS splits a constraint value of the form "[OP] RHS" into its
// operator (defaulting to "=") and the remainder. RHS is returned
// trimmed of surrounding whitespace.
func parseOpRHS(raw string) (op, rhs string) {
	trimmed := strings.TrimSpace(raw)
	for _, candidate := range opsByLength {
		if strings.HasPrefix(trimmed, candidate) {
			rest := strings.TrimSpace(trimmed[len(candidate):])
			if rest != "" {
				return candidate, rest
			}
		}
	}
	return "=", trimmed
}

// parseLeaf builds a LeafNode for path from its raw constraint-value
// string, rejecting an operator not valid for the leaf's kind.
func parseLeaf(path, raw string) (LeafNode, error) {
	op, rhs := parseOpRHS(raw)
	kind := kindOf(path)
	if !validOp(kind, op) {
		return LeafNode{}, unsupportedOpError(path, op, kind)
	}
	if rhs == "" {
		return LeafNode{}, &fmterrors.SyntaxError{Source: "constraint", Input: path, Detail: "missing right-hand side"}
	}
	return LeafNode{Path: path, Op: op, RHS: rhs, Kind: kind}, nil
}
