package hardware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_MultiVariantOr(t *testing.T) {
	// S2: {or: [{memory: ">= 4 GB"}, {memory: "< 4 GB"}]}
	doc := map[string]interface{}{
		"or": []interface{}{
			map[string]interface{}{"memory": ">= 4 GB"},
			map[string]interface{}{"memory": "< 4 GB"},
		},
	}
	tree, err := Parse(doc)
	require.NoError(t, err)

	assert.Equal(t, Yes, Satisfies(tree, map[string]interface{}{"memory": float64(2147483648)}))
	assert.Equal(t, Unknown, Satisfies(tree, map[string]interface{}{}))
}

func TestSatisfies_UnitEquivalence(t *testing.T) {
	// S3: memory: '8 GB' == memory: '= 8 GB' == memory: '= 8000000000 B'
	a, err := Parse(map[string]interface{}{"memory": "8 GB"})
	require.NoError(t, err)
	b, err := Parse(map[string]interface{}{"memory": "= 8 GB"})
	require.NoError(t, err)
	c, err := Parse(map[string]interface{}{"memory": "= 8000000000 B"})
	require.NoError(t, err)

	h := map[string]interface{}{"memory": float64(8000000000)}
	assert.Equal(t, Yes, Satisfies(a, h))
	assert.Equal(t, Yes, Satisfies(b, h))
	assert.Equal(t, Yes, Satisfies(c, h))
}

func TestMixingLeafAndCompositeIsFatal(t *testing.T) {
	doc := map[string]interface{}{
		"memory": ">= 4 GB",
		"and":    []interface{}{},
	}
	_, err := Parse(doc)
	require.Error(t, err)
}

func TestUnsupportedOperatorIsFatal(t *testing.T) {
	_, err := Parse(map[string]interface{}{"virtualization.is-virtualized": "> true"})
	require.Error(t, err)
}

func TestUnknownLeafIsOpaqueAndUnknown(t *testing.T) {
	tree, err := Parse(map[string]interface{}{"gpu.vendor": "= nvidia"})
	require.NoError(t, err)
	assert.Equal(t, Unknown, Satisfies(tree, map[string]interface{}{"gpu.vendor": "nvidia"}))
}

func TestSimplify_SingletonAndReducesToChild(t *testing.T) {
	tree := AndNode{Children: []Tree{LeafNode{Path: "arch", Op: "=", RHS: "x86_64", Kind: KindString}}}
	simplified := Simplify(tree)
	_, isLeaf := simplified.(LeafNode)
	assert.True(t, isLeaf)
}

func TestSimplify_FlattensNestedSameOperator(t *testing.T) {
	inner := AndNode{Children: []Tree{
		LeafNode{Path: "arch", Op: "=", RHS: "x86_64", Kind: KindString},
		LeafNode{Path: "memory", Op: ">=", RHS: "4 GB", Kind: KindNumeric},
	}}
	outer := AndNode{Children: []Tree{inner, LeafNode{Path: "hostname", Op: "~", RHS: "web", Kind: KindString}}}

	simplified := Simplify(outer).(AndNode)
	assert.Len(t, simplified.Children, 3)
}

func TestSimplify_EmptyAndOrAreUnchanged(t *testing.T) {
	assert.Equal(t, Yes, Satisfies(Simplify(AndNode{}), map[string]interface{}{}))
	assert.Equal(t, No, Satisfies(Simplify(OrNode{}), map[string]interface{}{}))
}

func TestSimplificationPreservesSatisfies(t *testing.T) {
	// Spec §8 property 4: satisfies(simplify(T), H) == satisfies(T, H).
	tree := AndNode{Children: []Tree{
		AndNode{Children: []Tree{LeafNode{Path: "arch", Op: "=", RHS: "x86_64", Kind: KindString}}},
		OrNode{Children: []Tree{LeafNode{Path: "memory", Op: ">=", RHS: "4 GB", Kind: KindNumeric}}},
	}}
	h := map[string]interface{}{"arch": "x86_64", "memory": float64(8000000000)}

	before := Satisfies(tree, h)
	after := Satisfies(Simplify(tree), h)
	assert.Equal(t, before, after)
}

func TestRoundTrip_CanonicalFormIsFixedPoint(t *testing.T) {
	tree, err := Parse(map[string]interface{}{"memory": ">= 4 GB"})
	require.NoError(t, err)

	once, err := Serialize(tree)
	require.NoError(t, err)

	reparsed, err := ParseDocument(once)
	require.NoError(t, err)

	twice, err := Serialize(reparsed)
	require.NoError(t, err)

	assert.Equal(t, string(once), string(twice))
}

func TestParseLeaves_ImplicitAnd(t *testing.T) {
	tree, err := Parse(map[string]interface{}{
		"arch":   "= x86_64",
		"memory": ">= 4 GB",
	})
	require.NoError(t, err)
	and, ok := tree.(AndNode)
	require.True(t, ok)
	assert.Len(t, and.Children, 2)
}
