package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmfcore/tmtmeta/internal/metanode"
	"github.com/fmfcore/tmtmeta/internal/schema"
)

func TestNormalize_ScalarShorthandExpandsToSequence(t *testing.T) {
	node := metanode.Node{"tag": "fast"}
	test, err := Normalize("/t", node, nil, schema.SourceFMF)
	require.NoError(t, err)
	assert.Equal(t, []string{"fast"}, test.StringSeq("tag"))
}

func TestNormalize_MergeMarkerEquivalence(t *testing.T) {
	// Parent P has tag: [a, b]; child C declares tag+: [c] independent of
	// key ordering in the source map (spec §8 property 2).
	inherited := map[string]interface{}{"tag": []string{"a", "b"}}
	node := metanode.Node{"tag+": []interface{}{"c"}}

	test, err := Normalize("/p/c", node, inherited, schema.SourceFMF)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, test.StringSeq("tag"))

	_, hasMarker := test.Get("tag+")
	assert.False(t, hasMarker)
}

func TestNormalize_EnabledDefaultsTrue(t *testing.T) {
	test, err := Normalize("/t", metanode.Node{}, nil, schema.SourceFMF)
	require.NoError(t, err)
	assert.True(t, test.Enabled())
	assert.Equal(t, schema.SourceDefault, test.SourceOf("enabled"))
}

func TestNormalize_TypeMismatchIsFatal(t *testing.T) {
	node := metanode.Node{"enabled": "yes"}
	_, err := Normalize("/t", node, nil, schema.SourceFMF)
	require.Error(t, err)
}

func TestNormalize_NameMustStartWithSlash(t *testing.T) {
	_, err := Normalize("bad-name", metanode.Node{}, nil, schema.SourceFMF)
	require.Error(t, err)
}

func TestNormalize_UnknownKeysPreserved(t *testing.T) {
	node := metanode.Node{"x-custom": map[string]interface{}{"foo": "bar"}}
	test, err := Normalize("/t", node, nil, schema.SourceFMF)
	require.NoError(t, err)
	v, ok := test.Get("x-custom")
	require.True(t, ok)
	assert.Equal(t, "bar", v.(map[string]interface{})["foo"])
}

func TestNormalize_CheckSeqDefaultShorthand(t *testing.T) {
	node := metanode.Node{"check": map[string]interface{}{"how": "avc", "result": "respect"}}
	test, err := Normalize("/t", node, nil, schema.SourceFMF)
	require.NoError(t, err)
	checks := test.Checks()
	require.Len(t, checks, 1)
	assert.Equal(t, "avc", checks[0].How)
}

func TestNormalize_DurationParsesToSeconds(t *testing.T) {
	node := metanode.Node{"duration": "5m"}
	test, err := Normalize("/t", node, nil, schema.SourceFMF)
	require.NoError(t, err)
	secs, ok := test.Duration()
	require.True(t, ok)
	assert.Equal(t, 300.0, secs)
}
