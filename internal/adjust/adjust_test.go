package adjust

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmfcore/tmtmeta/internal/dimension"
	"github.com/fmfcore/tmtmeta/internal/metanode"
)

func TestApply_S1Adjust(t *testing.T) {
	ctx := dimension.New(map[string]string{"distro": "fedora-32"})
	node := metanode.Node{
		"enabled": true,
		"adjust": []interface{}{
			map[string]interface{}{
				"when":    "distro < fedora-33",
				"enabled": false,
				"because": "x",
			},
		},
	}

	out, err := Apply(node, ctx)
	require.NoError(t, err)
	assert.Equal(t, false, out["enabled"])
	_, hasAdjust := out["adjust"]
	assert.False(t, hasAdjust, "adjust key must be consumed")
}

func TestApply_NoMatch(t *testing.T) {
	ctx := dimension.New(map[string]string{"distro": "fedora-40"})
	node := metanode.Node{
		"enabled": true,
		"adjust": []interface{}{
			map[string]interface{}{"when": "distro < fedora-33", "enabled": false},
		},
	}

	out, err := Apply(node, ctx)
	require.NoError(t, err)
	assert.Equal(t, true, out["enabled"])
}

func TestApply_ContinueFalseStopsRemainingRules(t *testing.T) {
	ctx := dimension.New(map[string]string{"arch": "x86_64"})
	node := metanode.Node{
		"adjust": []interface{}{
			map[string]interface{}{"when": "arch == x86_64", "tag": "first", "continue": false},
			map[string]interface{}{"when": "arch == x86_64", "tag": "second"},
		},
	}

	out, err := Apply(node, ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", out["tag"])
}

func TestApply_MergeMarkerAppendsList(t *testing.T) {
	ctx := dimension.New(map[string]string{"arch": "x86_64"})
	node := metanode.Node{
		"tag": []interface{}{"base"},
		"adjust": []interface{}{
			map[string]interface{}{"when": "arch == x86_64", "tag+": []interface{}{"extra"}},
		},
	}

	out, err := Apply(node, ctx)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"base", "extra"}, out["tag"])
}

func TestApply_IsDefined(t *testing.T) {
	ctx := dimension.New(map[string]string{"distro": "fedora-40"})
	node := metanode.Node{
		"adjust": []interface{}{
			map[string]interface{}{"when": "component is not defined", "enabled": false},
		},
	}

	out, err := Apply(node, ctx)
	require.NoError(t, err)
	assert.Equal(t, false, out["enabled"])
}

func TestApply_MalformedWhenIsFatal(t *testing.T) {
	ctx := dimension.New(map[string]string{"distro": "fedora-40"})
	node := metanode.Node{
		"adjust": []interface{}{
			map[string]interface{}{"when": "distro ===", "enabled": false},
		},
	}

	_, err := Apply(node, ctx)
	require.Error(t, err)
}

func TestApply_AnyMatchAcrossMultipleValues(t *testing.T) {
	ctx := dimension.Context{"arch": {"x86_64", "aarch64"}}
	node := metanode.Node{
		"adjust": []interface{}{
			map[string]interface{}{"when": "arch == aarch64", "enabled": false},
		},
	}

	out, err := Apply(node, ctx)
	require.NoError(t, err)
	assert.Equal(t, false, out["enabled"])
}

func TestApply_Idempotent_WithoutAdjust(t *testing.T) {
	ctx := dimension.New(map[string]string{"distro": "fedora-40"})
	node := metanode.Node{"enabled": true}

	first, err := Apply(node, ctx)
	require.NoError(t, err)
	second, err := Apply(first, ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
