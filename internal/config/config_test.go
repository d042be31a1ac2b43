package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmfcore/tmtmeta/internal/schema"
)

func TestPluginOverridesFromEnv(t *testing.T) {
	require.NoError(t, os.Setenv("PLUGIN_PROVISION_VIRTUAL_IMAGE", "fedora-40"))
	defer os.Unsetenv("PLUGIN_PROVISION_VIRTUAL_IMAGE")

	overrides := PluginOverridesFromEnv()
	var found bool
	for _, o := range overrides {
		if o.Step == "PROVISION" && o.Plugin == "VIRTUAL" && o.Option == "IMAGE" {
			found = true
			assert.Equal(t, "fedora-40", o.Value)
		}
	}
	assert.True(t, found)
}

func TestResolve_Precedence(t *testing.T) {
	require.NoError(t, os.Setenv("PLUGIN_PROVISION_VIRTUAL_IMAGE", "env-value"))
	defer os.Unsetenv("PLUGIN_PROVISION_VIRTUAL_IMAGE")

	cli := "cli-value"
	fmfVal := "fmf-value"

	v, src := Resolve("provision", "virtual", "image", &cli, &fmfVal, "default-value")
	assert.Equal(t, "cli-value", v)
	assert.Equal(t, schema.SourceCLI, src)

	v, src = Resolve("provision", "virtual", "image", nil, &fmfVal, "default-value")
	assert.Equal(t, "env-value", v)
	assert.Equal(t, schema.SourceCLI, src)

	os.Unsetenv("PLUGIN_PROVISION_VIRTUAL_IMAGE")
	v, src = Resolve("provision", "virtual", "image", nil, &fmfVal, "default-value")
	assert.Equal(t, "fmf-value", v)
	assert.Equal(t, schema.SourceFMF, src)

	v, src = Resolve("provision", "virtual", "image", nil, nil, "default-value")
	assert.Equal(t, "default-value", v)
	assert.Equal(t, schema.SourceDefault, src)
}

func TestPolicyLocation_Resolve(t *testing.T) {
	loc := PolicyLocation{File: "env.yaml", Name: "env.name", Root: "/root"}

	ref, root := loc.Resolve("cli.yaml", "")
	assert.Equal(t, "cli.yaml", ref)
	assert.Equal(t, "/root", root)

	ref, _ = loc.Resolve("", "")
	assert.Equal(t, "env.yaml", ref)
}
