package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/fmfcore/tmtmeta/internal/schema"
)

// PluginOverride is one PLUGIN_<STEP>_<PLUGIN>_<OPTION> environment
// variable, decoded into its three name components and value.
type PluginOverride struct {
	Step   string
	Plugin string
	Option string
	Value  string
}

// PluginOverridesFromEnv scans the process environment for
// PLUGIN_<STEP>_<PLUGIN>_<OPTION> variables (spec §6). Names are split on
// "_" into at most four segments, so step and plugin names must not
// contain underscores; any further underscores stay in the option name.
func PluginOverridesFromEnv() []PluginOverride {
	var out []PluginOverride
	for _, kv := range os.Environ() {
		key, value, found := strings.Cut(kv, "=")
		if !found || !strings.HasPrefix(key, "PLUGIN_") {
			continue
		}
		segs := strings.SplitN(key, "_", 4)
		if len(segs) != 4 {
			continue
		}
		out = append(out, PluginOverride{Step: segs[1], Plugin: segs[2], Option: segs[3], Value: value})
	}
	return out
}

// Resolve picks the effective value for one plugin option under the
// precedence spec §6 defines: CLI > env > fmf > built-in default. The
// environment tier is tagged schema.SourceCLI, since the Test object's
// source-tag vocabulary (spec §3) has no dedicated "env" tag and an
// environment override sits at the same effective precedence as an
// explicit CLI flag from the normalizer's point of view.
func Resolve(step, plugin, option string, cliValue, fmfValue *string, builtinDefault string) (string, schema.SourceTag) {
	if cliValue != nil {
		return *cliValue, schema.SourceCLI
	}
	envKey := fmt.Sprintf("PLUGIN_%s_%s_%s", strings.ToUpper(step), strings.ToUpper(plugin), strings.ToUpper(option))
	if v, ok := os.LookupEnv(envKey); ok {
		return v, schema.SourceCLI
	}
	if fmfValue != nil {
		return *fmfValue, schema.SourceFMF
	}
	return builtinDefault, schema.SourceDefault
}
