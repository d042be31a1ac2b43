// Package config resolves the environment-variable inputs of spec §6:
// POLICY_FILE/POLICY_NAME/POLICY_ROOT locate the policy document;
// PLUGIN_<STEP>_<PLUGIN>_<OPTION> variables set plugin-option defaults
// with CLI > env > fmf > built-in-default precedence, encoded in the
// normal schema.SourceTag the rest of the core already uses.
package config

import "os"

// PolicyLocation is the POLICY_FILE/POLICY_NAME/POLICY_ROOT triple.
type PolicyLocation struct {
	File string
	Name string
	Root string
}

// PolicyLocationFromEnv reads the three policy-location environment
// variables of spec §6.
func PolicyLocationFromEnv() PolicyLocation {
	return PolicyLocation{
		File: os.Getenv("POLICY_FILE"),
		Name: os.Getenv("POLICY_NAME"),
		Root: os.Getenv("POLICY_ROOT"),
	}
}

// Resolve picks the policy reference to pass to policy.Resolve, honoring
// CLI flags over the environment triple; within each of the two sources a
// filepath wins over a symbolic name. The root always comes from the
// environment.
func (l PolicyLocation) Resolve(cliFile, cliName string) (ref string, root string) {
	switch {
	case cliFile != "":
		return cliFile, l.Root
	case cliName != "":
		return cliName, l.Root
	case l.File != "":
		return l.File, l.Root
	case l.Name != "":
		return l.Name, l.Root
	default:
		return "", l.Root
	}
}
