package policy

import (
	"os"
	"path/filepath"
	"strings"

	fmterrors "github.com/fmfcore/tmtmeta/internal/errors"
)

// Resolve locates a policy document by filepath or symbolic name under
// root (spec §4.3 "Policy resolution"). ref is treated as a filepath when
// it contains a path separator or a recognized extension; otherwise it is
// a dotted symbolic name mapped to "<root>/<name-with-slashes>.yaml".
// When root is non-empty, the resolved path must lie under it.
func Resolve(root, ref string) (string, error) {
	var path string
	if looksLikePath(ref) {
		path = ref
	} else {
		path = filepath.Join(root, strings.ReplaceAll(ref, ".", string(filepath.Separator))+".yaml")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &fmterrors.ResolutionError{Name: ref, Path: path, Detail: err.Error()}
	}

	if root != "" {
		rootAbs, err := filepath.Abs(root)
		if err != nil {
			return "", &fmterrors.ResolutionError{Name: ref, Path: path, Detail: err.Error()}
		}
		rel, err := filepath.Rel(rootAbs, abs)
		if err != nil || strings.HasPrefix(rel, "..") {
			return "", &fmterrors.ResolutionError{Name: ref, Path: path, Detail: "resolved path escapes the configured policy root"}
		}
	}

	if _, err := os.Stat(abs); err != nil {
		return "", &fmterrors.ResolutionError{Name: ref, Path: path, Detail: "not found"}
	}

	return abs, nil
}

func looksLikePath(ref string) bool {
	if strings.ContainsAny(ref, "/\\") {
		return true
	}
	switch filepath.Ext(ref) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
