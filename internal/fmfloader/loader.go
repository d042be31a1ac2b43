// Package fmfloader implements the "Loader" box of spec §2: it walks an
// fmf tree (a directory hierarchy of YAML files) and produces the raw node
// map that feeds the Adjuster. Directory-level "main.fmf" files supply
// attributes inherited by every test beneath them; merge-marker (key+)
// resolution against that inheritance happens here, both for the
// directory chain and for each leaf file against its immediate
// containing directory, per spec §4.2 ("resolved against parent node
// values already loaded"). Each LeafNode also carries its directory's
// resolved attributes separately as Inherited, so internal/normalize can
// resolve any merge marker still present in the node it is given (adjust
// rule payloads resolve their own markers in adjust.Apply).
//
// Walks, decodes, and collects per-file errors without aborting the whole
// load, the same shape internal/config.LoadAndParseYAMLWithConfig uses for
// its own directory scan.
package fmfloader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	fmterrors "github.com/fmfcore/tmtmeta/internal/errors"
	"github.com/fmfcore/tmtmeta/internal/metanode"
)

const mainNodeFileName = "main.fmf"
const fmfExtension = ".fmf"

// LeafNode is one discovered test/plan file, not yet adjusted or
// normalized.
type LeafNode struct {
	// Name is the identifier path derived from the file's location.
	Name string
	// Raw is the file's own content merged with its containing
	// directory's fully resolved attributes (unmarked keys replaced,
	// marked keys resolved via the same merge as directory-to-directory
	// chaining), so a key set only at the directory level is present
	// even when the leaf never redeclares it.
	Raw metanode.Node
	// Inherited holds the immediate containing directory's fully
	// resolved attributes, passed through to normalize.Normalize as the
	// merge-marker resolution base.
	Inherited map[string]interface{}
	// Path is the absolute filesystem path the node was loaded from.
	Path string
}

// Tree is the result of loading an fmf directory.
type Tree struct {
	Leaves []LeafNode
	Errors fmterrors.Collection
}

// Load walks root and returns every discovered leaf node in a
// deterministic (lexically sorted by path) order, per spec §5's ordering
// guarantee that discovery order is preserved downstream.
func Load(root string) (*Tree, error) {
	tree := &Tree{}
	dirNodes := map[string]map[string]interface{}{}

	var dirs []string
	if err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("fmfloader: walking %s: %w", root, err)
	}
	sort.Strings(dirs)

	for _, dir := range dirs {
		parent := dirNodes[filepath.Dir(dir)]
		own, err := loadMainNode(dir)
		if err != nil {
			tree.Errors.Add(dir, err)
			dirNodes[dir] = parent
			continue
		}
		dirNodes[dir] = mergeDirNode(parent, own)
	}

	var files []string
	if err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, fmfExtension) && filepath.Base(path) != mainNodeFileName {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("fmfloader: walking %s: %w", root, err)
	}
	sort.Strings(files)

	for _, file := range files {
		raw, err := decodeFile(file)
		if err != nil {
			tree.Errors.Add(file, err)
			continue
		}

		dir := filepath.Dir(file)
		inherited := dirNodes[dir]
		name := nameFromPath(root, file)

		tree.Leaves = append(tree.Leaves, LeafNode{
			Name:      name,
			Raw:       metanode.Node(mergeDirNode(inherited, raw)),
			Inherited: inherited,
			Path:      file,
		})
	}

	return tree, nil
}

func loadMainNode(dir string) (map[string]interface{}, error) {
	p := filepath.Join(dir, mainNodeFileName)
	if _, err := os.Stat(p); err != nil {
		return map[string]interface{}{}, nil
	}
	return decodeFile(p)
}

func decodeFile(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var out map[string]interface{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, &fmterrors.SyntaxError{Source: "fmf", Input: path, Detail: err.Error()}
	}
	if out == nil {
		out = map[string]interface{}{}
	}
	return out, nil
}

// mergeDirNode resolves own's keys against parent: unmarked keys replace,
// marked keys merge via metanode.Merge and lose their marker. Used both
// for directory-to-directory chaining as the tree is walked and for
// merging a leaf file's own content against its immediate containing
// directory.
func mergeDirNode(parent, own map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(parent)+len(own))
	for k, v := range parent {
		out[k] = v
	}
	for k, v := range own {
		bare, marked := metanode.HasMergeMarker(k)
		if !marked {
			out[bare] = v
			continue
		}
		out[bare] = metanode.Merge(out[bare], v)
	}
	return out
}

// nameFromPath derives a test's identifier path from its file location:
// the directory structure below root, plus the file's base name without
// extension.
func nameFromPath(root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		rel = file
	}
	rel = strings.TrimSuffix(rel, fmfExtension)
	rel = filepath.ToSlash(rel)
	return "/" + strings.TrimPrefix(rel, "/")
}
