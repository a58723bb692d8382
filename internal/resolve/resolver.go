// Package resolve maps raw import specifiers to build targets: either an
// absolute path on disk (or a virtual helper path) or an external runtime
// binding. A Resolver is immutable after construction and safe for
// concurrent use by every pipeline execution of a build.
package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/loom/internal/config"
	"github.com/vk/loom/internal/load"
)

// ErrResolve marks a specifier that maps to neither a path nor an external
// binding.
var ErrResolve = errors.New("unable to resolve")

// probeExts is the extension search order for extensionless specifiers.
var probeExts = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs", ".css"}

// indexFiles is the directory fallback search order.
var indexFiles = []string{"index.ts", "index.tsx", "index.js", "index.jsx"}

// helperSpecifierPrefix is the specifier namespace the transform stage uses
// for injected runtime helpers.
const helperSpecifierPrefix = "@loom/helpers/"

// Resolution is the outcome for one specifier. Exactly one of the two views
// applies: an external resolution carries a binding, everything else is a
// plain path.
type Resolution struct {
	// Path is the resolved absolute target path, or the raw specifier for
	// an external resolution.
	Path string
	// External is the runtime global binding name, empty for non-externals.
	External string
}

// Resolver resolves specifiers relative to a project root, applying the
// configured aliases and externals table.
type Resolver struct {
	root      string
	alias     map[string]string
	externals map[string]string
}

// New builds a resolver for the given project root and configuration.
func New(root string, cfg *config.Config) *Resolver {
	return &Resolver{
		root:      root,
		alias:     cfg.Resolve.Alias,
		externals: cfg.Externals,
	}
}

// Resolve maps one raw specifier, as written in the module at importerPath,
// to its resolution. Resolution failure is an error, never a skip.
func (r *Resolver) Resolve(importerPath, specifier string) (Resolution, error) {
	if binding, ok := r.externals[specifier]; ok {
		return Resolution{Path: specifier, External: binding}, nil
	}

	if name, ok := strings.CutPrefix(specifier, helperSpecifierPrefix); ok {
		return Resolution{Path: load.HelperPathPrefix + name + ".js"}, nil
	}

	target := r.applyAlias(specifier)
	if !filepath.IsAbs(target) {
		// Relative specifiers resolve against the importer's directory.
		// Bare specifiers get the same treatment: stylesheets reference
		// sibling files without a leading ./ (url(logo.png)), and a bare
		// script specifier that is neither an external nor an alias has no
		// other location to come from.
		target = filepath.Join(filepath.Dir(importerPath), target)
	}

	resolved, ok := probe(target)
	if !ok {
		return Resolution{}, fmt.Errorf("%w %q imported from %s", ErrResolve, specifier, importerPath)
	}
	return Resolution{Path: resolved}, nil
}

// applyAlias rewrites the longest matching alias prefix. Alias values are
// taken relative to the project root unless absolute.
func (r *Resolver) applyAlias(specifier string) string {
	best := ""
	for prefix := range r.alias {
		if len(prefix) <= len(best) {
			continue
		}
		if specifier == prefix || strings.HasPrefix(specifier, prefix+"/") {
			best = prefix
		}
	}
	if best == "" {
		return specifier
	}

	replacement := r.alias[best]
	if !filepath.IsAbs(replacement) {
		replacement = filepath.Join(r.root, replacement)
	}
	return replacement + specifier[len(best):]
}

// probe locates the file a path refers to: the exact file, the path with a
// known extension appended, or an index file inside a directory.
func probe(path string) (string, bool) {
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return path, true
		}
		for _, index := range indexFiles {
			candidate := filepath.Join(path, index)
			if isFile(candidate) {
				return candidate, true
			}
		}
		return "", false
	}

	for _, ext := range probeExts {
		candidate := path + ext
		if isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
