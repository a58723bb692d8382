// Package analyze extracts dependency lists from syntax trees: the static
// references written in the source, and the synthetic references to runtime
// helpers injected later by the transform stage.
package analyze

import (
	"github.com/vk/loom/internal/module"
)

// Deps statically extracts the raw import/reference specifiers from the
// tree, in source order.
func Deps(ast *module.Ast) []module.Dependency {
	var deps []module.Dependency
	for _, ref := range ast.Refs() {
		deps = append(deps, module.Dependency{
			Specifier: ref.Specifier,
			Kind:      ref.Kind,
			Order:     len(deps),
		})
	}
	return deps
}

// AugmentHelperDeps appends a synthetic dependency for every runtime helper
// referenced by the transformed tree that the static analysis did not
// capture. Helper injection happens after dependency analysis, so skipping
// this step silently drops helper modules from the graph.
func AugmentHelperDeps(deps []module.Dependency, ast *module.Ast) []module.Dependency {
	seen := make(map[string]struct{}, len(deps))
	for _, d := range deps {
		seen[d.Specifier] = struct{}{}
	}
	for _, helper := range ast.Helpers {
		if _, ok := seen[helper]; ok {
			continue
		}
		seen[helper] = struct{}{}
		deps = append(deps, module.Dependency{
			Specifier: helper,
			Kind:      module.ResolveHelper,
			Order:     len(deps),
		})
	}
	return deps
}
