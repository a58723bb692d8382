package build

import (
	"context"

	"github.com/vk/loom/internal/analyze"
	"github.com/vk/loom/internal/ctxlog"
	"github.com/vk/loom/internal/module"
	"github.com/vk/loom/internal/parse"
	"github.com/vk/loom/internal/transform"
)

// resolvedDep is one resolved dependency of a built module: the target it
// binds to plus the original edge payload.
type resolvedDep struct {
	// Path is the resolved absolute target path, or the raw specifier for
	// externals.
	Path string
	// External is the runtime binding name for an external target, else empty.
	External string
	// Dep is the edge payload, preserved per specifier.
	Dep module.Dependency
}

// result is what a pipeline execution sends back to the coordinator. On
// failure only task and err are set: a failed pipeline still reports, so the
// coordinator can terminate instead of waiting forever.
type result struct {
	mod  *module.Module
	deps []resolvedDep
	task Task
	err  error
}

// buildModule runs the full pipeline for one task:
// load -> parse -> analyze -> transform -> augment -> resolve.
// It never touches the module graph.
func (b *GraphBuilder) buildModule(ctx context.Context, task Task) (*module.Module, []resolvedDep, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Pipeline started.", "path", task.Path, "entry", task.IsEntry)

	content, err := b.loader.Load(ctx, task.Path)
	if err != nil {
		return nil, nil, err
	}

	ast, err := parse.Parse(ctx, content, task.Path)
	if err != nil {
		return nil, nil, err
	}

	// Dependency analysis must precede the transform: it captures specifiers
	// as written. Helpers the transform injects afterwards are picked up by
	// the augmentation pass.
	deps := analyze.Deps(ast)

	transform.Transform(ctx, ast)

	deps = analyze.AugmentHelperDeps(deps, ast)

	resolved := make([]resolvedDep, 0, len(deps))
	for _, dep := range deps {
		res, err := b.resolver.Resolve(task.Path, dep.Specifier)
		if err != nil {
			return nil, nil, err
		}
		resolved = append(resolved, resolvedDep{Path: res.Path, External: res.External, Dep: dep})
	}

	mod := module.New(module.NewID(task.Path), task.IsEntry, &module.Info{
		Ast:  ast,
		Path: task.Path,
	})

	logger.Debug("Pipeline finished.", "path", task.Path, "deps", len(resolved))
	return mod, resolved, nil
}
