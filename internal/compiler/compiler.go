// Package compiler assembles the shared build context and runs one build
// invocation: entry seeding, concurrent graph construction, and hand-off of
// the quiescent module graph to downstream consumers.
package compiler

import (
	"context"
	"time"

	"github.com/vk/loom/internal/build"
	"github.com/vk/loom/internal/config"
	"github.com/vk/loom/internal/ctxlog"
	"github.com/vk/loom/internal/load"
	"github.com/vk/loom/internal/modulegraph"
	"github.com/vk/loom/internal/resolve"
)

// Context is the immutable shared state of one build. The graph is the only
// mutable member and is mutated exclusively by the build coordinator.
type Context struct {
	Root     string
	Config   *config.Config
	Graph    *modulegraph.Graph
	Resolver *resolve.Resolver
	Loader   *load.Chain
}

// Compiler runs build invocations for one project.
type Compiler struct {
	context    *Context
	maxWorkers int
}

// New creates a compiler for the project at root. maxWorkers caps concurrent
// pipeline executions; 0 means unbounded.
func New(root string, cfg *config.Config, maxWorkers int) *Compiler {
	return &Compiler{
		context: &Context{
			Root:     root,
			Config:   cfg,
			Graph:    modulegraph.New(),
			Resolver: resolve.New(root, cfg),
			Loader:   load.DefaultChain(),
		},
		maxWorkers: maxWorkers,
	}
}

// Context returns the build context.
func (c *Compiler) Context() *Context { return c.context }

// Graph returns the module graph. It is complete and quiescent only after a
// successful Build.
func (c *Compiler) Graph() *modulegraph.Graph { return c.context.Graph }

// Build constructs the module graph from the configured entries.
func (c *Compiler) Build(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build started.", "root", c.context.Root)
	start := time.Now()

	builder := build.NewGraphBuilder(
		c.context.Graph,
		c.context.Resolver,
		c.context.Loader,
		c.context.Root,
		c.context.Config,
		c.maxWorkers,
	)
	if err := builder.Seed(ctx); err != nil {
		return err
	}
	if err := builder.Run(ctx); err != nil {
		return err
	}

	logger.Debug("Build finished.", "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}
