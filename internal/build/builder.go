package build

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/loom/internal/config"
	"github.com/vk/loom/internal/ctxlog"
	"github.com/vk/loom/internal/load"
	"github.com/vk/loom/internal/module"
	"github.com/vk/loom/internal/modulegraph"
	"github.com/vk/loom/internal/resolve"
)

// GraphBuilder owns the module graph for the duration of one build and
// turns the seeded entry set into a terminated, deduplicated, fully-linked
// graph. Not safe for reuse: build one graph per instance.
type GraphBuilder struct {
	graph    *modulegraph.Graph
	resolver *resolve.Resolver
	loader   *load.Chain
	root     string
	cfg      *config.Config

	// maxWorkers caps concurrent pipeline executions; 0 means unbounded.
	maxWorkers int

	// queue and entryPending are coordinator-owned; spawned pipelines never
	// touch them.
	queue        []Task
	entryPending map[module.ID]struct{}
}

// NewGraphBuilder wires a builder over the shared, read-only collaborators.
func NewGraphBuilder(g *modulegraph.Graph, resolver *resolve.Resolver, loader *load.Chain, root string, cfg *config.Config, maxWorkers int) *GraphBuilder {
	return &GraphBuilder{
		graph:        g,
		resolver:     resolver,
		loader:       loader,
		root:         root,
		cfg:          cfg,
		maxWorkers:   maxWorkers,
		entryPending: make(map[module.ID]struct{}),
	}
}

// Seed enqueues one entry task per configured entry path, falling back to
// the conventional entry search. Fails with ErrEntryNotFound when neither
// yields an entry.
func (b *GraphBuilder) Seed(ctx context.Context) error {
	entries, err := Entries(b.root, b.cfg)
	if err != nil {
		return err
	}

	logger := ctxlog.FromContext(ctx)
	for _, path := range entries {
		id := module.NewID(path)
		if _, dup := b.entryPending[id]; dup {
			// Two entry names pointing at the same file still build it once.
			continue
		}
		logger.Debug("Seeding entry task.", "path", path)
		b.queue = append(b.queue, Task{Path: path, IsEntry: true})
		b.entryPending[id] = struct{}{}
	}
	return nil
}

// Run drives the build loop to quiescence: no task queued, no task in
// flight, every dependency edge target present as a graph node. Any pipeline
// failure terminates the whole build with the importer chain attached; there
// is no partial-graph success.
func (b *GraphBuilder) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan result)
	var sem chan struct{}
	if b.maxWorkers > 0 {
		sem = make(chan struct{}, b.maxWorkers)
	}

	inFlight := 0
	built := 0
	var integration time.Duration

	for {
		// Drain the queue: all discovered work becomes runnable immediately.
		for len(b.queue) > 0 {
			task := b.queue[0]
			b.queue = b.queue[1:]
			inFlight++
			go b.runTask(runCtx, task, results, sem)
		}

		// Fixpoint: nothing queued, nothing running.
		if inFlight == 0 {
			break
		}

		var res result
		select {
		case res = <-results:
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrCanceled, ctx.Err())
		}
		inFlight--

		if res.err != nil {
			if res.task.From != "" {
				return fmt.Errorf("build %s (imported from %s): %w", res.task.Path, res.task.From, res.err)
			}
			return fmt.Errorf("build %s: %w", res.task.Path, res.err)
		}

		t := time.Now()
		if err := b.integrate(ctx, res); err != nil {
			return err
		}
		integration += time.Since(t)
		built++
	}

	logger.Info("🕸️ Module graph complete.",
		"modules", b.graph.ModuleCount(),
		"built", built,
		"elapsed", time.Since(start).Round(time.Millisecond),
		"integration", integration.Round(time.Microsecond),
	)
	return nil
}

// runTask executes one pipeline and reports its outcome. It always sends a
// result (or observes cancellation), so the coordinator's in-flight counter
// can never stall on a failed task.
func (b *GraphBuilder) runTask(ctx context.Context, task Task, results chan<- result, sem chan struct{}) {
	if sem != nil {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			return
		}
		defer func() { <-sem }()
	}

	mod, deps, err := b.buildModule(ctx, task)
	select {
	case results <- result{mod: mod, deps: deps, task: task, err: err}:
	case <-ctx.Done():
	}
}

// integrate folds one pipeline result into the graph. It runs only on the
// coordinator goroutine: the existence check and placeholder insertion for
// each discovered target must be atomic with respect to task creation, and
// keeping them here is what provides that atomicity.
func (b *GraphBuilder) integrate(ctx context.Context, res result) error {
	logger := ctxlog.FromContext(ctx)
	id := res.mod.ID()

	if res.task.IsEntry {
		// Entries have no placeholder phase unless a dependency discovered
		// them first, in which case AddModule upgrades the placeholder.
		delete(b.entryPending, id)
		if err := b.graph.AddModule(res.mod); err != nil {
			return err
		}
	} else {
		if err := b.graph.AttachInfo(id, res.mod.Info()); err != nil {
			return err
		}
	}

	for _, dep := range res.deps {
		depID := module.NewID(dep.Path)
		if dep.External != "" {
			depID = module.ExternalID(dep.Path)
		}

		if !b.graph.HasModule(depID) {
			if dep.External != "" {
				logger.Debug("Synthesizing external module.", "id", depID, "binding", dep.External)
				if err := b.graph.AddModule(module.NewExternal(depID, dep.Path, dep.External)); err != nil {
					return err
				}
			} else {
				// Reserve the identifier the moment it is first discovered,
				// before any task for it exists. Waiting until the target's
				// own build completed would let every concurrent importer
				// enqueue its own copy of the task.
				if err := b.graph.AddModule(module.NewPlaceholder(depID)); err != nil {
					return err
				}
				if _, pending := b.entryPending[depID]; !pending {
					logger.Debug("Discovered module.", "id", depID, "from", id)
					b.queue = append(b.queue, Task{Path: dep.Path, From: res.task.Path})
				}
			}
		}

		if err := b.graph.AddDependency(id, depID, dep.Dep); err != nil {
			return err
		}
	}
	return nil
}
