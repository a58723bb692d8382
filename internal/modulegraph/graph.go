package modulegraph

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	graphlib "github.com/dominikbraun/graph"

	"github.com/vk/loom/internal/module"
)

// Graph is the module dependency graph. All methods are safe for concurrent
// use; mutation is expected from a single writer.
type Graph struct {
	mu sync.RWMutex
	g  graphlib.Graph[module.ID, *module.Module]
}

// Reference is one importer->target relationship with every edge payload
// recorded between the pair, in insertion order.
type Reference struct {
	From module.ID
	To   module.ID
	Deps []module.Dependency
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		g: graphlib.New(func(m *module.Module) module.ID { return m.ID() }, graphlib.Directed()),
	}
}

// AddModule inserts a new node. If a placeholder with the same identifier is
// already present, the built module upgrades it in place: its info is
// attached and its entry flag is merged. Inserting over an already-complete
// node is an error.
func (g *Graph) AddModule(m *module.Module) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	existing, err := g.g.Vertex(m.ID())
	if err == nil {
		if existing.Info() != nil {
			return fmt.Errorf("module %q already built", m.ID())
		}
		if m.IsEntry() {
			existing.MarkEntry()
		}
		return existing.AttachInfo(m.Info())
	}
	if !errors.Is(err, graphlib.ErrVertexNotFound) {
		return err
	}
	return g.g.AddVertex(m)
}

// HasModule reports whether a node with the given identifier exists.
func (g *Graph) HasModule(id module.ID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, err := g.g.Vertex(id)
	return err == nil
}

// Module returns the node with the given identifier.
func (g *Graph) Module(id module.ID) (*module.Module, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	m, err := g.g.Vertex(id)
	if err != nil {
		return nil, false
	}
	return m, true
}

// AttachInfo completes the placeholder with the given identifier. The node
// must exist: it was placeholder-inserted at discovery time.
func (g *Graph) AttachInfo(id module.ID, info *module.Info) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, err := g.g.Vertex(id)
	if err != nil {
		return fmt.Errorf("attach info: module %q not in graph: %w", id, err)
	}
	return m.AttachInfo(info)
}

// AddDependency records one import relationship from importer to target.
// Edges are never deduplicated: repeated references between the same pair
// accumulate their payloads on the edge.
func (g *Graph) AddDependency(from, to module.ID, dep module.Dependency) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	err := g.g.AddEdge(from, to, graphlib.EdgeData([]module.Dependency{dep}))
	if err == nil {
		return nil
	}
	if !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
		return fmt.Errorf("add dependency %s -> %s: %w", from, to, err)
	}

	edge, err := g.g.Edge(from, to)
	if err != nil {
		return fmt.Errorf("add dependency %s -> %s: %w", from, to, err)
	}
	deps, _ := edge.Properties.Data.([]module.Dependency)
	return g.g.UpdateEdge(from, to, graphlib.EdgeData(append(deps, dep)))
}

// ModuleCount returns the number of nodes.
func (g *Graph) ModuleCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, _ := g.g.Order()
	return n
}

// Modules returns every node sorted by identifier.
//
// The listing methods treat store errors as an empty result. AdjacencyMap,
// Edges and Vertex fail only for a vertex missing from the in-memory store,
// and nodes are never removed, so the branches are unreachable in practice.
func (g *Graph) Modules() []*module.Module {
	g.mu.RLock()
	defer g.mu.RUnlock()

	adjacency, err := g.g.AdjacencyMap()
	if err != nil {
		return nil
	}
	mods := make([]*module.Module, 0, len(adjacency))
	for id := range adjacency {
		m, err := g.g.Vertex(id)
		if err != nil {
			continue
		}
		mods = append(mods, m)
	}
	sort.Slice(mods, func(i, j int) bool { return mods[i].ID() < mods[j].ID() })
	return mods
}

// ModuleIDs returns every node identifier sorted.
func (g *Graph) ModuleIDs() []module.ID {
	mods := g.Modules()
	ids := make([]module.ID, len(mods))
	for i, m := range mods {
		ids[i] = m.ID()
	}
	return ids
}

// References returns every importer->target pair sorted by (from, to), each
// carrying its accumulated edge payloads.
func (g *Graph) References() []Reference {
	g.mu.RLock()
	defer g.mu.RUnlock()

	edges, err := g.g.Edges()
	if err != nil {
		return nil
	}
	refs := make([]Reference, 0, len(edges))
	for _, e := range edges {
		deps, _ := e.Properties.Data.([]module.Dependency)
		refs = append(refs, Reference{From: e.Source, To: e.Target, Deps: deps})
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].From != refs[j].From {
			return refs[i].From < refs[j].From
		}
		return refs[i].To < refs[j].To
	})
	return refs
}

// DependenciesOf returns the identifiers of every direct dependency target of
// the given module, sorted.
func (g *Graph) DependenciesOf(id module.ID) []module.ID {
	g.mu.RLock()
	defer g.mu.RUnlock()

	adjacency, err := g.g.AdjacencyMap()
	if err != nil {
		return nil
	}
	targets, ok := adjacency[id]
	if !ok {
		return nil
	}
	ids := make([]module.ID, 0, len(targets))
	for target := range targets {
		ids = append(ids, target)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
