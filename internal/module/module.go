package module

import "fmt"

// ID uniquely identifies a module in the graph. For source modules it is the
// normalized absolute path; for synthetic external modules it is a namespaced
// string derived from the specifier (see ExternalID). Two modules are the
// same graph node iff their IDs are equal.
type ID string

// NewID builds the identifier for a source module at the given resolved path.
func NewID(path string) ID {
	return ID(path)
}

// ExternalID builds the identifier for a synthetic external module. Externals
// never collide with real files because the prefix is not a valid path root.
func ExternalID(path string) ID {
	return ID("external_" + path)
}

// Module is a node in the module graph.
//
// A module starts life either as a placeholder (discovered as someone's
// dependency target, info not yet built) or fully built (entries and
// externals, which skip the placeholder phase). Info is attached at most
// once, by the coordinator, and never replaced within a build.
type Module struct {
	id      ID
	isEntry bool
	info    *Info
}

// Info is the present-state payload of a built module.
type Info struct {
	// Ast is the transformed syntax tree.
	Ast *Ast
	// Path is the source path the module was built from. For externals it is
	// the raw specifier.
	Path string
	// External is the runtime global binding name, set only for synthetic
	// external modules.
	External string
}

// New creates a fully built module node.
func New(id ID, isEntry bool, info *Info) *Module {
	return &Module{id: id, isEntry: isEntry, info: info}
}

// NewPlaceholder creates a node that reserves an identifier before its own
// build completes.
func NewPlaceholder(id ID) *Module {
	return &Module{id: id}
}

// NewExternal synthesizes a complete external module: its tree is a trivial
// wrapper that re-exports the runtime global named by binding. Externals
// never pass through the build pipeline.
func NewExternal(id ID, path, binding string) *Module {
	return &Module{
		id: id,
		info: &Info{
			Ast:      ExternalAst(binding),
			Path:     path,
			External: binding,
		},
	}
}

// ID returns the module's identifier.
func (m *Module) ID() ID { return m.id }

// IsEntry reports whether the module was seeded from the configured entry set.
func (m *Module) IsEntry() bool { return m.isEntry }

// Info returns the built payload, or nil for a placeholder.
func (m *Module) Info() *Info { return m.info }

// IsExternal reports whether the module is a synthetic external.
func (m *Module) IsExternal() bool { return m.info != nil && m.info.External != "" }

// AttachInfo transitions a placeholder to the complete state. It is an error
// to attach info twice: a node is built exactly once per build pass.
func (m *Module) AttachInfo(info *Info) error {
	if m.info != nil {
		return fmt.Errorf("module %q already has info attached", m.id)
	}
	m.info = info
	return nil
}

// MarkEntry flags the module as an entry. Used when an entry module was
// discovered as a dependency before its own seeded build completed.
func (m *Module) MarkEntry() { m.isEntry = true }
