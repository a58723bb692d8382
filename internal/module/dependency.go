package module

// ResolveKind classifies how an importer references a target. The core copies
// it onto the graph edge without interpreting it; downstream chunking decides
// what the distinctions mean.
type ResolveKind int

const (
	// ResolveImport is a static ESM import.
	ResolveImport ResolveKind = iota
	// ResolveDynamicImport is an import() call, a hint for async splitting.
	ResolveDynamicImport
	// ResolveRequire is a CommonJS require call.
	ResolveRequire
	// ResolveExportFrom is a re-export (export ... from).
	ResolveExportFrom
	// ResolveStyleImport is a stylesheet @import.
	ResolveStyleImport
	// ResolveStyleURL is a url() reference inside a stylesheet.
	ResolveStyleURL
	// ResolveHelper is a synthetic dependency on an injected runtime helper.
	ResolveHelper
)

// String returns a stable name for the kind.
func (k ResolveKind) String() string {
	switch k {
	case ResolveImport:
		return "import"
	case ResolveDynamicImport:
		return "dynamic-import"
	case ResolveRequire:
		return "require"
	case ResolveExportFrom:
		return "export-from"
	case ResolveStyleImport:
		return "style-import"
	case ResolveStyleURL:
		return "style-url"
	case ResolveHelper:
		return "helper"
	default:
		return "unknown"
	}
}

// Dependency is the payload of one graph edge: the raw specifier exactly as
// the importer wrote it plus resolution-kind metadata. Edges are never
// deduplicated; two references to the same target via distinct specifiers or
// import forms produce two payloads.
type Dependency struct {
	Specifier string
	Kind      ResolveKind
	// Order is the source-order position of the reference within the
	// importer, counted across original and augmented dependencies.
	Order int
}
