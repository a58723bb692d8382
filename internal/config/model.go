package config

// FileName is the configuration file probed at the project root.
const FileName = "loom.hcl"

// Config is the loaded project configuration. It is immutable for the
// duration of a build and safe for concurrent reads.
type Config struct {
	// Entry maps entry names to project-root-relative paths. When empty,
	// the build falls back to a conventional entry file search.
	Entry map[string]string
	// Resolve holds resolver tuning.
	Resolve Resolve
	// Externals maps raw import specifiers to runtime global binding names.
	// A specifier listed here never produces a build task; the graph gets a
	// synthetic wrapper module instead.
	Externals map[string]string
}

// Resolve configures the path resolver.
type Resolve struct {
	// Alias maps specifier prefixes to replacement paths, applied before
	// filesystem probing. Longest prefix wins.
	Alias map[string]string
}

// Default returns an empty configuration with all maps initialized.
func Default() *Config {
	return &Config{
		Entry:     map[string]string{},
		Resolve:   Resolve{Alias: map[string]string{}},
		Externals: map[string]string{},
	}
}
