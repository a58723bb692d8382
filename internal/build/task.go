package build

// Task is the unit of scheduling: one module path to build. Tasks are
// ephemeral and consumed once per enqueue; they are not graph entities.
type Task struct {
	// Path is the resolved absolute path of the module to build.
	Path string
	// IsEntry is true only for tasks seeded from the configured entry set.
	IsEntry bool
	// From is the path of the importer that discovered this module. Empty
	// for entries. Used to report the importer chain on failure.
	From string
}
