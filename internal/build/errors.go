package build

import "errors"

// ErrEntryNotFound is returned by Seed when no entries are configured and no
// conventional entry file exists at the project root.
var ErrEntryNotFound = errors.New("entry not found")

// ErrCanceled is returned by Run when the surrounding context is canceled
// before the graph reaches quiescence.
var ErrCanceled = errors.New("build canceled")
