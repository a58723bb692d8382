package load

import (
	"errors"
	"fmt"
)

// ErrUnsupportedExtName marks a path whose extension a loader plugin
// explicitly refuses (e.g. a stylesheet preprocessor extension with no
// preprocessor configured).
var ErrUnsupportedExtName = errors.New("unsupported extension")

// ErrNotFound marks a path whose content could not be read, or that no
// plugin in the chain claimed.
var ErrNotFound = errors.New("content not found")

// Error is a load failure tagged with the offending path.
type Error struct {
	Path    string
	ExtName string
	Kind    error // ErrUnsupportedExtName or ErrNotFound
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.ExtName != "" {
		return fmt.Sprintf("load %s: %v: .%s", e.Path, e.Kind, e.ExtName)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Kind)
}

// Unwrap exposes the error kind for errors.Is.
func (e *Error) Unwrap() error { return e.Kind }
