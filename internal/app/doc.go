// Package app encapsulates the application's dependencies, configuration,
// and lifecycle: logger construction, project config loading, running a
// build, and the optional watch loop.
package app
