// Package config loads the project configuration consumed by the build:
// the entry map, resolver aliases, and external bindings. Configuration
// lives in an HCL file at the project root and every part of it is
// optional; a missing file yields a usable default configuration.
package config
