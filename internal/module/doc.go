// Package module defines the data model shared by the whole build: module
// identifiers, graph nodes, dependency edge payloads, and the lightweight
// syntax tree representation produced by the parse stage.
package module
