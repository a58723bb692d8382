// Package parse turns loaded content into the build's syntax tree
// representation, dispatched by content kind. The scanner is deliberately
// shallow: it recognizes import forms and stylesheet references without
// implementing a full grammar, which is all the graph builder needs from a
// tree. A real syntax frontend can replace it behind the same Parse
// signature.
package parse
