// Package modulegraph stores the directed dependency graph produced by a
// build: modules as vertices, import relationships as edges.
//
// The store is guarded by a single read/write lock. During a build it has
// exactly one writer, the build coordinator, which performs every node
// insertion, info attachment, and edge insertion inside its integration
// step. Pipeline executions never touch the graph. After the coordinator
// reaches quiescence the graph is read-only and handed to downstream
// consumers.
package modulegraph
