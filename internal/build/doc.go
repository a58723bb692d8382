// Package build is the concurrent module-graph construction engine.
//
// A GraphBuilder drives per-task build pipelines in parallel while keeping
// graph mutation strictly single-writer: spawned pipeline executions
// communicate exclusively over a completion channel, and the coordinator
// loop integrates each result, inserts placeholder nodes for newly
// discovered dependency targets, and enqueues follow-up tasks. The
// check-then-insert on the target identifier happens only inside the
// coordinator, which is what guarantees every physical module is built
// exactly once no matter how many importers discover it concurrently.
package build
