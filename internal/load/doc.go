// Package load obtains raw module content for the build pipeline through an
// ordered plugin chain: the first plugin to claim a path wins, and a path no
// plugin claims is a load failure. Loaded content is cached per build in an
// LRU keyed by path.
package load
