// Package graph assembles classified units and their extracted dependency
// sets into the dependency graph the scheduler consumes.
//
// Construction resolves platform substitution for the configured build
// target: a platform-specific unit wins over its generic counterpart for
// the same logical name and role, and units specific to other platforms
// are dropped. Interface and implementation units sharing a logical name
// merge into a single node whose dependency set is the union of both.
//
// Construction is all-or-nothing. Duplicate logical names and unresolved
// dependencies abort it with a typed error; no partial graph is returned.
package graph
