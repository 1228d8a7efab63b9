// Package app wires the planner pipeline together: it loads the build
// manifest, owns the application logger, and drives discovery,
// classification, extraction, graph construction, scheduling, and plan
// emission for each invocation.
package app
