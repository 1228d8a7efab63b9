// Package plan models the staged build order and serializes it for the
// external build backend.
//
// A Plan is immutable once computed: the scheduler produces it, an Emitter
// writes it to exactly one artifact (overwriting any prior one), and the
// backend consumes it. Units within a stage carry no ordering constraint
// between each other and may compile in parallel; stage k+1 must not start
// until every unit in stage k has completed.
package plan
