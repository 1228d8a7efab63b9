// Package scheduler partitions the dependency graph into ordered build
// stages.
//
// It peels the graph Kahn-style: every node whose remaining in-degree is
// zero joins the next stage, then its dependents' in-degrees drop. Every
// dependency of a unit in stage k therefore lives in a stage strictly less
// than k, and stage 0 holds exactly the units with no dependencies. Units
// within a stage are ordered by logical name, so an unchanged tree always
// yields a byte-identical plan. If a peeling pass finds no zero in-degree
// node while nodes remain, every remaining node sits on (or behind) a
// cycle and the full implicated set is reported as one fatal error.
package scheduler
