// Package unitname defines the logical name a source unit is built under.
//
// A logical name is a dot-separated namespace path such as "core.variant".
// It identifies a buildable module independently of any filesystem layout,
// so the graph and scheduler never reason about paths directly.
package unitname
