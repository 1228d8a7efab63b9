// Package classify maps source files onto build units.
//
// The source convention stores all unit metadata in the path itself: the
// top-level tree a file lives under determines whether it is an interface
// unit or an implementation unit, and an optional `.linux`, `.windows`, or
// `.mac` suffix on the (otherwise extensionless) file name restricts it to
// one build target. A file with any other dotted suffix is ambiguous and is
// reported as a classification error.
package classify
