package unitname

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex validates a single namespace segment, e.g. `core` or `box2`.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Name is the namespace-qualified identifier of a logical unit.
// The zero value is invalid; construct one via Parse or FromSegments.
type Name struct {
	segments []string
}

// Parse creates a Name by parsing its canonical dot-separated representation.
func Parse(raw string) (Name, error) {
	if raw == "" {
		return Name{}, fmt.Errorf("logical name cannot be empty")
	}

	segments := strings.Split(raw, ".")
	for _, segment := range segments {
		if segment == "" {
			return Name{}, fmt.Errorf("logical name %q contains an empty segment", raw)
		}
		if !segmentRegex.MatchString(segment) {
			return Name{}, fmt.Errorf("invalid segment %q in logical name %q", segment, raw)
		}
	}

	return Name{segments: segments}, nil
}

// FromSegments creates a Name from already-split namespace segments.
// It applies the same validation as Parse.
func FromSegments(segments ...string) (Name, error) {
	return Parse(strings.Join(segments, "."))
}

// String serializes the Name into its canonical dot-separated representation.
func (n Name) String() string {
	return strings.Join(n.segments, ".")
}

// IsZero reports whether the Name is the invalid zero value.
func (n Name) IsZero() bool {
	return len(n.segments) == 0
}

// Equal reports whether two names identify the same logical unit.
func (n Name) Equal(other Name) bool {
	if len(n.segments) != len(other.segments) {
		return false
	}
	for i := range n.segments {
		if n.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}

// Less orders names lexicographically by their canonical representation.
// It is the tie-break used for deterministic stage ordering.
func (n Name) Less(other Name) bool {
	return n.String() < other.String()
}
