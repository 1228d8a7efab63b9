package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/towerstrike/synthesis.game/internal/classify"
	"github.com/towerstrike/synthesis.game/internal/unitname"
)

// Duplicate identifies one logical name claimed by more than one unit of
// the same role and platform.
type Duplicate struct {
	Name     unitname.Name
	Role     classify.Role
	Platform classify.Platform
	Paths    []string
}

// DuplicateLogicalNameError reports units that resolve to the same logical
// build target. The build cannot proceed because the target is ambiguous.
type DuplicateLogicalNameError struct {
	Duplicates []Duplicate
}

// Error implements the error interface.
func (e *DuplicateLogicalNameError) Error() string {
	var sb strings.Builder
	sb.WriteString("duplicate logical name")
	if len(e.Duplicates) > 1 {
		sb.WriteString("s")
	}
	for i, d := range e.Duplicates {
		if i > 0 {
			sb.WriteString(";")
		}
		fmt.Fprintf(&sb, " %q (%s, %s) claimed by %s",
			d.Name.String(), d.Role, d.Platform, strings.Join(d.Paths, ", "))
	}
	return sb.String()
}

// MissingDependency identifies one consumer whose declared dependency
// matched no unit for the build target.
type MissingDependency struct {
	Consumer unitname.Name
	Missing  unitname.Name
	// ConsumerPaths are the files of the consumer, for the diagnostic.
	ConsumerPaths []string
}

// UnresolvedDependencyError reports every declared dependency that resolved
// to no unit after platform substitution. Graph construction aborts; the
// error is never recovered silently.
type UnresolvedDependencyError struct {
	Missing []MissingDependency
}

// Error implements the error interface.
func (e *UnresolvedDependencyError) Error() string {
	var sb strings.Builder
	sb.WriteString("unresolved dependency")
	if len(e.Missing) > 1 {
		sb.WriteString("(s)")
	}
	sb.WriteString(":")
	for _, m := range e.Missing {
		fmt.Fprintf(&sb, " %q required by %q (%s);",
			m.Missing.String(), m.Consumer.String(), strings.Join(m.ConsumerPaths, ", "))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

func sortDuplicates(dups []Duplicate) {
	sort.Slice(dups, func(i, j int) bool {
		if !dups[i].Name.Equal(dups[j].Name) {
			return dups[i].Name.Less(dups[j].Name)
		}
		return dups[i].Role < dups[j].Role
	})
}

func sortMissing(missing []MissingDependency) {
	sort.Slice(missing, func(i, j int) bool {
		if !missing[i].Consumer.Equal(missing[j].Consumer) {
			return missing[i].Consumer.Less(missing[j].Consumer)
		}
		return missing[i].Missing.Less(missing[j].Missing)
	})
}
