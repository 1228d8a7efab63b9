package unitname

import "sort"

// Sort orders the given names lexicographically in place.
func Sort(names []Name) {
	sort.Slice(names, func(i, j int) bool { return names[i].Less(names[j]) })
}

// Strings returns the canonical representations of the given names,
// preserving order.
func Strings(names []Name) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n.String()
	}
	return out
}
