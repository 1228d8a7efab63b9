// Package extract reads the declared module dependencies of a source unit.
//
// Extraction is intentionally shallow: it scans for declaration-level
// `import name;` statements only and never attempts semantic analysis of
// unit bodies. Header-unit imports (`import <vector>;`, `import "x.h";`)
// and partition imports (`import :part;`) are not module dependencies and
// are skipped by construction.
package extract

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/towerstrike/synthesis.game/internal/classify"
	"github.com/towerstrike/synthesis.game/internal/unitname"
)

// importRegex matches a module import declaration and captures the imported
// logical name. The identifier-first character class keeps header-unit and
// partition imports from matching.
var importRegex = regexp.MustCompile(`(?m)^\s*(?:export\s+)?import\s+([a-zA-Z_][a-zA-Z0-9_.]*)\s*;`)

// moduleRegex matches a module declaration (`module x;` or
// `export module x;`) and captures the declared name.
var moduleRegex = regexp.MustCompile(`(?m)^\s*(?:export\s+)?module\s+([a-zA-Z_][a-zA-Z0-9_.]*)\s*;`)

// Extractor scans unit contents for declared dependencies.
type Extractor struct {
	externals map[string]struct{}
}

// New creates an Extractor. Names listed in externals (e.g. "std") identify
// modules supplied by the toolchain rather than the source tree; imports of
// those names are not dependency edges.
func New(externals []string) *Extractor {
	ext := make(map[string]struct{}, len(externals))
	for _, name := range externals {
		ext[name] = struct{}{}
	}
	return &Extractor{externals: ext}
}

// File reads the unit's file below the given tree root and extracts its
// declared dependencies.
func (e *Extractor) File(root string, unit *classify.Unit) ([]unitname.Name, error) {
	contents, err := os.ReadFile(joinRoot(root, unit.Path))
	if err != nil {
		return nil, err
	}
	return e.Extract(unit, contents)
}

// Extract returns the set of logical names the unit declares as
// dependencies, sorted and with duplicates collapsed. Self-dependencies are
// ignored rather than treated as errors, to tolerate self-referential
// forward declarations. Both the path-derived name and any declared
// `module x;` name count as self.
func (e *Extractor) Extract(unit *classify.Unit, contents []byte) ([]unitname.Name, error) {
	self := map[string]struct{}{unit.Name.String(): {}}
	for _, match := range moduleRegex.FindAllSubmatch(contents, -1) {
		self[string(match[1])] = struct{}{}
	}

	seen := make(map[string]struct{})
	var deps []unitname.Name
	for _, match := range importRegex.FindAllSubmatch(contents, -1) {
		raw := string(match[1])
		if _, ok := self[raw]; ok {
			continue
		}
		if _, ok := e.externals[raw]; ok {
			continue
		}
		if _, ok := seen[raw]; ok {
			continue
		}
		seen[raw] = struct{}{}

		name, err := unitname.Parse(raw)
		if err != nil {
			// Unreachable: the capture group is a strict subset of valid names.
			return nil, err
		}
		deps = append(deps, name)
	}

	unitname.Sort(deps)
	return deps, nil
}

// joinRoot resolves a slash-separated tree-relative path against the tree root.
func joinRoot(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
