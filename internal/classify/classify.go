package classify

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/towerstrike/synthesis.game/internal/unitname"
)

// Role identifies which kind of source unit a file represents.
type Role int

const (
	// RoleInterface marks a module interface unit.
	RoleInterface Role = iota
	// RoleImplementation marks a module implementation unit.
	RoleImplementation
)

// String returns the human-readable role name.
func (r Role) String() string {
	switch r {
	case RoleInterface:
		return "interface"
	case RoleImplementation:
		return "implementation"
	default:
		return "unknown"
	}
}

// Platform identifies which build target a unit applies to.
type Platform int

const (
	// PlatformGeneric marks a unit that applies to every build target.
	PlatformGeneric Platform = iota
	// PlatformLinux marks a unit that only applies to linux builds.
	PlatformLinux
	// PlatformWindows marks a unit that only applies to windows builds.
	PlatformWindows
	// PlatformMac marks a unit that only applies to mac builds.
	PlatformMac
)

// String returns the canonical platform tag.
func (p Platform) String() string {
	switch p {
	case PlatformGeneric:
		return "generic"
	case PlatformLinux:
		return "linux"
	case PlatformWindows:
		return "windows"
	case PlatformMac:
		return "mac"
	default:
		return "unknown"
	}
}

// ParsePlatform converts a platform tag into a Platform value.
func ParsePlatform(tag string) (Platform, error) {
	switch strings.ToLower(tag) {
	case "generic":
		return PlatformGeneric, nil
	case "linux":
		return PlatformLinux, nil
	case "windows":
		return PlatformWindows, nil
	case "mac":
		return PlatformMac, nil
	default:
		return PlatformGeneric, fmt.Errorf("unknown platform %q: must be one of 'generic', 'linux', 'windows', or 'mac'", tag)
	}
}

// platformSuffixes maps a recognized file name suffix to its platform tag.
var platformSuffixes = map[string]Platform{
	"linux":   PlatformLinux,
	"windows": PlatformWindows,
	"mac":     PlatformMac,
}

// Unit is a single compilable source artifact for a logical module.
type Unit struct {
	// Name is the logical identifier the unit is built under.
	Name unitname.Name
	// Role distinguishes interface units from implementation units.
	Role Role
	// Platform is the build target the unit applies to.
	Platform Platform
	// Path is the unit's file path relative to the source tree root.
	Path string
}

// AmbiguousClassificationError reports a file whose suffix is present but
// not a recognized platform tag. Such a file cannot be placed in the graph.
type AmbiguousClassificationError struct {
	// Path is the offending file, relative to the source tree root.
	Path string
	// Suffix is the unrecognized suffix that caused the ambiguity.
	Suffix string
	// Name is the logical name the file would have resolved to had its
	// suffix been recognized. It is the zero Name when no candidate can be
	// derived. The graph builder uses it to upgrade the ambiguity to a
	// fatal error when another unit depends on that name.
	Name unitname.Name
}

// Error implements the error interface.
func (e *AmbiguousClassificationError) Error() string {
	return fmt.Sprintf("ambiguous classification for %q: unrecognized suffix %q (expected 'linux', 'windows', or 'mac')", e.Path, e.Suffix)
}

// Classifier derives each file's role, platform, and logical name from its
// location and suffix. The mapping is centralized here so the graph and
// scheduler never depend on file-layout conventions.
type Classifier struct {
	interfaceRoots      []string
	implementationRoots []string
}

// New creates a Classifier for the given role root directories. Roots are
// paths relative to the source tree root, e.g. "module" and "src".
func New(interfaceRoots, implementationRoots []string) *Classifier {
	return &Classifier{
		interfaceRoots:      cleanRoots(interfaceRoots),
		implementationRoots: cleanRoots(implementationRoots),
	}
}

func cleanRoots(roots []string) []string {
	out := make([]string, 0, len(roots))
	for _, r := range roots {
		out = append(out, filepath.Clean(r))
	}
	return out
}

// Classify inspects a file path relative to the source tree root and returns
// the Unit it represents. It returns (nil, nil) for files outside every
// configured root tree; those are not units and are ignored. It returns an
// AmbiguousClassificationError for files carrying an unrecognized suffix.
func (c *Classifier) Classify(relPath string) (*Unit, error) {
	relPath = filepath.ToSlash(filepath.Clean(relPath))

	role, inRoot, ok := c.roleFor(relPath)
	if !ok {
		return nil, nil
	}

	base := relPath[len(inRoot)+1:]
	dir, file := "", base
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		dir, file = base[:idx], base[idx+1:]
	}

	stem, suffix, platform, recognized := splitSuffix(file)
	if !recognized {
		ambErr := &AmbiguousClassificationError{Path: relPath, Suffix: suffix}
		if candidate, err := deriveName(dir, stem); err == nil {
			ambErr.Name = candidate
		}
		return nil, ambErr
	}

	name, err := deriveName(dir, stem)
	if err != nil {
		return nil, fmt.Errorf("cannot derive logical name for %q: %w", relPath, err)
	}

	return &Unit{
		Name:     name,
		Role:     role,
		Platform: platform,
		Path:     relPath,
	}, nil
}

// deriveName builds the logical name from the unit's directory path within
// its root tree and its suffix-stripped file name.
func deriveName(dir, stem string) (unitname.Name, error) {
	raw := stem
	if dir != "" {
		raw = strings.ReplaceAll(dir, "/", ".") + "." + stem
	}
	return unitname.Parse(raw)
}

// roleFor returns the role of the root tree containing the path, and which
// root that is. A path equal to a root itself is not inside it.
func (c *Classifier) roleFor(relPath string) (Role, string, bool) {
	for _, root := range c.interfaceRoots {
		if strings.HasPrefix(relPath, root+"/") {
			return RoleInterface, root, true
		}
	}
	for _, root := range c.implementationRoots {
		if strings.HasPrefix(relPath, root+"/") {
			return RoleImplementation, root, true
		}
	}
	return 0, "", false
}

// splitSuffix separates an optional platform suffix from a file name.
// Unit file names carry no extension; any dotted suffix must therefore be a
// recognized platform tag, otherwise the file is ambiguous.
func splitSuffix(file string) (stem, suffix string, platform Platform, recognized bool) {
	idx := strings.Index(file, ".")
	if idx < 0 {
		return file, "", PlatformGeneric, true
	}

	stem, suffix = file[:idx], file[idx+1:]
	platform, ok := platformSuffixes[suffix]
	if !ok || stem == "" {
		return stem, suffix, PlatformGeneric, false
	}
	return stem, suffix, platform, true
}
