package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/towerstrike/synthesis.game/internal/classify"
	"github.com/towerstrike/synthesis.game/internal/unitname"
)

func name(t *testing.T, raw string) unitname.Name {
	t.Helper()
	n, err := unitname.Parse(raw)
	require.NoError(t, err)
	return n
}

func names(t *testing.T, raws ...string) []unitname.Name {
	t.Helper()
	out := make([]unitname.Name, 0, len(raws))
	for _, raw := range raws {
		out = append(out, name(t, raw))
	}
	return out
}

func unit(t *testing.T, raw string, role classify.Role, platform classify.Platform, path string, deps ...string) SourceUnit {
	t.Helper()
	return SourceUnit{
		Unit: &classify.Unit{Name: name(t, raw), Role: role, Platform: platform, Path: path},
		Deps: names(t, deps...),
	}
}

func TestBuild_MergesInterfaceAndImplementation(t *testing.T) {
	t.Parallel()

	units := []SourceUnit{
		unit(t, "core.type", classify.RoleInterface, classify.PlatformGeneric, "module/core/type"),
		unit(t, "core.box", classify.RoleInterface, classify.PlatformGeneric, "module/core/box", "core.type"),
		unit(t, "core.box", classify.RoleImplementation, classify.PlatformGeneric, "src/core/box", "core.alloc"),
		unit(t, "core.alloc", classify.RoleInterface, classify.PlatformGeneric, "module/core/alloc"),
	}

	g, err := Build(context.Background(), units, nil, classify.PlatformGeneric)
	require.NoError(t, err)
	require.Equal(t, 3, g.Len())

	node, ok := g.Node(name(t, "core.box"))
	require.True(t, ok)
	require.NotNil(t, node.Interface)
	require.NotNil(t, node.Implementation)
	// The implementation's dependencies are superset-merged with the interface's.
	assert.Equal(t, []string{"core.alloc", "core.type"}, unitname.Strings(node.Deps))
	assert.Equal(t, []string{"module/core/box", "src/core/box"}, node.Files())
}

func TestBuild_ImplementationOnlyUnitPermitted(t *testing.T) {
	t.Parallel()

	units := []SourceUnit{
		unit(t, "graphic.metal", classify.RoleImplementation, classify.PlatformGeneric, "src/graphic/metal"),
	}

	g, err := Build(context.Background(), units, nil, classify.PlatformGeneric)
	require.NoError(t, err)

	node, ok := g.Node(name(t, "graphic.metal"))
	require.True(t, ok)
	assert.Nil(t, node.Interface)
	require.NotNil(t, node.Implementation)
}

func TestBuild_PlatformSubstitution(t *testing.T) {
	t.Parallel()

	// `a` has a generic implementation depending on b, and a mac-specific
	// one depending on c. The selected dependency set must follow the target.
	units := []SourceUnit{
		unit(t, "a", classify.RoleImplementation, classify.PlatformGeneric, "src/a", "b"),
		unit(t, "a", classify.RoleImplementation, classify.PlatformMac, "src/a.mac", "c"),
		unit(t, "b", classify.RoleInterface, classify.PlatformGeneric, "module/b"),
		unit(t, "c", classify.RoleInterface, classify.PlatformGeneric, "module/c"),
	}

	gMac, err := Build(context.Background(), units, nil, classify.PlatformMac)
	require.NoError(t, err)
	nodeMac, ok := gMac.Node(name(t, "a"))
	require.True(t, ok)
	assert.Equal(t, "src/a.mac", nodeMac.Implementation.Path)
	assert.Equal(t, []string{"c"}, unitname.Strings(nodeMac.Deps))

	gLinux, err := Build(context.Background(), units, nil, classify.PlatformLinux)
	require.NoError(t, err)
	nodeLinux, ok := gLinux.Node(name(t, "a"))
	require.True(t, ok)
	assert.Equal(t, "src/a", nodeLinux.Implementation.Path)
	assert.Equal(t, []string{"b"}, unitname.Strings(nodeLinux.Deps))
}

func TestBuild_OtherPlatformUnitsDropped(t *testing.T) {
	t.Parallel()

	units := []SourceUnit{
		unit(t, "io.console", classify.RoleImplementation, classify.PlatformWindows, "src/io/console.windows"),
	}

	g, err := Build(context.Background(), units, nil, classify.PlatformMac)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Len())
}

func TestBuild_UnresolvedDependency(t *testing.T) {
	t.Parallel()

	units := []SourceUnit{
		unit(t, "core.box", classify.RoleInterface, classify.PlatformGeneric, "module/core/box", "core.alloc"),
	}

	_, err := Build(context.Background(), units, nil, classify.PlatformGeneric)
	require.Error(t, err)

	var unresolved *UnresolvedDependencyError
	require.True(t, errors.As(err, &unresolved))
	require.Len(t, unresolved.Missing, 1)
	assert.Equal(t, "core.box", unresolved.Missing[0].Consumer.String())
	assert.Equal(t, "core.alloc", unresolved.Missing[0].Missing.String())
	assert.Contains(t, err.Error(), "core.alloc")
	assert.Contains(t, err.Error(), "core.box")
}

func TestBuild_UnresolvedForTargetPlatform(t *testing.T) {
	t.Parallel()

	// io.console exists only for windows with no generic fallback, so a
	// mac build cannot resolve a dependency on it.
	units := []SourceUnit{
		unit(t, "io.console", classify.RoleImplementation, classify.PlatformWindows, "src/io/console.windows"),
		unit(t, "io.print", classify.RoleInterface, classify.PlatformGeneric, "module/io/print", "io.console"),
	}

	_, err := Build(context.Background(), units, nil, classify.PlatformMac)
	var unresolved *UnresolvedDependencyError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, "io.console", unresolved.Missing[0].Missing.String())
}

func TestBuild_DuplicateLogicalName(t *testing.T) {
	t.Parallel()

	units := []SourceUnit{
		unit(t, "core.alloc", classify.RoleImplementation, classify.PlatformGeneric, "src/core/alloc"),
		unit(t, "core.alloc", classify.RoleImplementation, classify.PlatformGeneric, "alt/core/alloc"),
	}

	_, err := Build(context.Background(), units, nil, classify.PlatformGeneric)
	require.Error(t, err)

	var dup *DuplicateLogicalNameError
	require.True(t, errors.As(err, &dup))
	require.Len(t, dup.Duplicates, 1)
	assert.Equal(t, "core.alloc", dup.Duplicates[0].Name.String())
	assert.ElementsMatch(t, []string{"src/core/alloc", "alt/core/alloc"}, dup.Duplicates[0].Paths)
}

func TestBuild_DependencyOnAmbiguousFile(t *testing.T) {
	t.Parallel()

	units := []SourceUnit{
		unit(t, "math.math", classify.RoleInterface, classify.PlatformGeneric, "module/math/math", "math.simd"),
	}
	ambiguous := []*classify.AmbiguousClassificationError{
		{Path: "src/math/simd.neon", Suffix: "neon", Name: name(t, "math.simd")},
	}

	_, err := Build(context.Background(), units, ambiguous, classify.PlatformGeneric)
	require.Error(t, err)

	var ambErr *classify.AmbiguousClassificationError
	require.True(t, errors.As(err, &ambErr))
	assert.Equal(t, "src/math/simd.neon", ambErr.Path)
	assert.Contains(t, err.Error(), "math.math")
}

func TestBuild_AmbiguousFileWithGenericFallbackIsTolerated(t *testing.T) {
	t.Parallel()

	units := []SourceUnit{
		unit(t, "math.simd", classify.RoleImplementation, classify.PlatformGeneric, "src/math/simd"),
		unit(t, "math.math", classify.RoleInterface, classify.PlatformGeneric, "module/math/math", "math.simd"),
	}
	ambiguous := []*classify.AmbiguousClassificationError{
		{Path: "src/math/simd.neon", Suffix: "neon", Name: name(t, "math.simd")},
	}

	g, err := Build(context.Background(), units, ambiguous, classify.PlatformGeneric)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())
}

func TestGraph_Names(t *testing.T) {
	t.Parallel()

	units := []SourceUnit{
		unit(t, "z", classify.RoleInterface, classify.PlatformGeneric, "module/z"),
		unit(t, "a", classify.RoleInterface, classify.PlatformGeneric, "module/a"),
		unit(t, "m", classify.RoleInterface, classify.PlatformGeneric, "module/m"),
	}

	g, err := Build(context.Background(), units, nil, classify.PlatformGeneric)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "m", "z"}, unitname.Strings(g.Names()))
}
