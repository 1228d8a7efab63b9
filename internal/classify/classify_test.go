package classify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier() *Classifier {
	return New([]string{"module"}, []string{"src"})
}

func TestClassify_InterfaceUnit(t *testing.T) {
	t.Parallel()
	c := newTestClassifier()

	unit, err := c.Classify("module/core/variant")
	require.NoError(t, err)
	require.NotNil(t, unit)

	assert.Equal(t, "core.variant", unit.Name.String())
	assert.Equal(t, RoleInterface, unit.Role)
	assert.Equal(t, PlatformGeneric, unit.Platform)
	assert.Equal(t, "module/core/variant", unit.Path)
}

func TestClassify_ImplementationUnit(t *testing.T) {
	t.Parallel()
	c := newTestClassifier()

	unit, err := c.Classify("src/memory/alloc")
	require.NoError(t, err)
	require.NotNil(t, unit)

	assert.Equal(t, "memory.alloc", unit.Name.String())
	assert.Equal(t, RoleImplementation, unit.Role)
	assert.Equal(t, PlatformGeneric, unit.Platform)
}

func TestClassify_PlatformSuffixes(t *testing.T) {
	t.Parallel()
	c := newTestClassifier()

	cases := map[string]Platform{
		"src/io/print.linux":   PlatformLinux,
		"src/io/print.windows": PlatformWindows,
		"src/io/print.mac":     PlatformMac,
	}
	for path, want := range cases {
		unit, err := c.Classify(path)
		require.NoError(t, err, path)
		require.NotNil(t, unit)
		assert.Equal(t, want, unit.Platform, path)
		// The suffix never leaks into the logical name.
		assert.Equal(t, "io.print", unit.Name.String(), path)
	}
}

func TestClassify_DeepNesting(t *testing.T) {
	t.Parallel()
	c := newTestClassifier()

	unit, err := c.Classify("module/io/net/tcp")
	require.NoError(t, err)
	require.NotNil(t, unit)
	assert.Equal(t, "io.net.tcp", unit.Name.String())
}

func TestClassify_OutsideRootsIgnored(t *testing.T) {
	t.Parallel()
	c := newTestClassifier()

	for _, path := range []string{"test/core/variant", "README", "build/stages.mk", "module", "src"} {
		unit, err := c.Classify(path)
		require.NoError(t, err, path)
		assert.Nil(t, unit, "path %q is not a unit", path)
	}
}

func TestClassify_AmbiguousSuffix(t *testing.T) {
	t.Parallel()
	c := newTestClassifier()

	unit, err := c.Classify("src/math/simd.neon")
	require.Error(t, err)
	assert.Nil(t, unit)

	var ambErr *AmbiguousClassificationError
	require.True(t, errors.As(err, &ambErr))
	assert.Equal(t, "src/math/simd.neon", ambErr.Path)
	assert.Equal(t, "neon", ambErr.Suffix)
	assert.Equal(t, "math.simd", ambErr.Name.String())
}

func TestClassify_MultiDotSuffixIsAmbiguous(t *testing.T) {
	t.Parallel()
	c := newTestClassifier()

	_, err := c.Classify("src/math/math.fixed.neon")
	var ambErr *AmbiguousClassificationError
	require.True(t, errors.As(err, &ambErr))
	assert.Equal(t, "fixed.neon", ambErr.Suffix)
	assert.Equal(t, "math.math", ambErr.Name.String())
}

func TestParsePlatform(t *testing.T) {
	t.Parallel()

	for tag, want := range map[string]Platform{
		"generic": PlatformGeneric,
		"linux":   PlatformLinux,
		"windows": PlatformWindows,
		"Mac":     PlatformMac,
	} {
		got, err := ParsePlatform(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, want, got, tag)
	}

	_, err := ParsePlatform("amiga")
	assert.ErrorContains(t, err, "unknown platform")
}

func TestRoleAndPlatformStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "interface", RoleInterface.String())
	assert.Equal(t, "implementation", RoleImplementation.String())
	assert.Equal(t, "generic", PlatformGeneric.String())
	assert.Equal(t, "mac", PlatformMac.String())
}
