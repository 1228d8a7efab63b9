package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/towerstrike/synthesis.game/internal/testutil"
)

// TestPipeline_LinearChain verifies the full scan-classify-extract-schedule
// pipeline over a simple three-unit chain.
func TestPipeline_LinearChain(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"module/x": "export module x;\n",
		"module/y": "export module y;\nimport x;\n",
		"module/z": "export module z;\nimport y;\n",
	}

	// --- Act ---
	result := testutil.RunPlannerTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, [][]string{{"x"}, {"y"}, {"z"}}, testutil.StageNames(result.Plan))

	want := "# Generated build stages for target generic. Do not edit.\n" +
		"stagecxx0=module/x\n" +
		"stagecxx1=module/y\n" +
		"stagecxx2=module/z\n"
	assert.Equal(t, want, result.ArtifactData)
}

// TestPipeline_IndependentUnitsShareStage verifies that units with no edge
// between them land in the same stage, ordered by logical name.
func TestPipeline_IndependentUnitsShareStage(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"module/w": "export module w;\n",
		"module/x": "export module x;\n",
		"module/y": "export module y;\nimport x;\n",
		"module/z": "export module z;\nimport y;\n",
	}

	// --- Act ---
	result := testutil.RunPlannerTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, [][]string{{"w", "x"}, {"y"}, {"z"}}, testutil.StageNames(result.Plan))
}

// TestPipeline_InterfaceAndImplementationMerge verifies that the two roles
// of a logical unit schedule as one node carrying both files and the union
// of both dependency sets.
func TestPipeline_InterfaceAndImplementationMerge(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"module/core/type":  "export module core.type;\n",
		"module/core/alloc": "export module core.alloc;\n",
		"module/core/box":   "export module core.box;\nimport core.type;\n",
		"src/core/box":      "module core.box;\nimport core.alloc;\n",
	}

	// --- Act ---
	result := testutil.RunPlannerTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, [][]string{{"core.alloc", "core.type"}, {"core.box"}}, testutil.StageNames(result.Plan))

	// The interface file precedes the implementation file within the unit.
	assert.Contains(t, result.ArtifactData, "stagecxx1=module/core/box src/core/box\n")
}

// TestPipeline_ExternalsNeverBecomeEdges verifies that imports of
// toolchain-provided modules are ignored during extraction.
func TestPipeline_ExternalsNeverBecomeEdges(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"module/core/type": "export module core.type;\nimport std;\n",
	}

	// --- Act ---
	result := testutil.RunPlannerTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, [][]string{{"core.type"}}, testutil.StageNames(result.Plan))
}

// TestPipeline_EmptyTree verifies that a tree with no units still produces
// a valid (empty) plan artifact.
func TestPipeline_EmptyTree(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"README": "not a unit\n",
	}

	// --- Act ---
	result := testutil.RunPlannerTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, 0, result.Plan.UnitCount())
	assert.Equal(t, "# Generated build stages for target generic. Do not edit.\n", result.ArtifactData)
}
