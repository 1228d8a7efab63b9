package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/towerstrike/synthesis.game/internal/app"
	"github.com/towerstrike/synthesis.game/internal/hcl"
	"github.com/towerstrike/synthesis.game/internal/plan"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a planner test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	Plan      *plan.Plan
	// Artifact is the emitted plan path; empty when planning failed.
	Artifact string
	// ArtifactData is the emitted artifact's contents.
	ArtifactData string
}

// RunPlannerTest materializes the given source tree in a temporary root and
// runs a full plan-and-emit pass over it. Map keys are tree-relative paths
// such as "module/core/type" or "synthplan.hcl".
func RunPlannerTest(t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()
	return RunPlannerTestWithConfig(t, files, nil)
}

// RunPlannerTestWithConfig is RunPlannerTest with a hook to adjust the app
// configuration (e.g. target platform overrides) before startup.
func RunPlannerTestWithConfig(t *testing.T, files map[string]string, adjust func(*app.Config)) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	appConfig := &app.Config{
		RootPath:  tmpDir,
		LogLevel:  "debug",
		LogFormat: "text",
	}
	if adjust != nil {
		adjust(appConfig)
	}

	logBuffer := &SafeBuffer{}

	var planner *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		planner = app.NewApp(logBuffer, appConfig, hcl.NewLoader())
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	p, artifact, runErr := planner.PlanAndEmit(context.Background())

	result := &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       planner,
		Plan:      p,
		Artifact:  artifact,
	}
	if artifact != "" {
		data, err := os.ReadFile(artifact)
		require.NoError(t, err)
		result.ArtifactData = string(data)
	}
	return result
}

// StageNames flattens a plan into per-stage logical name lists, which is
// what most scheduling assertions compare against.
func StageNames(p *plan.Plan) [][]string {
	if p == nil {
		return nil
	}
	stages := make([][]string, len(p.Stages))
	for i, stage := range p.Stages {
		names := make([]string, len(stage.Units))
		for j, u := range stage.Units {
			names[j] = u.Name.String()
		}
		stages[i] = names
	}
	return stages
}
