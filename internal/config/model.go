package config

import (
	"fmt"
	"path/filepath"

	"github.com/towerstrike/synthesis.game/internal/classify"
)

// Emit configures the plan artifact.
type Emit struct {
	// Format selects the emitter: "stages" (make-style stage variable
	// lines) or "compiledb" (a compile_commands.json compilation database).
	Format string
	// Output is the artifact path, relative to Root unless absolute.
	Output string
}

// Compiler describes how compiledb entries render a compile command.
// The planner never invokes this command itself.
type Compiler struct {
	Command string
	Flags   []string
	Defines map[string]string
}

// Model is the resolved build manifest for one planner invocation.
type Model struct {
	// Root is the source tree root directory.
	Root string
	// InterfaceRoots are the trees (relative to Root) holding interface units.
	InterfaceRoots []string
	// ImplementationRoots are the trees holding implementation units.
	ImplementationRoots []string
	// Target is the platform the plan is resolved for.
	Target classify.Platform
	// Externals are module names supplied by the toolchain (e.g. "std");
	// imports of these names never become dependency edges.
	Externals []string

	Emit     Emit
	Compiler Compiler
}

// Default returns the manifest model used when no manifest file exists,
// matching the layout conventions of the source tree.
func Default(root string) *Model {
	return &Model{
		Root:                root,
		InterfaceRoots:      []string{"module"},
		ImplementationRoots: []string{"src"},
		Target:              classify.PlatformGeneric,
		Externals:           []string{"std"},
		Emit: Emit{
			Format: "stages",
			Output: filepath.Join("build", "stages.mk"),
		},
		Compiler: Compiler{
			Command: "clang++",
			Flags:   []string{"-std=c++20"},
		},
	}
}

// Validate checks invariants the pipeline relies on.
func (m *Model) Validate() error {
	if m.Root == "" {
		return fmt.Errorf("source tree root cannot be empty")
	}
	if len(m.InterfaceRoots) == 0 && len(m.ImplementationRoots) == 0 {
		return fmt.Errorf("at least one interface or implementation root is required")
	}
	switch m.Emit.Format {
	case "stages", "compiledb":
	default:
		return fmt.Errorf("unknown emit format %q: must be 'stages' or 'compiledb'", m.Emit.Format)
	}
	if m.Emit.Output == "" {
		return fmt.Errorf("emit output path cannot be empty")
	}
	return nil
}

// OutputPath resolves the emit output path against the tree root.
func (m *Model) OutputPath() string {
	if filepath.IsAbs(m.Emit.Output) {
		return m.Emit.Output
	}
	return filepath.Join(m.Root, m.Emit.Output)
}
