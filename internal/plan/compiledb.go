package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/towerstrike/synthesis.game/internal/config"
	"github.com/towerstrike/synthesis.game/internal/ctxlog"
)

// compileCommand is one entry of a clang-style compilation database.
type compileCommand struct {
	Directory string `json:"directory"`
	Command   string `json:"command"`
	File      string `json:"file"`
}

// compiledbEmitter writes a compile_commands.json covering every file in
// the plan, in stage order. Tooling such as ccls consumes it; the build
// itself still goes through the stages emitter's backend.
type compiledbEmitter struct {
	root     string
	output   string
	compiler config.Compiler
}

func (e *compiledbEmitter) Emit(ctx context.Context, p *Plan) (string, error) {
	logger := ctxlog.FromContext(ctx)

	directory, err := filepath.Abs(e.root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve source tree root: %w", err)
	}

	base := e.baseCommand()
	entries := make([]compileCommand, 0, p.UnitCount())
	for _, file := range p.Files() {
		entries = append(entries, compileCommand{
			Directory: directory,
			Command:   base + " -c " + file,
			File:      file,
		})
	}

	contents, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode compilation database: %w", err)
	}
	contents = append(contents, '\n')

	if err := writeArtifact(e.output, contents); err != nil {
		return "", err
	}
	logger.Debug("Compilation database emitted.", "path", e.output, "entries", len(entries))
	return e.output, nil
}

// baseCommand renders the shared part of every compile command: the
// compiler, its flags, and the define map in sorted order so the artifact
// is byte-identical across runs.
func (e *compiledbEmitter) baseCommand() string {
	parts := []string{e.compiler.Command}
	parts = append(parts, e.compiler.Flags...)

	defines := make([]string, 0, len(e.compiler.Defines))
	for key, value := range e.compiler.Defines {
		if value == "" {
			defines = append(defines, "-D"+key)
			continue
		}
		defines = append(defines, "-D"+key+"="+value)
	}
	sort.Strings(defines)

	return strings.Join(append(parts, defines...), " ")
}
