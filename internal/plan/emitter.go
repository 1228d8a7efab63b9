package plan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/towerstrike/synthesis.game/internal/config"
)

// Emitter serializes a Plan into the external build backend's input format
// and writes it to a known location. Emitting is the hand-off boundary: the
// emitter never invokes the compiler.
type Emitter interface {
	// Emit writes exactly one artifact for the plan, overwriting any prior
	// artifact from a previous invocation. It returns the artifact path.
	Emit(ctx context.Context, p *Plan) (string, error)
}

// NewEmitter selects the emitter configured in the manifest.
func NewEmitter(model *config.Model) (Emitter, error) {
	switch model.Emit.Format {
	case "stages":
		return &stagesEmitter{output: model.OutputPath()}, nil
	case "compiledb":
		return &compiledbEmitter{
			root:     model.Root,
			output:   model.OutputPath(),
			compiler: model.Compiler,
		}, nil
	default:
		return nil, fmt.Errorf("unknown emit format %q", model.Emit.Format)
	}
}

// writeArtifact writes the serialized plan, creating the output directory
// if needed. Overwrites are intentional; there is no partial/append state.
func writeArtifact(path string, contents []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, contents, 0644); err != nil {
		return fmt.Errorf("failed to write plan artifact: %w", err)
	}
	return nil
}
