package plan

import (
	"context"
	"strconv"
	"strings"

	"github.com/towerstrike/synthesis.game/internal/ctxlog"
)

// stagesEmitter writes the make-style stage list the build generator
// consumes: one `stagecxxN=<files>` variable per stage, in order. Files
// within a stage may compile in parallel; the generator waits for each
// stage before starting the next.
type stagesEmitter struct {
	output string
}

func (e *stagesEmitter) Emit(ctx context.Context, p *Plan) (string, error) {
	logger := ctxlog.FromContext(ctx)

	var sb strings.Builder
	sb.WriteString("# Generated build stages for target ")
	sb.WriteString(p.Target.String())
	sb.WriteString(". Do not edit.\n")

	for _, stage := range p.Stages {
		sb.WriteString("stagecxx")
		sb.WriteString(strconv.Itoa(stage.Index))
		sb.WriteString("=")
		for i, unit := range stage.Units {
			for j, file := range unit.Files {
				if i > 0 || j > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(file)
			}
		}
		sb.WriteString("\n")
	}

	if err := writeArtifact(e.output, []byte(sb.String())); err != nil {
		return "", err
	}
	logger.Debug("Stage list emitted.", "path", e.output, "stages", len(p.Stages))
	return e.output, nil
}
