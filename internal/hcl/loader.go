package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/towerstrike/synthesis.game/internal/classify"
	"github.com/towerstrike/synthesis.game/internal/config"
	"github.com/towerstrike/synthesis.game/internal/ctxlog"
)

// ManifestName is the manifest file the loader looks for at the tree root.
const ManifestName = "synthplan.hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// manifestRoot is the gohcl schema for the top level of a manifest file.
type manifestRoot struct {
	Target    string         `hcl:"target,optional"`
	Externals []string       `hcl:"externals,optional"`
	Source    *sourceBlock   `hcl:"source,block"`
	Emit      *emitBlock     `hcl:"emit,block"`
	Compiler  *compilerBlock `hcl:"compiler,block"`
	Remain    hcl.Body       `hcl:",remain"`
}

// sourceBlock configures which trees hold interface and implementation units.
type sourceBlock struct {
	InterfaceRoots      []string `hcl:"interface_roots,optional"`
	ImplementationRoots []string `hcl:"implementation_roots,optional"`
}

// emitBlock configures the plan artifact.
type emitBlock struct {
	Format string `hcl:"format,optional"`
	Output string `hcl:"output,optional"`
}

// compilerBlock configures how compiledb entries render compile commands.
// Defines stays an expression so loosely-typed values (numbers, bools) can
// be converted to strings during translation.
type compilerBlock struct {
	Command string         `hcl:"command,optional"`
	Flags   []string       `hcl:"flags,optional"`
	Defines hcl.Expression `hcl:"defines,optional"`
}

// Load reads the manifest at <root>/synthplan.hcl. A missing manifest is
// not an error: the default model for the tree's layout conventions is
// returned instead.
func (l *Loader) Load(ctx context.Context, root string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := config.Default(root)

	path := filepath.Join(root, ManifestName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No manifest found, using defaults.", "path", path)
			return model, nil
		}
		return nil, fmt.Errorf("error accessing manifest %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, diags)
	}

	var manifest manifestRoot
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &manifest); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, diags)
	}

	if err := l.translate(&manifest, model); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	logger.Debug("Manifest loaded.",
		"path", path,
		"target", model.Target.String(),
		"emit_format", model.Emit.Format,
	)
	return model, nil
}

// translate merges the decoded manifest onto the default model. Anything
// the manifest omits keeps its default.
func (l *Loader) translate(manifest *manifestRoot, model *config.Model) error {
	if manifest.Target != "" {
		target, err := classify.ParsePlatform(manifest.Target)
		if err != nil {
			return err
		}
		model.Target = target
	}
	if manifest.Externals != nil {
		model.Externals = manifest.Externals
	}

	if src := manifest.Source; src != nil {
		if len(src.InterfaceRoots) > 0 {
			model.InterfaceRoots = src.InterfaceRoots
		}
		if len(src.ImplementationRoots) > 0 {
			model.ImplementationRoots = src.ImplementationRoots
		}
	}

	if emit := manifest.Emit; emit != nil {
		if emit.Format != "" {
			model.Emit.Format = emit.Format
		}
		if emit.Output != "" {
			model.Emit.Output = emit.Output
		}
	}

	if comp := manifest.Compiler; comp != nil {
		if comp.Command != "" {
			model.Compiler.Command = comp.Command
		}
		if comp.Flags != nil {
			model.Compiler.Flags = comp.Flags
		}
		defines, err := translateDefines(comp.Defines)
		if err != nil {
			return err
		}
		if defines != nil {
			model.Compiler.Defines = defines
		}
	}

	return nil
}

// translateDefines evaluates the defines expression into a string map.
// Values are converted through cty so `defines = { X = 1 }` works without
// quoting every value.
func translateDefines(expr hcl.Expression) (map[string]string, error) {
	if expr == nil {
		return nil, nil
	}

	value, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate compiler defines: %w", diags)
	}
	if value.IsNull() {
		return nil, nil
	}
	if !value.Type().IsObjectType() && !value.Type().IsMapType() {
		return nil, fmt.Errorf("compiler defines must be a map of strings, got %s", value.Type().FriendlyName())
	}

	defines := make(map[string]string)
	for it := value.ElementIterator(); it.Next(); {
		key, val := it.Element()
		converted, err := convert.Convert(val, cty.String)
		if err != nil {
			return nil, fmt.Errorf("compiler define %q: %w", key.AsString(), err)
		}
		if converted.IsNull() {
			defines[key.AsString()] = ""
			continue
		}
		defines[key.AsString()] = converted.AsString()
	}
	return defines, nil
}
