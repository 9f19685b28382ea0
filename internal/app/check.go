package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"

	"bennypowers.dev/mincss/internal/collections"
	"bennypowers.dev/mincss/internal/content"
	"bennypowers.dev/mincss/internal/graph"
	"bennypowers.dev/mincss/internal/log"
	"bennypowers.dev/mincss/internal/parser"
	"bennypowers.dev/mincss/internal/parser/classname"
	"bennypowers.dev/mincss/internal/parser/css"
	"bennypowers.dev/mincss/internal/resolver"
)

// ErrProblems is returned by check when it reports any diagnostic
var ErrProblems = errors.New("problems found")

// Diagnostic is one problem found in a file. Line and Column are zero-based.
type Diagnostic struct {
	File    string
	Line    uint32
	Column  uint32
	Message string
}

// String formats the diagnostic as file:line:column: message, counting from one
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.File, d.Line+1, d.Column+1, d.Message)
}

// runCheck reports problems in the stylesheet and in the styles of content files
func runCheck(ctx context.Context, cmd *cli.Command) error {
	env := EnvFromContext(ctx)

	src, err := loadSource(cmd, env.Cfg, false)
	if err != nil {
		return err
	}
	g := src.engine.Graph()
	withFallbacks := strict(cmd, env.Cfg)

	result, err := parser.ParseCSSFromDocument(src.text, "css")
	if err != nil {
		return fmt.Errorf("unable to parse stylesheet: %w", err)
	}
	diags := checkReferences(src.path, result, g, withFallbacks)
	diags = append(diags, checkApplies(src.path, result)...)
	diags = append(diags, checkCycles(src.path, result, g)...)

	files, err := content.Discover(env.Cfg.Dir, contentPatterns(cmd, env.Cfg))
	if err != nil {
		return fmt.Errorf("unable to find content files: %w", err)
	}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		lang := parser.LanguageForPath(file)
		if !parser.IsCSSSupportedLanguage(lang) {
			continue
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("unable to read %s: %w", file, err)
		}
		res, err := parser.ParseCSSFromDocument(string(data), lang)
		if err != nil {
			log.Warn("Unable to parse styles in %s: %v", file, err)
			continue
		}
		diags = append(diags, checkReferences(file, res, g, withFallbacks)...)
	}

	for _, d := range diags {
		fmt.Fprintln(env.Out, d)
	}
	if len(diags) > 0 {
		return fmt.Errorf("%w: %d", ErrProblems, len(diags))
	}
	log.Info("No problems found in %s and %d content files", src.path, len(files))
	return nil
}

// checkReferences reports var() references to variables declared neither
// in g nor in result itself. References with a fallback are only reported
// when withFallbacks is set.
func checkReferences(file string, result *css.ParseResult, g *graph.Graph, withFallbacks bool) []Diagnostic {
	if result == nil {
		return nil
	}
	local := collections.NewSet[string]()
	for _, d := range result.Declarations {
		local.Add(d.Name)
	}

	var diags []Diagnostic
	for _, ref := range result.References {
		if local.Has(ref.Name) {
			continue
		}
		if _, ok := g.Variable(ref.Name); ok {
			continue
		}
		if ref.Fallback != nil && !withFallbacks {
			continue
		}
		msg := fmt.Sprintf("undeclared variable %s", ref.Name)
		if ref.Fallback != nil {
			msg += " (has fallback)"
		}
		diags = append(diags, diagnosticAt(file, ref.Range.Start, msg))
	}
	return diags
}

// checkApplies reports @apply class names that do not parse
func checkApplies(file string, result *css.ParseResult) []Diagnostic {
	var diags []Diagnostic
	for _, a := range result.Applies {
		for _, name := range a.ClassNames {
			if _, err := classname.Parse(name); err != nil {
				diags = append(diags, diagnosticAt(file, a.Range.Start, err.Error()))
			}
		}
	}
	return diags
}

// checkCycles reports one variable dependency cycle at the first
// declaration of the variable it starts from
func checkCycles(file string, result *css.ParseResult, g *graph.Graph) []Diagnostic {
	err := resolver.BuildDependencyGraph(g).CycleError()
	if err == nil {
		return nil
	}
	var cycle *resolver.CycleError
	if !errors.As(err, &cycle) {
		return nil
	}
	var at css.Position
	for _, d := range result.Declarations {
		if d.Name == cycle.Cycle[0] {
			at = d.Range.Start
			break
		}
	}
	return []Diagnostic{diagnosticAt(file, at, err.Error())}
}

func diagnosticAt(file string, pos css.Position, msg string) Diagnostic {
	return Diagnostic{File: file, Line: pos.Line, Column: pos.Character, Message: msg}
}
