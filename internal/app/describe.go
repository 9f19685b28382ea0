package app

import (
	"context"
	"errors"
	"fmt"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/mincss/internal/graph"
	"bennypowers.dev/mincss/internal/parser/classname"
)

var errNoClassNames = errors.New("no class names given")

type swatch struct {
	Variable string `yaml:"variable"`
	Hex      string `yaml:"hex"`
}

type description struct {
	classname.Descriptor `yaml:",inline"`
	Swatch               *swatch `yaml:"swatch,omitempty"`
}

type failedDescription struct {
	ClassName string `yaml:"className"`
	Error     string `yaml:"error"`
}

// runDescribe prints one YAML document per class name
func runDescribe(ctx context.Context, cmd *cli.Command) (err error) {
	env := EnvFromContext(ctx)

	if cmd.NArg() == 0 {
		return errNoClassNames
	}

	src, err := loadSource(cmd, env.Cfg, true)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(env.Out)
	enc.SetIndent(2)
	defer func() {
		err = multierr.Append(err, enc.Close())
	}()

	for _, name := range cmd.Args().Slice() {
		d, er := classname.Parse(name)
		if er != nil {
			err = multierr.Append(err, er)
			if er := enc.Encode(failedDescription{ClassName: name, Error: er.Error()}); er != nil {
				return multierr.Append(err, er)
			}
			continue
		}

		out := description{Descriptor: *d}
		if src != nil {
			out.Swatch = colorSwatch(src.engine.Graph(), d)
		}
		if er := enc.Encode(out); er != nil {
			return multierr.Append(err, fmt.Errorf("unable to write description: %w", er))
		}
	}
	return err
}

// colorSwatch returns the colour of the first theme variable a themed
// utility may use that resolves to a colour
func colorSwatch(g *graph.Graph, d *classname.Descriptor) *swatch {
	if d.Utility.Kind != classname.UtilityThemedParam {
		return nil
	}
	for _, name := range classname.ThemeVariableNames(d.Utility.ValueTokenTypes, d.Utility.Param) {
		if c, ok := g.Color(name); ok {
			return &swatch{Variable: name, Hex: c.HexString()}
		}
	}
	return nil
}
