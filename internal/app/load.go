package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"

	"bennypowers.dev/mincss/engine"
	"bennypowers.dev/mincss/internal/collections"
	"bennypowers.dev/mincss/internal/config"
	"bennypowers.dev/mincss/internal/content"
	"bennypowers.dev/mincss/internal/log"
	"bennypowers.dev/mincss/internal/parser/asimonim"
	"bennypowers.dev/mincss/internal/parser/common"
)

// ErrNoStylesheet is returned by commands that need a stylesheet when none is configured
var ErrNoStylesheet = errors.New("no stylesheet, set --stylesheet or stylesheet in the configuration")

// stylesheetPath prefers the flag over the configuration. It is empty when neither sets one.
func stylesheetPath(cmd *cli.Command, cfg *config.Config) string {
	if cmd.IsSet("stylesheet") {
		return cmd.String("stylesheet")
	}
	return cfg.Path(cfg.Stylesheet)
}

func tokenFiles(cmd *cli.Command, cfg *config.Config) ([]config.TokenFile, error) {
	if !cmd.IsSet("tokens") {
		return cfg.TokenFiles()
	}
	var files []config.TokenFile
	for _, path := range cmd.StringSlice("tokens") {
		files = append(files, config.TokenFile{
			Path:         path,
			Prefix:       cfg.Prefix,
			GroupMarkers: cfg.GroupMarkers,
		})
	}
	return files, nil
}

// loadVariables imports every token file. A file that fails does not stop
// the others; all failures are returned together.
func loadVariables(cmd *cli.Command, cfg *config.Config) ([]engine.Variable, error) {
	files, err := tokenFiles(cmd, cfg)
	var vars []engine.Variable
	for _, f := range files {
		tokens, er := asimonim.LoadFile(f.Path, asimonim.Options{
			Prefix:       f.Prefix,
			GroupMarkers: f.GroupMarkers,
		})
		err = multierr.Append(err, er)
		for _, t := range tokens {
			vars = append(vars, engine.Variable{Name: t.Name, Value: t.Value})
		}
	}
	return vars, err
}

// source is a loaded stylesheet and the engine built from it
type source struct {
	path   string
	text   string
	engine *engine.Engine
}

// loadSource reads the stylesheet and the token files and builds the engine.
// With optional set a missing stylesheet gives a nil source and no error.
func loadSource(cmd *cli.Command, cfg *config.Config, optional bool) (*source, error) {
	path := stylesheetPath(cmd, cfg)
	if path == "" {
		if optional {
			return nil, nil
		}
		return nil, ErrNoStylesheet
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read stylesheet: %w", err)
	}

	vars, err := loadVariables(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to import tokens: %w", err)
	}

	text := common.NormalizeLineEndings(string(data))
	e := engine.New(text, engine.WithVariables(vars...))
	log.Info("Loaded %s: %d variables, %d utilities, %d custom variants",
		path, len(e.Graph().Variables()), len(e.Graph().Utilities()), len(e.Graph().CustomVariants()))
	return &source{path: path, text: text, engine: e}, nil
}

func contentPatterns(cmd *cli.Command, cfg *config.Config) []string {
	if cmd.IsSet("content") {
		return cmd.StringSlice("content")
	}
	return cfg.Content
}

// classNames returns the command arguments, or when there are none the
// class names harvested from content files. The safelist is always added.
func classNames(ctx context.Context, cmd *cli.Command, cfg *config.Config) ([]string, error) {
	names := cmd.Args().Slice()
	if len(names) == 0 {
		res, err := content.Scan(ctx, cfg.Dir, contentPatterns(cmd, cfg))
		if err != nil {
			return nil, fmt.Errorf("unable to scan content: %w", err)
		}
		names = res.ClassNames()
		log.Info("Harvested %d class names from %d files", len(names), len(res.Files))
	}

	seen := collections.NewSet(names...)
	for _, name := range cfg.Safelist {
		if !seen.Has(name) {
			seen.Add(name)
			names = append(names, name)
		}
	}
	return names, nil
}

func strict(cmd *cli.Command, cfg *config.Config) bool {
	if cmd.IsSet("strict") {
		return cmd.Bool("strict")
	}
	return cfg.Strict
}
