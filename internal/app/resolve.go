package app

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/mincss/internal/log"
	"bennypowers.dev/mincss/internal/resolver"
)

type report struct {
	Variables      []string `yaml:"variables"`
	Utilities      []string `yaml:"utilities"`
	CustomVariants []string `yaml:"customVariants"`
	Errors         []string `yaml:"errors,omitempty"`
}

// resolveUsage loads the stylesheet and resolves the class names of the
// command. Class name errors are logged and only fail in strict mode.
func resolveUsage(ctx context.Context, cmd *cli.Command) (*source, *resolver.Usage, error) {
	env := EnvFromContext(ctx)

	src, err := loadSource(cmd, env.Cfg, false)
	if err != nil {
		return nil, nil, err
	}
	names, err := classNames(ctx, cmd, env.Cfg)
	if err != nil {
		return nil, nil, err
	}

	usage := src.engine.Resolve(names)
	for _, er := range usage.Errors {
		log.Warn("%v", er)
	}
	if strict(cmd, env.Cfg) {
		if err := usage.Err(); err != nil {
			return nil, nil, fmt.Errorf("invalid class names: %w", err)
		}
	}
	return src, usage, nil
}

// runResolve prints what the class names use as YAML
func runResolve(ctx context.Context, cmd *cli.Command) error {
	env := EnvFromContext(ctx)

	_, usage, err := resolveUsage(ctx, cmd)
	if err != nil {
		return err
	}

	r := report{
		Variables:      usage.VariableNames(),
		Utilities:      usage.UtilityNames(),
		CustomVariants: usage.CustomVariantNames(),
	}
	for _, er := range usage.Errors {
		r.Errors = append(r.Errors, er.Error())
	}

	enc := yaml.NewEncoder(env.Out)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}
	return enc.Close()
}

// runBuild writes the minimal stylesheet
func runBuild(ctx context.Context, cmd *cli.Command) error {
	env := EnvFromContext(ctx)

	src, usage, err := resolveUsage(ctx, cmd)
	if err != nil {
		return err
	}

	fname := env.Cfg.Path(env.Cfg.Output)
	if cmd.IsSet("output") {
		fname = cmd.String("output")
	}

	var out io.Writer = env.Out
	if fname != "" {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		env.closeLater(f)
		out = f
	}

	css := src.engine.MinimalCSS(usage)
	if _, err := io.WriteString(out, css); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}

	if fname == "" {
		fname = "STDOUT"
	}
	log.Info("Wrote %d variables, %d utilities and %d custom variants to %s",
		len(usage.Variables), len(usage.Utilities), len(usage.CustomVariants), fname)
	return nil
}
