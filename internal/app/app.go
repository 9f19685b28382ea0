package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"

	"bennypowers.dev/mincss/internal/config"
	"bennypowers.dev/mincss/internal/log"
	"bennypowers.dev/mincss/internal/parser/css"
	"bennypowers.dev/mincss/internal/parser/html"
	"bennypowers.dev/mincss/internal/parser/js"
	"bennypowers.dev/mincss/internal/version"
)

// Name is the program name
const Name = "mincss"

// New returns the root command
func New() *cli.Command {
	return &cli.Command{
		Name:            Name,
		Usage:           "minimal stylesheets for the utility classes a project uses",
		Version:         version.Get().String() + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		// content globs such as "**/*.{js,ts}" contain commas
		DisableSliceFlagSeparator: true,
		Before:                    initializeAppContext,
		After:                     destroyAppContext,
		OnUsageError:              usageErrorHandler,
		ExitErrHandler:            exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML or JSON)"},
			&cli.StringFlag{Name: "log-level", Usage: "log `LEVEL`: debug, info, warn or error"},
		},
		Commands: []*cli.Command{
			{
				Name:         "describe",
				Usage:        "Prints the parsed form of class names (YAML)",
				OnUsageError: usageErrorHandler,
				Action:       runDescribe,
				Flags:        []cli.Flag{stylesheetFlag(), tokensFlag()},
				ArgsUsage:    "CLASS...",
			},
			{
				Name:         "resolve",
				Usage:        "Lists the variables, utilities and custom variants class names use",
				OnUsageError: usageErrorHandler,
				Action:       runResolve,
				Flags:        sharedFlags(),
				ArgsUsage:    "[CLASS...]",
			},
			{
				Name:         "build",
				Usage:        "Writes the minimal stylesheet for class names",
				OnUsageError: usageErrorHandler,
				Action:       runBuild,
				Flags: append(sharedFlags(),
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the stylesheet to `FILE` instead of stdout"},
				),
				ArgsUsage: "[CLASS...]",
			},
			{
				Name:         "check",
				Usage:        "Reports undeclared variables, bad @apply classes and dependency cycles",
				OnUsageError: usageErrorHandler,
				Action:       runCheck,
				Flags:        sharedFlags(),
			},
		},
	}
}

func stylesheetFlag() cli.Flag {
	return &cli.StringFlag{Name: "stylesheet", Aliases: []string{"s"}, Usage: "source stylesheet `FILE`"}
}

func tokensFlag() cli.Flag {
	return &cli.StringSliceFlag{Name: "tokens", Usage: "import design tokens from `FILE` (repeatable)"}
}

func sharedFlags() []cli.Flag {
	return []cli.Flag{
		stylesheetFlag(),
		tokensFlag(),
		&cli.StringSliceFlag{Name: "content", Usage: "harvest class names from files matching `GLOB` (repeatable)"},
		&cli.BoolFlag{Name: "strict", Usage: "fail when a class name cannot be parsed"},
	}
}

// initializeAppContext loads the configuration after the command line has
// been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	env := EnvFromContext(ctx)

	var err error
	if path := cmd.String("config"); path != "" {
		env.Cfg, err = config.Load(path)
		env.ConfigPath = path
	} else {
		var dir string
		if dir, err = os.Getwd(); err != nil {
			return ctx, fmt.Errorf("unable to get working directory: %w", err)
		}
		env.Cfg, env.ConfigPath, err = config.Discover(dir)
	}
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}

	levelName := env.Cfg.LogLevel
	if cmd.IsSet("log-level") {
		levelName = cmd.String("log-level")
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return ctx, err
	}
	log.SetLevel(level)

	log.Debug("Program started, args %v, version %s", os.Args, version.Get())
	if env.ConfigPath == "" {
		log.Debug("Using defaults (no configuration file)")
	} else {
		log.Debug("Using configuration %s", env.ConfigPath)
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := EnvFromContext(ctx)

	for _, c := range env.closers {
		if er := c.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close output: %w", er))
		}
	}
	env.closers = nil

	css.ClosePool()
	html.ClosePool()
	js.ClosePool()

	log.Debug("Program ended in %s, args %v", env.Uptime(), cmd.Args().Slice())
	return err
}

// exitErrHandler logs a command error before the context is destroyed;
// commands return plain errors rather than cli.Exit values
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := EnvFromContext(ctx)
	log.Error("Program ended with error: %v", err)
	env.ErrHandled = true
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

// closeLater registers c to be closed when the program ends
func (e *Env) closeLater(c io.Closer) {
	e.closers = append(e.closers, c)
}
