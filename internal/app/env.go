// Package app is the mincss command line: it wires configuration, token
// import and content harvesting to the engine.
package app

import (
	"context"
	"io"
	"os"
	"time"

	"bennypowers.dev/mincss/internal/config"
)

type envKey struct{}

// Env keeps the state shared by every command
type Env struct {
	Cfg        *config.Config
	ConfigPath string
	Out        io.Writer
	// ErrHandled is set once a command error has been logged
	ErrHandled bool

	closers []io.Closer
	start   time.Time
}

// EnvFromContext returns the Env stored by ContextWithEnv
func EnvFromContext(ctx context.Context) *Env {
	if env, ok := ctx.Value(envKey{}).(*Env); ok {
		return env
	}
	panic("env not found in context")
}

// ContextWithEnv stores a fresh Env writing command output to out, or to
// stdout when out is nil
func ContextWithEnv(ctx context.Context, out io.Writer) context.Context {
	if out == nil {
		out = os.Stdout
	}
	return context.WithValue(ctx, envKey{}, &Env{Out: out, start: time.Now()})
}

// Uptime is the time since the Env was created
func (e *Env) Uptime() time.Duration {
	return time.Since(e.start)
}
