// Package engine is the entry point for embedding mincss: it parses class
// names, resolves what they use from a stylesheet and writes the minimal
// stylesheet for them.
//
//	e := engine.New(css)
//	usage := e.Resolve([]string{"hover:bg-brand", "dark:p-4"})
//	out := e.MinimalCSS(usage)
//
// An Engine is read-only once built and may be shared between goroutines.
package engine

import (
	"bennypowers.dev/mincss/internal/assemble"
	"bennypowers.dev/mincss/internal/graph"
	"bennypowers.dev/mincss/internal/parser/classname"
	"bennypowers.dev/mincss/internal/resolver"
)

// Variable is a custom property supplied outside the stylesheet, such as one
// imported from a design token file
type Variable struct {
	Name  string
	Value string
	// Context is recorded as the declaration context, "@theme" when empty
	Context string
}

// Option configures an Engine
type Option func(*options)

type options struct {
	variables []Variable
}

// WithVariables adds custom properties after the stylesheet's own
// declarations. A name the stylesheet already declares gains another declaration.
func WithVariables(vars ...Variable) Option {
	return func(o *options) {
		o.variables = append(o.variables, vars...)
	}
}

// Engine holds a stylesheet graph and its resolved closures
type Engine struct {
	resolver *resolver.Resolver
}

// New builds the graph of stylesheet and resolves every closure
func New(stylesheet string, opts ...Option) *Engine {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	g := graph.Build(stylesheet)
	for _, v := range o.variables {
		context := v.Context
		if context == "" {
			context = "@theme"
		}
		g.AddVariable(v.Name, v.Value, context)
	}

	return &Engine{resolver: resolver.New(g)}
}

// Describe parses one class name
func (e *Engine) Describe(className string) (*classname.Descriptor, error) {
	return classname.Parse(className)
}

// Resolve parses class names and collects the variables, utilities and
// custom variants they use. Class names that fail to parse are reported in
// Usage.Errors without stopping the others.
func (e *Engine) Resolve(classNames []string) *resolver.Usage {
	return e.resolver.Resolve(classNames)
}

// MinimalCSS writes the stylesheet subset usage needs
func (e *Engine) MinimalCSS(usage *resolver.Usage) string {
	return assemble.Stylesheet(e.resolver.Graph(), usage)
}

// Graph returns the stylesheet graph
func (e *Engine) Graph() *graph.Graph {
	return e.resolver.Graph()
}

// Closures returns the resolved dependencies of every declaration
func (e *Engine) Closures() *resolver.Closures {
	return e.resolver.Closures()
}
