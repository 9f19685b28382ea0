// Package resolver computes which custom properties, utilities and custom
// variants of a stylesheet a set of class names needs.
//
// Closures are computed once per graph. Resolving class names then only
// reads the graph and the closures, so one Resolver may serve concurrent callers.
package resolver

import (
	"bennypowers.dev/mincss/internal/collections"
	"bennypowers.dev/mincss/internal/graph"
	"bennypowers.dev/mincss/internal/log"
	"bennypowers.dev/mincss/internal/parser/classname"
	"bennypowers.dev/mincss/internal/parser/value"
)

// Resolver cross-references class names with a stylesheet graph
type Resolver struct {
	graph    *graph.Graph
	closures *Closures
	registry *classname.Registry
}

// New resolves the closures of g
func New(g *graph.Graph) *Resolver {
	return &Resolver{
		graph:    g,
		closures: ResolveClosures(g),
		registry: classname.DefaultRegistry(),
	}
}

// Graph returns the graph the resolver reads
func (r *Resolver) Graph() *graph.Graph {
	return r.graph
}

// Closures returns the resolved dependencies of every declaration
func (r *Resolver) Closures() *Closures {
	return r.closures
}

// Resolve parses class names and accumulates what they use. A class name
// that fails to parse is recorded in Usage.Errors and does not stop the
// others. Class names applied by used @utility blocks are processed as well.
func (r *Resolver) Resolve(classNames []string) *Usage {
	usage := NewUsage()
	w := &walker{
		r:     r,
		usage: usage,
		seen:  collections.NewSet[string](),
	}

	for _, res := range r.registry.ParseAll(classNames) {
		if w.seen.Has(res.ClassName) {
			continue
		}
		w.seen.Add(res.ClassName)
		if res.Err != nil {
			log.Debug("Skipping class %q: %v", res.ClassName, res.Err)
			usage.Errors = append(usage.Errors, res.Err)
			continue
		}
		usage.Descriptors = append(usage.Descriptors, res.Descriptor)
		w.use(res.Descriptor)
	}

	// @apply worklist; seen makes applied cycles terminate
	for len(w.queue) > 0 {
		name := w.queue[0]
		w.queue = w.queue[1:]
		d, err := r.registry.Parse(name)
		if err != nil {
			log.Debug("Skipping applied class %q: %v", name, err)
			usage.Errors = append(usage.Errors, err)
			continue
		}
		w.use(d)
	}

	return usage
}

type walker struct {
	r     *Resolver
	usage *Usage
	seen  collections.Set[string]
	queue []string
}

func (w *walker) use(d *classname.Descriptor) {
	for i := range d.Variants {
		d.Variants[i].Walk(w.useVariant)
	}

	if u, param, ok := w.r.graph.MatchUtility(d.Utility.Segment()); ok {
		w.useCustomUtility(u, param, d.Modifier)
		return
	}

	util := d.Utility
	switch util.Kind {
	case classname.UtilityThemedParam:
		for _, name := range classname.ThemeVariableNames(util.ValueTokenTypes, util.Param) {
			w.useThemeVariable(name)
		}
	case classname.UtilityArbitraryParam, classname.UtilityFullArbitrary:
		w.useVariables(value.ScanRaw(util.Raw))
	case classname.UtilityBracketlessParam:
		if spec, ok := w.r.registry.Lookup(util.Name); ok {
			w.useVariables(spec.BareVariables)
		}
	case classname.UtilityCustom:
		log.Debug("No utility matches %q", d.ClassName)
	}

	if d.Modifier != nil {
		w.useVariables(d.Modifier.Variables)
	}
}

func (w *walker) useVariant(v *classname.Variant) {
	switch v.Kind {
	case classname.VariantRegular, classname.VariantCustom:
		if w.useCustomVariantNamed(v.Name) {
			return
		}
	case classname.VariantArbitraryNestable, classname.VariantArbitraryNonNestable, classname.VariantFullArbitrary:
		w.useVariables(value.ScanVariables(v.Selector))
	}
	// a custom variant may shadow any built-in form, e.g. "aria-busy"
	base, _, _ := classname.SplitModifier(v.Raw)
	w.useCustomVariantNamed(base)
}

func (w *walker) useCustomVariantNamed(name string) bool {
	if _, ok := w.r.graph.CustomVariant(name); !ok {
		return false
	}
	w.useCustomVariant(name)
	return true
}

// useCustomVariant marks a custom variant and those it uses through @variant
func (w *walker) useCustomVariant(name string) {
	stack := []string{name}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cv, ok := w.r.graph.CustomVariant(n)
		if !ok || w.usage.CustomVariants.Has(n) {
			continue
		}
		w.usage.CustomVariants.Add(n)
		w.usage.Variables.Union(w.r.closures.CustomVariant(n))
		stack = append(stack, cv.VariantsUsed...)
	}
}

func (w *walker) useCustomUtility(u *graph.UtilityDeclaration, param string, mod *classname.Modifier) {
	w.usage.Utilities.Add(u.Name)
	w.usage.Variables.Union(w.r.closures.Utility(u.Name))
	for _, name := range u.VariantsUsed {
		w.useCustomVariantNamed(name)
	}

	if u.Dynamic && param != "" {
		if isBracketed(param) {
			w.useVariables(value.ScanRaw(param))
		} else {
			for _, name := range classname.ThemeVariableNames(u.ValueTokenTypes, param) {
				w.useThemeVariable(name)
			}
		}
	}

	if mod != nil {
		if mod.Kind == classname.ModifierNormal {
			for _, name := range classname.ThemeVariableNames(u.ModifierTokenTypes, mod.Raw) {
				w.useThemeVariable(name)
			}
		} else {
			w.useVariables(mod.Variables)
		}
	}

	for _, applied := range u.AppliedClassNames {
		if !w.seen.Has(applied) {
			w.seen.Add(applied)
			w.queue = append(w.queue, applied)
		}
	}
}

// useThemeVariable uses a theme variable and its "name--*" sub-properties
func (w *walker) useThemeVariable(name string) {
	w.useVariable(name)
	for _, sub := range w.r.graph.SubProperties(name) {
		w.useVariable(sub)
	}
}

func (w *walker) useVariables(names []string) {
	for _, name := range names {
		w.useVariable(name)
	}
}

// useVariable adds the closure of a declared variable; undeclared names are ignored
func (w *walker) useVariable(name string) {
	w.usage.Variables.Union(w.r.closures.Variable(name))
}

func isBracketed(s string) bool {
	n := len(s)
	return n >= 2 && (s[0] == '[' && s[n-1] == ']' || s[0] == '(' && s[n-1] == ')')
}
