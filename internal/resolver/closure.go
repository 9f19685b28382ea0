package resolver

import (
	"slices"

	"bennypowers.dev/mincss/internal/collections"
	"bennypowers.dev/mincss/internal/graph"
)

// Closures holds the resolved dependencies of every declaration in a graph:
// the declared custom properties each one needs, transitively. A variable's
// closure always contains the variable itself. References to undeclared
// variables are left out.
type Closures struct {
	variables      map[string]collections.Set[string]
	utilities      map[string]collections.Set[string]
	customVariants map[string]collections.Set[string]
}

// ResolveClosures computes the closure of every variable, custom variant and utility
func ResolveClosures(g *graph.Graph) *Closures {
	c := &Closures{
		variables:      make(map[string]collections.Set[string], len(g.Variables())),
		utilities:      make(map[string]collections.Set[string], len(g.Utilities())),
		customVariants: make(map[string]collections.Set[string], len(g.CustomVariants())),
	}

	for _, v := range g.Variables() {
		c.variables[v.Name] = variableClosure(g, v)
	}
	for _, cv := range g.CustomVariants() {
		c.customVariants[cv.Name] = c.customVariantClosure(g, cv)
	}
	for _, u := range g.Utilities() {
		resolved := c.depsClosure(u.DirectDeps)
		for _, name := range u.VariantsUsed {
			resolved.Union(c.customVariants[name])
		}
		c.utilities[u.Name] = resolved
	}

	return c
}

// variableClosure walks direct dependencies with an explicit stack. The
// visited set starts with the variable itself, so cycles terminate.
func variableClosure(g *graph.Graph, v *graph.Variable) collections.Set[string] {
	visited := collections.NewSet(v.Name)
	stack := slices.Clone(v.DirectDeps)
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited.Has(name) {
			continue
		}
		dep, ok := g.Variable(name)
		if !ok {
			continue
		}
		visited.Add(name)
		stack = append(stack, dep.DirectDeps...)
	}
	return visited
}

// depsClosure unions the closures of the declared variables among deps
func (c *Closures) depsClosure(deps []string) collections.Set[string] {
	resolved := collections.NewSet[string]()
	for _, name := range deps {
		resolved.Union(c.variables[name])
	}
	return resolved
}

// customVariantClosure follows @variant edges between custom variants as well
// as var() references, guarding against variants that use each other
func (c *Closures) customVariantClosure(g *graph.Graph, root *graph.CustomVariantDeclaration) collections.Set[string] {
	resolved := collections.NewSet[string]()
	seen := collections.NewSet(root.Name)
	stack := []*graph.CustomVariantDeclaration{root}
	for len(stack) > 0 {
		cv := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		resolved.Union(c.depsClosure(cv.DirectDeps))
		for _, name := range cv.VariantsUsed {
			if seen.Has(name) {
				continue
			}
			seen.Add(name)
			if next, ok := g.CustomVariant(name); ok {
				stack = append(stack, next)
			}
		}
	}
	return resolved
}

// Variable returns the resolved dependencies of a declared variable, or nil
func (c *Closures) Variable(name string) collections.Set[string] {
	return c.variables[name]
}

// Utility returns the resolved dependencies of an @utility by its declared name, or nil
func (c *Closures) Utility(name string) collections.Set[string] {
	return c.utilities[name]
}

// CustomVariant returns the resolved dependencies of a @custom-variant, or nil
func (c *Closures) CustomVariant(name string) collections.Set[string] {
	return c.customVariants[name]
}
