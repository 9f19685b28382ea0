package resolver

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"bennypowers.dev/mincss/internal/graph"
)

// ErrCircularReference indicates custom properties that reference each other in a loop
var ErrCircularReference = errors.New("circular reference")

// CycleError reports one dependency cycle, first element repeated at the end
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCircularReference, strings.Join(e.Cycle, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrCircularReference
}

// DependencyGraph represents a directed graph of custom property dependencies
type DependencyGraph struct {
	// adjacency list: variable name -> variables it references
	dependencies map[string][]string
	// reverse lookup: variable name -> variables that reference it
	dependents map[string][]string
	// declared variable names, sorted so traversals are deterministic
	nodes []string
}

// BuildDependencyGraph builds a dependency graph from the variables of a stylesheet
func BuildDependencyGraph(g *graph.Graph) *DependencyGraph {
	dg := &DependencyGraph{
		dependencies: make(map[string][]string),
		dependents:   make(map[string][]string),
	}

	for _, v := range g.Variables() {
		dg.nodes = append(dg.nodes, v.Name)
		if len(v.DirectDeps) > 0 {
			dg.dependencies[v.Name] = v.DirectDeps
			for _, dep := range v.DirectDeps {
				dg.dependents[dep] = append(dg.dependents[dep], v.Name)
			}
		}
	}
	sort.Strings(dg.nodes)

	return dg
}

// GetDependencies returns the variables the given variable references directly
func (g *DependencyGraph) GetDependencies(name string) []string {
	if deps, ok := g.dependencies[name]; ok {
		return deps
	}
	return []string{}
}

// GetDependents returns the variables that reference the given variable directly
func (g *DependencyGraph) GetDependents(name string) []string {
	if deps, ok := g.dependents[name]; ok {
		return deps
	}
	return []string{}
}

// HasCycle returns true if the graph contains a circular dependency
func (g *DependencyGraph) HasCycle() bool {
	return g.FindCycle() != nil
}

// FindCycle returns the cycle path if one exists, or nil if no cycle
func (g *DependencyGraph) FindCycle() []string {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	for _, node := range g.nodes {
		if cycle := g.findCycleDFS(node, visited, recStack, nil); cycle != nil {
			return cycle
		}
	}

	return nil
}

// findCycleDFS finds a cycle and returns the path
func (g *DependencyGraph) findCycleDFS(node string, visited, recStack map[string]bool, path []string) []string {
	if recStack[node] {
		// node is on the path: it was appended when recStack[node] was set
		for i, n := range path {
			if n == node {
				return append(append([]string{}, path[i:]...), node)
			}
		}
		panic(fmt.Sprintf("cycle detection invariant violated: node %q in recStack but not in path %v", node, path))
	}
	if visited[node] {
		return nil
	}

	visited[node] = true
	recStack[node] = true
	path = append(path, node)

	for _, dep := range g.dependencies[node] {
		if cycle := g.findCycleDFS(dep, visited, recStack, path); cycle != nil {
			return cycle
		}
	}

	recStack[node] = false
	return nil
}

// CycleError returns the first cycle found as an error, or nil
func (g *DependencyGraph) CycleError() error {
	if cycle := g.FindCycle(); cycle != nil {
		return &CycleError{Cycle: cycle}
	}
	return nil
}
