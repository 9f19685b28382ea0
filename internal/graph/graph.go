// Package graph builds the declaration tables of a stylesheet: custom
// properties from @theme and ordinary rules, @utility blocks and
// @custom-variant rules, each with the custom properties it references
// directly. Building never fails; constructs it does not understand are skipped.
package graph

import (
	"sort"
	"strings"

	"bennypowers.dev/mincss/internal/log"
	"bennypowers.dev/mincss/internal/parser/common"
	"bennypowers.dev/mincss/internal/parser/value"
	"github.com/mazznoer/csscolorparser"
)

// Graph holds the declarations of one stylesheet. It is filled by Build and
// AddVariable and read-only afterwards.
type Graph struct {
	variables     map[string]*Variable
	variableOrder []*Variable
	declarations  []*VariableDeclaration
	// subProperties maps "--text-lg" to names like "--text-lg--line-height"
	subProperties map[string][]string

	utilities    map[string]*UtilityDeclaration
	utilityOrder []*UtilityDeclaration
	// dynamic utilities by prefix length, longest first
	dynamic []*UtilityDeclaration

	customVariants     map[string]*CustomVariantDeclaration
	customVariantOrder []*CustomVariantDeclaration

	keyframes     map[string]*KeyframesDeclaration
	keyframeOrder []*KeyframesDeclaration

	order int
}

// New returns an empty graph
func New() *Graph {
	return &Graph{
		variables:      make(map[string]*Variable),
		subProperties:  make(map[string][]string),
		utilities:      make(map[string]*UtilityDeclaration),
		customVariants: make(map[string]*CustomVariantDeclaration),
		keyframes:      make(map[string]*KeyframesDeclaration),
	}
}

// Build parses a stylesheet into a graph
func Build(stylesheet string) *Graph {
	g := New()
	b := &builder{g: g, src: stylesheet}
	b.walk(parseTree(stylesheet), nil, "")
	return g
}

func (g *Graph) nextOrder() int {
	g.order++
	return g.order
}

// AddVariable records a theme variable that did not come from the stylesheet,
// such as an imported design token
func (g *Graph) AddVariable(name, val, context string) {
	g.addVariable(&VariableDeclaration{
		Name:    name,
		Value:   val,
		Context: context,
		Theme:   true,
	})
}

func (g *Graph) addVariable(d *VariableDeclaration) {
	d.Order = g.nextOrder()
	d.DirectDeps = value.ScanVariables(d.Value)
	g.declarations = append(g.declarations, d)

	v, ok := g.variables[d.Name]
	if !ok {
		v = &Variable{Name: d.Name}
		g.variables[d.Name] = v
		g.variableOrder = append(g.variableOrder, v)
		if base, ok := subPropertyBase(d.Name); ok {
			g.subProperties[base] = append(g.subProperties[base], d.Name)
		}
	}
	v.Declarations = append(v.Declarations, d)
	v.DirectDeps = appendUnique(v.DirectDeps, d.DirectDeps...)
}

// subPropertyBase returns "--text-lg" for "--text-lg--line-height"
func subPropertyBase(name string) (string, bool) {
	if !strings.HasPrefix(name, "--") {
		return "", false
	}
	i := strings.Index(name[2:], "--")
	if i <= 0 {
		return "", false
	}
	return name[:i+2], true
}

func (g *Graph) addUtility(u *UtilityDeclaration) {
	existing, ok := g.utilities[u.Name]
	if !ok {
		u.Order = g.nextOrder()
		g.utilities[u.Name] = u
		g.utilityOrder = append(g.utilityOrder, u)
		if u.Dynamic {
			g.dynamic = append(g.dynamic, u)
			sort.SliceStable(g.dynamic, func(i, j int) bool {
				return len(g.dynamic[i].Prefix) > len(g.dynamic[j].Prefix)
			})
		}
		return
	}
	log.Debug("Merging repeated @utility %s", u.Name)
	existing.DirectDeps = appendUnique(existing.DirectDeps, u.DirectDeps...)
	existing.ValueTokenTypes = appendUnique(existing.ValueTokenTypes, u.ValueTokenTypes...)
	existing.ModifierTokenTypes = appendUnique(existing.ModifierTokenTypes, u.ModifierTokenTypes...)
	existing.AppliedClassNames = appendUnique(existing.AppliedClassNames, u.AppliedClassNames...)
	existing.VariantsUsed = appendUnique(existing.VariantsUsed, u.VariantsUsed...)
	existing.Source += "\n" + u.Source
}

func (g *Graph) addCustomVariant(cv *CustomVariantDeclaration) {
	if _, ok := g.customVariants[cv.Name]; ok {
		log.Debug("Replacing repeated @custom-variant %s", cv.Name)
		for i, old := range g.customVariantOrder {
			if old.Name == cv.Name {
				cv.Order = old.Order
				g.customVariantOrder[i] = cv
			}
		}
		g.customVariants[cv.Name] = cv
		return
	}
	cv.Order = g.nextOrder()
	g.customVariants[cv.Name] = cv
	g.customVariantOrder = append(g.customVariantOrder, cv)
}

func (g *Graph) addKeyframes(k *KeyframesDeclaration) {
	if _, ok := g.keyframes[k.Name]; ok {
		return
	}
	k.Order = g.nextOrder()
	g.keyframes[k.Name] = k
	g.keyframeOrder = append(g.keyframeOrder, k)
}

// Variable returns the declarations of a custom property
func (g *Graph) Variable(name string) (*Variable, bool) {
	v, ok := g.variables[name]
	return v, ok
}

// Variables returns every declared custom property in order of first declaration
func (g *Graph) Variables() []*Variable {
	return g.variableOrder
}

// Declarations returns every custom property declaration in source order
func (g *Graph) Declarations() []*VariableDeclaration {
	return g.declarations
}

// SubProperties returns the declared "name--*" properties of a variable,
// such as "--text-lg--line-height" for "--text-lg"
func (g *Graph) SubProperties(name string) []string {
	return g.subProperties[name]
}

// Utility returns the @utility declared with exactly this name, e.g. "tab-*"
func (g *Graph) Utility(name string) (*UtilityDeclaration, bool) {
	u, ok := g.utilities[name]
	return u, ok
}

// Utilities returns every @utility in declaration order
func (g *Graph) Utilities() []*UtilityDeclaration {
	return g.utilityOrder
}

// MatchUtility finds the @utility a utility segment refers to: a static
// utility with exactly that name, or else the dynamic utility with the
// longest prefix. param is the text after the dynamic prefix.
func (g *Graph) MatchUtility(segment string) (u *UtilityDeclaration, param string, ok bool) {
	if u, ok := g.utilities[segment]; ok && !u.Dynamic {
		return u, "", true
	}
	for _, d := range g.dynamic {
		if rest, found := strings.CutPrefix(segment, d.Prefix+"-"); found && rest != "" {
			return d, rest, true
		}
	}
	return nil, "", false
}

// CustomVariant returns the @custom-variant with this name
func (g *Graph) CustomVariant(name string) (*CustomVariantDeclaration, bool) {
	cv, ok := g.customVariants[name]
	return cv, ok
}

// CustomVariants returns every @custom-variant in declaration order
func (g *Graph) CustomVariants() []*CustomVariantDeclaration {
	return g.customVariantOrder
}

// Keyframes returns the @keyframes declared in @theme with this name
func (g *Graph) Keyframes(name string) (*KeyframesDeclaration, bool) {
	k, ok := g.keyframes[name]
	return k, ok
}

// KeyframesIn returns the declared @keyframes whose names appear as words in val
func (g *Graph) KeyframesIn(val string) []*KeyframesDeclaration {
	if len(g.keyframes) == 0 {
		return nil
	}
	var found []*KeyframesDeclaration
	seen := make(map[string]bool)
	for _, word := range strings.FieldsFunc(val, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	}) {
		if k, ok := g.keyframes[word]; ok && !seen[word] {
			seen[word] = true
			found = append(found, k)
		}
	}
	return found
}

// ResolveValue follows var() aliases from a variable to the first value that
// is not itself a single var() call. Alias cycles stop at the last value seen.
func (g *Graph) ResolveValue(name string) (string, bool) {
	v, ok := g.variables[name]
	if !ok {
		return "", false
	}
	visited := map[string]bool{name: true}
	for {
		val := v.Value()
		m := common.VarAliasRegexp.FindStringSubmatch(val)
		if m == nil || visited[m[1]] {
			return val, true
		}
		next, ok := g.variables[m[1]]
		if !ok {
			return val, true
		}
		visited[m[1]] = true
		v = next
	}
}

// Color resolves a variable and parses its value as a colour
func (g *Graph) Color(name string) (csscolorparser.Color, bool) {
	val, ok := g.ResolveValue(name)
	if !ok {
		return csscolorparser.Color{}, false
	}
	c, err := csscolorparser.Parse(val)
	if err != nil {
		return csscolorparser.Color{}, false
	}
	return c, true
}

func appendUnique(list []string, vs ...string) []string {
	for _, v := range vs {
		dup := false
		for _, have := range list {
			if have == v {
				dup = true
				break
			}
		}
		if !dup {
			list = append(list, v)
		}
	}
	return list
}
