package classname

import (
	"sort"
	"strings"
)

// UtilitySpec lists the parameter kinds a default utility accepts
type UtilitySpec struct {
	// Paramless utilities may be used bare, e.g. "border"
	Paramless bool
	// Keywords are static parameter values, e.g. "center" for "items"
	Keywords []string
	// Themes are themed token type patterns, e.g. "--color-*"
	Themes []string
	// Arbitrary utilities accept "[...]" and "(...)" parameters
	Arbitrary bool
	// Bracketless utilities accept bare numeric parameters, e.g. "p-4"
	Bracketless bool
	// Fraction utilities fold a numeric modifier into the parameter, e.g. "w-1/2"
	Fraction bool
	// BareVariables are theme variables a bracketless value is computed from, e.g. "--spacing"
	BareVariables []string
	// ModifierThemes are token type patterns a normal modifier is looked up against
	ModifierThemes []string
}

// Registry maps utility names to the parameters they accept.
// A Registry is read-only once built.
type Registry struct {
	specs map[string]UtilitySpec
	// keys in match order: longer first, then lexicographically descending
	keys []string
}

// NewRegistry builds a registry from specs
func NewRegistry(specs map[string]UtilitySpec) *Registry {
	r := &Registry{
		specs: make(map[string]UtilitySpec, len(specs)),
		keys:  make([]string, 0, len(specs)),
	}
	for name, spec := range specs {
		r.specs[name] = spec
		r.keys = append(r.keys, name)
	}
	sort.Slice(r.keys, func(i, j int) bool {
		a, b := r.keys[i], r.keys[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a > b
	})
	return r
}

// Lookup returns the spec registered under name
func (r *Registry) Lookup(name string) (UtilitySpec, bool) {
	spec, ok := r.specs[name]
	return spec, ok
}

// Len returns the number of registered utilities
func (r *Registry) Len() int {
	return len(r.keys)
}

// Match finds the longest registered name that root equals or starts with
// followed by "-", and returns that name and the parameter after the dash.
func (r *Registry) Match(root string) (name, param string, ok bool) {
	for _, key := range r.keys {
		if root == key {
			return key, "", true
		}
		if rest, found := strings.CutPrefix(root, key+"-"); found {
			return key, rest, true
		}
	}
	return "", "", false
}

var defaultRegistry = NewRegistry(defaultUtilities())

// DefaultRegistry returns the shared registry of built-in utilities
func DefaultRegistry() *Registry {
	return defaultRegistry
}

func paramless() UtilitySpec {
	return UtilitySpec{Paramless: true}
}

func keywords(kw ...string) UtilitySpec {
	return UtilitySpec{Keywords: kw, Arbitrary: true}
}

func colorSpec(kw ...string) UtilitySpec {
	return UtilitySpec{
		Themes:    []string{"--color-*"},
		Keywords:  append([]string{"inherit", "current", "transparent"}, kw...),
		Arbitrary: true,
	}
}

func spacingSpec(kw ...string) UtilitySpec {
	return UtilitySpec{
		Themes:        []string{"--spacing-*"},
		Keywords:      append([]string{"px"}, kw...),
		Arbitrary:     true,
		Bracketless:   true,
		BareVariables: []string{"--spacing"},
	}
}

func insetSpec() UtilitySpec {
	s := spacingSpec("auto", "full")
	s.Fraction = true
	return s
}

func sizeSpec() UtilitySpec {
	return UtilitySpec{
		Themes: []string{"--spacing-*", "--container-*"},
		Keywords: []string{
			"px", "auto", "full", "screen", "svw", "lvw", "dvw", "svh", "lvh", "dvh",
			"min", "max", "fit", "none", "prose", "lh",
		},
		Arbitrary:     true,
		Bracketless:   true,
		Fraction:      true,
		BareVariables: []string{"--spacing"},
	}
}

func numberSpec(kw ...string) UtilitySpec {
	return UtilitySpec{Keywords: kw, Arbitrary: true, Bracketless: true}
}

func filterSpec() UtilitySpec {
	return UtilitySpec{Paramless: true, Arbitrary: true, Bracketless: true}
}

func themedSpec(theme string, kw ...string) UtilitySpec {
	return UtilitySpec{Themes: []string{theme}, Keywords: kw, Arbitrary: true}
}

func radiusSpec() UtilitySpec {
	s := themedSpec("--radius-*", "none", "full")
	s.Paramless = true
	return s
}

func borderSpec() UtilitySpec {
	s := colorSpec("solid", "dashed", "dotted", "double", "hidden", "none", "collapse", "separate")
	s.Paramless = true
	s.Bracketless = true
	return s
}

func shadowSpec(theme string) UtilitySpec {
	return UtilitySpec{
		Paramless: true,
		Themes:    []string{theme, "--color-*"},
		Keywords:  []string{"none", "inherit", "current", "transparent"},
		Arbitrary: true,
	}
}

func defaultUtilities() map[string]UtilitySpec {
	u := map[string]UtilitySpec{
		// Layout
		"aspect":           {Themes: []string{"--aspect-*"}, Keywords: []string{"auto", "square", "video"}, Arbitrary: true, Bracketless: true, Fraction: true},
		"columns":          {Themes: []string{"--container-*"}, Keywords: []string{"auto"}, Arbitrary: true, Bracketless: true},
		"break-after":      keywords("auto", "avoid", "all", "avoid-page", "page", "left", "right", "column"),
		"break-before":     keywords("auto", "avoid", "all", "avoid-page", "page", "left", "right", "column"),
		"break-inside":     keywords("auto", "avoid", "avoid-page", "avoid-column"),
		"box-decoration":   keywords("slice", "clone"),
		"box":              keywords("border", "content"),
		"float":            keywords("right", "left", "start", "end", "none"),
		"clear":            keywords("left", "right", "both", "none", "start", "end"),
		"isolation":        keywords("auto"),
		"object":           keywords("contain", "cover", "fill", "none", "scale-down", "bottom", "center", "left", "left-bottom", "left-top", "right", "right-bottom", "right-top", "top"),
		"overflow":         keywords("auto", "hidden", "clip", "visible", "scroll"),
		"overflow-x":       keywords("auto", "hidden", "clip", "visible", "scroll"),
		"overflow-y":       keywords("auto", "hidden", "clip", "visible", "scroll"),
		"overscroll":       keywords("auto", "contain", "none"),
		"overscroll-x":     keywords("auto", "contain", "none"),
		"overscroll-y":     keywords("auto", "contain", "none"),
		"inset":            insetSpec(),
		"inset-x":          insetSpec(),
		"inset-y":          insetSpec(),
		"start":            insetSpec(),
		"end":              insetSpec(),
		"top":              insetSpec(),
		"right":            insetSpec(),
		"bottom":           insetSpec(),
		"left":             insetSpec(),
		"z":                numberSpec("auto"),
		"table":            keywords("auto", "fixed"),
		"caption":          keywords("top", "bottom"),
		"border-spacing":   spacingSpec(),
		"border-spacing-x": spacingSpec(),
		"border-spacing-y": spacingSpec(),

		// Flexbox and grid
		"basis":         sizeSpec(),
		"flex":          {Paramless: true, Keywords: []string{"row", "row-reverse", "col", "col-reverse", "wrap", "wrap-reverse", "nowrap", "auto", "initial", "none"}, Arbitrary: true, Bracketless: true, Fraction: true},
		"grow":          filterSpec(),
		"shrink":        filterSpec(),
		"order":         numberSpec("first", "last", "none"),
		"grid-cols":     numberSpec("none", "subgrid"),
		"grid-rows":     numberSpec("none", "subgrid"),
		"grid-flow":     keywords("row", "col", "dense", "row-dense", "col-dense"),
		"col":           numberSpec("auto"),
		"col-span":      numberSpec("full"),
		"col-start":     numberSpec("auto"),
		"col-end":       numberSpec("auto"),
		"row":           numberSpec("auto"),
		"row-span":      numberSpec("full"),
		"row-start":     numberSpec("auto"),
		"row-end":       numberSpec("auto"),
		"auto-cols":     keywords("auto", "min", "max", "fr"),
		"auto-rows":     keywords("auto", "min", "max", "fr"),
		"gap":           spacingSpec(),
		"gap-x":         spacingSpec(),
		"gap-y":         spacingSpec(),
		"justify":       keywords("normal", "start", "end", "center", "between", "around", "evenly", "stretch", "baseline"),
		"justify-items": keywords("normal", "start", "end", "center", "stretch"),
		"justify-self":  keywords("auto", "start", "end", "center", "stretch"),
		"content":       keywords("normal", "center", "start", "end", "between", "around", "evenly", "baseline", "stretch", "none"),
		"items":         keywords("start", "end", "center", "baseline", "stretch"),
		"self":          keywords("auto", "start", "end", "center", "stretch", "baseline"),
		"place-content": keywords("center", "start", "end", "between", "around", "evenly", "baseline", "stretch"),
		"place-items":   keywords("start", "end", "center", "baseline", "stretch"),
		"place-self":    keywords("auto", "start", "end", "center", "stretch"),

		// Spacing
		"p":       spacingSpec(),
		"px":      spacingSpec(),
		"py":      spacingSpec(),
		"ps":      spacingSpec(),
		"pe":      spacingSpec(),
		"pt":      spacingSpec(),
		"pr":      spacingSpec(),
		"pb":      spacingSpec(),
		"pl":      spacingSpec(),
		"m":       spacingSpec("auto"),
		"mx":      spacingSpec("auto"),
		"my":      spacingSpec("auto"),
		"ms":      spacingSpec("auto"),
		"me":      spacingSpec("auto"),
		"mt":      spacingSpec("auto"),
		"mr":      spacingSpec("auto"),
		"mb":      spacingSpec("auto"),
		"ml":      spacingSpec("auto"),
		"space-x": spacingSpec("reverse"),
		"space-y": spacingSpec("reverse"),

		// Sizing
		"w":     sizeSpec(),
		"min-w": sizeSpec(),
		"max-w": sizeSpec(),
		"h":     sizeSpec(),
		"min-h": sizeSpec(),
		"max-h": sizeSpec(),
		"size":  sizeSpec(),

		// Typography
		"font":             {Themes: []string{"--font-*", "--font-weight-*"}, Arbitrary: true},
		"text":             {Themes: []string{"--text-*", "--color-*"}, Keywords: []string{"left", "center", "right", "justify", "start", "end", "wrap", "nowrap", "balance", "pretty", "ellipsis", "clip", "inherit", "current", "transparent"}, Arbitrary: true, ModifierThemes: []string{"--leading-*"}},
		"tracking":         themedSpec("--tracking-*"),
		"leading":          {Themes: []string{"--leading-*"}, Keywords: []string{"none"}, Arbitrary: true, Bracketless: true, BareVariables: []string{"--spacing"}},
		"line-clamp":       numberSpec("none"),
		"list":             keywords("inside", "outside", "disc", "decimal", "none"),
		"list-image":       keywords("none"),
		"decoration":       {Themes: []string{"--color-*"}, Keywords: []string{"solid", "double", "dotted", "dashed", "wavy", "auto", "from-font", "clone", "slice", "inherit", "current", "transparent"}, Arbitrary: true, Bracketless: true},
		"underline-offset": numberSpec("auto"),
		"indent":           spacingSpec(),
		"align":            keywords("baseline", "top", "middle", "bottom", "text-top", "text-bottom", "sub", "super"),
		"whitespace":       keywords("normal", "nowrap", "pre", "pre-line", "pre-wrap", "break-spaces"),
		"break":            keywords("normal", "words", "all", "keep"),
		"wrap":             keywords("break-word", "anywhere", "normal"),
		"hyphens":          keywords("none", "manual", "auto"),

		// Backgrounds and gradients
		"bg":        colorSpec(),
		"bg-clip":   keywords("border", "padding", "content", "text"),
		"bg-origin": keywords("border", "padding", "content"),
		"bg-linear": {Paramless: true, Keywords: []string{"to-t", "to-tr", "to-r", "to-br", "to-b", "to-bl", "to-l", "to-tl"}, Arbitrary: true, Bracketless: true},
		"bg-radial": {Paramless: true, Arbitrary: true},
		"bg-conic":  {Paramless: true, Arbitrary: true, Bracketless: true},
		"from":      {Themes: []string{"--color-*"}, Keywords: []string{"inherit", "current", "transparent"}, Arbitrary: true, Bracketless: true},
		"via":       {Themes: []string{"--color-*"}, Keywords: []string{"inherit", "current", "transparent"}, Arbitrary: true, Bracketless: true},
		"to":        {Themes: []string{"--color-*"}, Keywords: []string{"inherit", "current", "transparent"}, Arbitrary: true, Bracketless: true},
		"bg-blend":  keywords("normal", "multiply", "screen", "overlay", "darken", "lighten", "color-dodge", "color-burn", "hard-light", "soft-light", "difference", "exclusion", "hue", "saturation", "color", "luminosity"),
		"mix-blend": keywords("normal", "multiply", "screen", "overlay", "darken", "lighten", "color-dodge", "color-burn", "hard-light", "soft-light", "difference", "exclusion", "hue", "saturation", "color", "luminosity", "plus-darker", "plus-lighter"),

		// Borders
		"rounded":        radiusSpec(),
		"rounded-t":      radiusSpec(),
		"rounded-r":      radiusSpec(),
		"rounded-b":      radiusSpec(),
		"rounded-l":      radiusSpec(),
		"rounded-s":      radiusSpec(),
		"rounded-e":      radiusSpec(),
		"rounded-tl":     radiusSpec(),
		"rounded-tr":     radiusSpec(),
		"rounded-br":     radiusSpec(),
		"rounded-bl":     radiusSpec(),
		"rounded-ss":     radiusSpec(),
		"rounded-se":     radiusSpec(),
		"rounded-ee":     radiusSpec(),
		"rounded-es":     radiusSpec(),
		"border":         borderSpec(),
		"border-x":       borderSpec(),
		"border-y":       borderSpec(),
		"border-s":       borderSpec(),
		"border-e":       borderSpec(),
		"border-t":       borderSpec(),
		"border-r":       borderSpec(),
		"border-b":       borderSpec(),
		"border-l":       borderSpec(),
		"divide":         colorSpec("solid", "dashed", "dotted", "double", "none"),
		"divide-x":       {Paramless: true, Keywords: []string{"reverse"}, Arbitrary: true, Bracketless: true},
		"divide-y":       {Paramless: true, Keywords: []string{"reverse"}, Arbitrary: true, Bracketless: true},
		"outline":        {Paramless: true, Themes: []string{"--color-*"}, Keywords: []string{"hidden", "none", "dashed", "dotted", "double", "solid", "inherit", "current", "transparent"}, Arbitrary: true, Bracketless: true},
		"outline-offset": numberSpec(),
		"ring":           {Paramless: true, Themes: []string{"--color-*"}, Keywords: []string{"inherit", "current", "transparent"}, Arbitrary: true, Bracketless: true},
		"inset-ring":     {Paramless: true, Themes: []string{"--color-*"}, Keywords: []string{"inherit", "current", "transparent"}, Arbitrary: true, Bracketless: true},
		"ring-offset":    {Themes: []string{"--color-*"}, Keywords: []string{"inherit", "current", "transparent"}, Arbitrary: true, Bracketless: true},

		// Effects
		"shadow":       shadowSpec("--shadow-*"),
		"inset-shadow": shadowSpec("--inset-shadow-*"),
		"text-shadow":  shadowSpec("--text-shadow-*"),
		"drop-shadow":  shadowSpec("--drop-shadow-*"),
		"opacity":      numberSpec(),

		// Filters
		"blur":                {Paramless: true, Themes: []string{"--blur-*"}, Keywords: []string{"none"}, Arbitrary: true},
		"backdrop-blur":       {Paramless: true, Themes: []string{"--blur-*"}, Keywords: []string{"none"}, Arbitrary: true},
		"brightness":          filterSpec(),
		"contrast":            filterSpec(),
		"grayscale":           filterSpec(),
		"hue-rotate":          filterSpec(),
		"invert":              filterSpec(),
		"saturate":            filterSpec(),
		"sepia":               filterSpec(),
		"backdrop-brightness": filterSpec(),
		"backdrop-contrast":   filterSpec(),
		"backdrop-grayscale":  filterSpec(),
		"backdrop-hue-rotate": filterSpec(),
		"backdrop-invert":     filterSpec(),
		"backdrop-opacity":    filterSpec(),
		"backdrop-saturate":   filterSpec(),
		"backdrop-sepia":      filterSpec(),

		// Transitions and animation
		"transition": {Paramless: true, Keywords: []string{"all", "colors", "opacity", "shadow", "transform", "none"}, Arbitrary: true},
		"duration":   numberSpec("initial"),
		"delay":      numberSpec(),
		"ease":       themedSpec("--ease-*", "linear", "initial"),
		"animate":    themedSpec("--animate-*", "none"),

		// Transforms
		"scale":       numberSpec("none"),
		"scale-x":     numberSpec(),
		"scale-y":     numberSpec(),
		"rotate":      numberSpec("none"),
		"translate":   insetSpec(),
		"translate-x": insetSpec(),
		"translate-y": insetSpec(),
		"skew":        numberSpec(),
		"skew-x":      numberSpec(),
		"skew-y":      numberSpec(),
		"origin":      keywords("center", "top", "top-right", "right", "bottom-right", "bottom", "bottom-left", "left", "top-left"),
		"perspective": themedSpec("--perspective-*", "none"),

		// Interactivity
		"accent":         colorSpec("auto"),
		"caret":          colorSpec(),
		"appearance":     keywords("none", "auto"),
		"cursor":         keywords("auto", "default", "pointer", "wait", "text", "move", "help", "not-allowed", "none", "context-menu", "progress", "cell", "crosshair", "vertical-text", "alias", "copy", "no-drop", "grab", "grabbing", "all-scroll", "col-resize", "row-resize", "zoom-in", "zoom-out"),
		"pointer-events": keywords("none", "auto"),
		"resize":         {Paramless: true, Keywords: []string{"none", "x", "y"}},
		"scroll":         keywords("auto", "smooth"),
		"scroll-m":       spacingSpec("auto"),
		"scroll-mx":      spacingSpec("auto"),
		"scroll-my":      spacingSpec("auto"),
		"scroll-p":       spacingSpec(),
		"scroll-px":      spacingSpec(),
		"scroll-py":      spacingSpec(),
		"snap":           keywords("start", "end", "center", "align-none", "none", "x", "y", "both", "mandatory", "proximity", "normal", "always"),
		"touch":          keywords("auto", "none", "pan-x", "pan-left", "pan-right", "pan-y", "pan-up", "pan-down", "pinch-zoom", "manipulation"),
		"select":         keywords("none", "text", "all", "auto"),
		"will-change":    keywords("auto", "scroll", "contents", "transform"),

		// SVG
		"fill":   colorSpec("none"),
		"stroke": {Themes: []string{"--color-*"}, Keywords: []string{"none", "inherit", "current", "transparent"}, Arbitrary: true, Bracketless: true},

		// Accessibility
		"forced-color-adjust": keywords("auto", "none"),
	}

	for _, name := range []string{
		"block", "inline-block", "inline", "inline-flex", "inline-table", "table-caption",
		"table-cell", "table-column", "table-column-group", "table-footer-group",
		"table-header-group", "table-row-group", "table-row", "flow-root", "grid", "inline-grid",
		"contents", "list-item", "hidden",
		"static", "fixed", "absolute", "relative", "sticky",
		"visible", "invisible", "collapse", "isolate",
		"antialiased", "subpixel-antialiased", "italic", "not-italic", "uppercase", "lowercase",
		"capitalize", "normal-case", "underline", "overline", "line-through", "no-underline",
		"truncate", "sr-only", "not-sr-only", "container", "@container",
	} {
		u[name] = paramless()
	}

	return u
}
