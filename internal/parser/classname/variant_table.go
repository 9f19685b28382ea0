package classname

import "bennypowers.dev/mincss/internal/collections"

var breakpoints = []string{"sm", "md", "lg", "xl", "2xl"}

var containerBreakpoints = []string{
	"3xs", "2xs", "xs", "sm", "md", "lg", "xl", "2xl", "3xl", "4xl", "5xl", "6xl", "7xl",
}

// pseudoClassVariants can be combined with the nestable prefixes
var pseudoClassVariants = []string{
	"hover", "focus", "focus-within", "focus-visible", "active", "visited", "target",
	"first", "last", "only", "odd", "even", "first-of-type", "last-of-type", "only-of-type",
	"empty", "disabled", "enabled", "checked", "indeterminate", "default", "optional",
	"required", "valid", "invalid", "user-valid", "user-invalid", "in-range", "out-of-range",
	"placeholder-shown", "details-content", "autofill", "read-only", "read-write", "open",
	"inert",
}

var ariaVariants = []string{
	"aria-busy", "aria-checked", "aria-disabled", "aria-expanded", "aria-hidden",
	"aria-pressed", "aria-readonly", "aria-required", "aria-selected",
}

// uniqueVariants have no nestable combinations
var uniqueVariants = []string{
	"*", "**",
	"before", "after", "first-letter", "first-line", "marker", "selection", "file",
	"placeholder", "backdrop",
	"dark", "motion-safe", "motion-reduce", "contrast-more", "contrast-less", "print",
	"portrait", "landscape", "forced-colors", "inverted-colors", "noscript", "starting",
	"pointer-fine", "pointer-coarse", "pointer-none",
	"any-pointer-fine", "any-pointer-coarse", "any-pointer-none",
	"rtl", "ltr",
}

var nestablePrefixes = []string{"not", "group", "peer", "in", "has"}

// defaultVariants is built once and never mutated
var defaultVariants = buildDefaultVariants()

func buildDefaultVariants() collections.Set[string] {
	s := collections.NewSet[string]()
	s.Add(breakpoints...)
	for _, bp := range breakpoints {
		s.Add("max-" + bp)
	}
	for _, bp := range containerBreakpoints {
		s.Add("@"+bp, "@max-"+bp)
	}
	s.Add(uniqueVariants...)
	s.Add(ariaVariants...)
	for _, v := range pseudoClassVariants {
		s.Add(v)
		for _, prefix := range nestablePrefixes {
			s.Add(prefix + "-" + v)
		}
	}
	for _, v := range ariaVariants {
		for _, prefix := range nestablePrefixes {
			s.Add(prefix + "-" + v)
		}
	}
	return s
}

// IsDefaultVariant reports whether name is one of the built-in static variants
func IsDefaultVariant(name string) bool {
	return defaultVariants.Has(name)
}

// DefaultVariants returns the built-in static variant names in natural order
func DefaultVariants() []string {
	return collections.Sorted(defaultVariants)
}
