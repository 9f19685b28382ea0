package resolver

import (
	"go.uber.org/multierr"

	"bennypowers.dev/mincss/internal/collections"
	"bennypowers.dev/mincss/internal/parser/classname"
)

// Usage accumulates what a set of class names needs from a stylesheet
type Usage struct {
	// Variables are the custom properties needed, transitively
	Variables collections.Set[string]
	// Utilities are the declared names of the @utility blocks used
	Utilities collections.Set[string]
	// CustomVariants are the names of the @custom-variant rules used
	CustomVariants collections.Set[string]
	// Descriptors are the parsed class names in input order
	Descriptors []*classname.Descriptor
	// Errors holds one error per class name that could not be parsed
	Errors []error
}

// NewUsage returns an empty usage
func NewUsage() *Usage {
	return &Usage{
		Variables:      collections.NewSet[string](),
		Utilities:      collections.NewSet[string](),
		CustomVariants: collections.NewSet[string](),
	}
}

// Merge adds everything in other to u
func (u *Usage) Merge(other *Usage) {
	u.Variables.Union(other.Variables)
	u.Utilities.Union(other.Utilities)
	u.CustomVariants.Union(other.CustomVariants)
	u.Descriptors = append(u.Descriptors, other.Descriptors...)
	u.Errors = append(u.Errors, other.Errors...)
}

// Err combines the per-class errors, or returns nil
func (u *Usage) Err() error {
	return multierr.Combine(u.Errors...)
}

// VariableNames returns the used variables in natural order
func (u *Usage) VariableNames() []string {
	return collections.Sorted(u.Variables)
}

// UtilityNames returns the used @utility names in natural order
func (u *Usage) UtilityNames() []string {
	return collections.Sorted(u.Utilities)
}

// CustomVariantNames returns the used @custom-variant names in natural order
func (u *Usage) CustomVariantNames() []string {
	return collections.Sorted(u.CustomVariants)
}
