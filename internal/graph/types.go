package graph

// VariableDeclaration is one declaration of a custom property
type VariableDeclaration struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
	// Context is "@theme" plus its options for theme variables, or the
	// selector of the rule the declaration appears in
	Context string `yaml:"context"`
	// AtRules are the enclosing conditional at-rules, outermost first
	AtRules    []string `yaml:"atRules,omitempty"`
	Theme      bool     `yaml:"theme,omitempty"`
	DirectDeps []string `yaml:"directDeps,omitempty"`
	Order      int      `yaml:"-"`
}

// Variable groups every declaration of one custom property. DirectDeps is
// the union of the declarations' direct dependencies in first-seen order.
type Variable struct {
	Name         string
	DirectDeps   []string
	Declarations []*VariableDeclaration
}

// Value returns the value of the first declaration
func (v *Variable) Value() string {
	return v.Declarations[0].Value
}

// UtilityDeclaration is an @utility block.
//
// Static utilities match a class name exactly. Dynamic utilities are
// declared as "name-*" and match any class starting with "name-"; the rest
// of the class is their parameter.
type UtilityDeclaration struct {
	Name               string   `yaml:"name"`
	Dynamic            bool     `yaml:"dynamic,omitempty"`
	Prefix             string   `yaml:"prefix,omitempty"`
	DirectDeps         []string `yaml:"directDeps,omitempty"`
	ValueTokenTypes    []string `yaml:"valueTokenTypes,omitempty"`
	ModifierTokenTypes []string `yaml:"modifierTokenTypes,omitempty"`
	AppliedClassNames  []string `yaml:"appliedClassNames,omitempty"`
	VariantsUsed       []string `yaml:"variantsUsed,omitempty"`
	Source             string   `yaml:"-"`
	Order              int      `yaml:"-"`
}

// CustomVariantDeclaration is a @custom-variant rule, either the short
// form with a parenthesized selector or the block form
type CustomVariantDeclaration struct {
	Name         string   `yaml:"name"`
	Selector     string   `yaml:"selector,omitempty"`
	DirectDeps   []string `yaml:"directDeps,omitempty"`
	VariantsUsed []string `yaml:"variantsUsed,omitempty"`
	Source       string   `yaml:"-"`
	Order        int      `yaml:"-"`
}

// KeyframesDeclaration is an @keyframes block declared inside @theme
type KeyframesDeclaration struct {
	Name   string
	Source string
	Order  int
}
