package classname

// VariantKind identifies the shape of a variant node
type VariantKind int

const (
	// VariantRegular is a known static variant such as "hover" or "md"
	VariantRegular VariantKind = iota
	// VariantCustom is an unrecognized variant, presumed declared by @custom-variant
	VariantCustom
	// VariantNestable wraps another variant, e.g. "group-hover" is group(hover)
	VariantNestable
	// VariantArbitraryNestable is a nestable prefix with a bracketed selector, e.g. "has-[a]"
	VariantArbitraryNestable
	// VariantNonNestable is a parameterized prefix with a bare parameter, e.g. "max-md"
	VariantNonNestable
	// VariantArbitraryNonNestable is a parameterized prefix with a bracketed parameter, e.g. "data-[open]"
	VariantArbitraryNonNestable
	// VariantFullArbitrary is a bare bracketed selector, e.g. "[&>*]"
	VariantFullArbitrary
)

var variantKindNames = map[VariantKind]string{
	VariantRegular:              "regular",
	VariantCustom:               "custom",
	VariantNestable:             "nestable",
	VariantArbitraryNestable:    "arbitrary-nestable",
	VariantNonNestable:          "non-nestable",
	VariantArbitraryNonNestable: "arbitrary-non-nestable",
	VariantFullArbitrary:        "full-arbitrary",
}

func (k VariantKind) String() string {
	return variantKindNames[k]
}

// MarshalText encodes the kind by name
func (k VariantKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Variant is a classified variant segment.
//
// Which fields are set depends on Kind:
//   - VariantRegular, VariantCustom: Name
//   - VariantNestable: Prefix, Inner
//   - VariantArbitraryNestable, VariantArbitraryNonNestable: Prefix, Selector
//   - VariantNonNestable: Prefix, Param
//   - VariantFullArbitrary: Selector
type Variant struct {
	Kind     VariantKind `yaml:"kind"`
	Raw      string      `yaml:"raw"`
	Name     string      `yaml:"name,omitempty"`
	Prefix   string      `yaml:"prefix,omitempty"`
	Selector string      `yaml:"selector,omitempty"`
	Param    string      `yaml:"param,omitempty"`
	Inner    *Variant    `yaml:"inner,omitempty"`
	Modifier *Modifier   `yaml:"modifier,omitempty"`
}

// Walk calls fn for v and then for every variant nested inside it, outermost first
func (v *Variant) Walk(fn func(*Variant)) {
	for cur := v; cur != nil; cur = cur.Inner {
		fn(cur)
	}
}

// UtilityKind identifies how a utility segment was matched
type UtilityKind int

const (
	// UtilityStatic is a registry utility with no parameter or a keyword parameter
	UtilityStatic UtilityKind = iota
	// UtilityThemedParam is a registry utility whose parameter names a theme token
	UtilityThemedParam
	// UtilityArbitraryParam is a registry utility with a bracketed "[...]" or "(...)" parameter
	UtilityArbitraryParam
	// UtilityBracketlessParam is a registry utility with a bare numeric parameter
	UtilityBracketlessParam
	// UtilityFullArbitrary is a bracketed property:value pair, e.g. "[mask-type:luminance]"
	UtilityFullArbitrary
	// UtilityCustom did not match the registry and awaits lookup among @utility declarations
	UtilityCustom
)

var utilityKindNames = map[UtilityKind]string{
	UtilityStatic:           "static",
	UtilityThemedParam:      "themed-param",
	UtilityArbitraryParam:   "arbitrary-param",
	UtilityBracketlessParam: "bracketless-param",
	UtilityFullArbitrary:    "full-arbitrary",
	UtilityCustom:           "custom-unresolved",
}

func (k UtilityKind) String() string {
	return utilityKindNames[k]
}

// MarshalText encodes the kind by name
func (k UtilityKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Utility is a classified utility segment.
//
// Name is the registry key for default utilities and the full segment
// (without the negative sign) for UtilityCustom. Raw holds the bracketed
// text for UtilityArbitraryParam and UtilityFullArbitrary.
type Utility struct {
	Kind            UtilityKind `yaml:"kind"`
	Name            string      `yaml:"name,omitempty"`
	Param           string      `yaml:"param,omitempty"`
	Raw             string      `yaml:"raw,omitempty"`
	ValueTokenTypes []string    `yaml:"valueTokenTypes,omitempty"`
	Negative        bool        `yaml:"negative,omitempty"`
}

// Segment rebuilds the utility text without its sign, e.g. "bg-red-500"
func (u Utility) Segment() string {
	switch {
	case u.Kind == UtilityFullArbitrary:
		return u.Raw
	case u.Param == "":
		return u.Name
	}
	return u.Name + "-" + u.Param
}

// ModifierKind identifies the form of a "/modifier" suffix
type ModifierKind int

const (
	// ModifierNormal is a bare modifier such as "/50"
	ModifierNormal ModifierKind = iota
	// ModifierArbitrary is a bracketed modifier such as "/[0.37]"
	ModifierArbitrary
	// ModifierCustomProperty is a parenthesized modifier such as "/(--alpha)"
	ModifierCustomProperty
)

var modifierKindNames = map[ModifierKind]string{
	ModifierNormal:         "normal",
	ModifierArbitrary:      "arbitrary",
	ModifierCustomProperty: "custom-property",
}

func (k ModifierKind) String() string {
	return modifierKindNames[k]
}

// MarshalText encodes the kind by name
func (k ModifierKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Modifier is a classified "/modifier" suffix.
//
// Value is the text inside the brackets or parentheses for the arbitrary
// and custom-property kinds. Variables lists the custom properties the
// modifier may reference: those found by scanning Value, or for normal
// modifiers the names synthesized from the expected token types.
type Modifier struct {
	Raw       string       `yaml:"raw"`
	Kind      ModifierKind `yaml:"kind"`
	Value     string       `yaml:"value,omitempty"`
	Variables []string     `yaml:"variables,omitempty"`
}

// Descriptor is the structured form of one class name
type Descriptor struct {
	ClassName string    `yaml:"className"`
	Variants  []Variant `yaml:"variants"`
	Utility   Utility   `yaml:"utility"`
	Modifier  *Modifier `yaml:"modifier,omitempty"`
	Important bool      `yaml:"important,omitempty"`
}
