package classname

import "strings"

// parameterizedPrefixes take a bare or bracketed parameter and cannot wrap
// another variant. Longer prefixes come first so "nth-last-of-type-" wins over "nth-".
var parameterizedPrefixes = []string{
	"nth-last-of-type-",
	"nth-of-type-",
	"nth-last-",
	"nth-",
	"supports-",
	"@max-",
	"@min-",
	"max-",
	"min-",
	"aria-",
	"data-",
	"@",
}

// ClassifyVariant turns one variant segment into a typed node. Unrecognized
// segments become VariantCustom; this never fails.
func ClassifyVariant(segment string) Variant {
	base, mod := ExtractModifier(segment, nil)
	v := classifyVariant(base)
	v.Raw = segment
	v.Modifier = mod
	return v
}

func classifyVariant(s string) Variant {
	for _, prefix := range nestablePrefixes {
		rest, ok := strings.CutPrefix(s, prefix+"-")
		if !ok || rest == "" {
			continue
		}
		if isWrapped(rest, '[', ']') {
			return Variant{Kind: VariantArbitraryNestable, Prefix: prefix, Selector: unwrap(rest)}
		}
		inner := classifyVariant(rest)
		if inner.Kind == VariantCustom && IsDefaultVariant(s) {
			// "in-range" is a pseudo-class, not in(range)
			return Variant{Kind: VariantRegular, Name: s}
		}
		inner.Raw = rest
		return Variant{Kind: VariantNestable, Prefix: prefix, Inner: &inner}
	}

	for _, prefix := range parameterizedPrefixes {
		param, ok := strings.CutPrefix(s, prefix)
		if !ok || param == "" {
			continue
		}
		name := strings.TrimSuffix(prefix, "-")
		if isWrapped(param, '[', ']') {
			return Variant{Kind: VariantArbitraryNonNestable, Prefix: name, Selector: unwrap(param)}
		}
		return Variant{Kind: VariantNonNestable, Prefix: name, Param: param}
	}

	if isWrapped(s, '[', ']') {
		return Variant{Kind: VariantFullArbitrary, Selector: unwrap(s)}
	}

	if IsDefaultVariant(s) {
		return Variant{Kind: VariantRegular, Name: s}
	}

	return Variant{Kind: VariantCustom, Name: s}
}

func unwrap(s string) string {
	return s[1 : len(s)-1]
}
