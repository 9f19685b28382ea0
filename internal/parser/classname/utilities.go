package classname

import (
	"slices"
	"strings"
)

// ClassifyUtility classifies a utility segment against the default registry
func ClassifyUtility(segment string) Utility {
	return defaultRegistry.Classify(segment)
}

// Classify classifies a utility segment (without its modifier).
//
// A leading "-" marks a negative value. A segment that is a single bracketed
// expression is a full arbitrary property. Otherwise the longest registered
// name decides the family and the parameter after it is classified as
// arbitrary, keyword, bare number or theme lookup. Segments no registered name
// matches are left as UtilityCustom for the stylesheet's @utility table.
func (r *Registry) Classify(segment string) Utility {
	var u Utility
	root := segment
	if rest, ok := strings.CutPrefix(segment, "-"); ok && rest != "" {
		u.Negative = true
		root = rest
	}

	if isWrapped(root, '[', ']') {
		u.Kind = UtilityFullArbitrary
		u.Raw = root
		return u
	}

	name, param, ok := r.Match(root)
	if !ok {
		u.Kind = UtilityCustom
		u.Name = root
		return u
	}

	spec := r.specs[name]
	u.Name = name
	u.Param = param

	switch {
	case param == "":
		u.Kind = UtilityStatic
	case isWrapped(param, '[', ']'), isWrapped(param, '(', ')'):
		u.Kind = UtilityArbitraryParam
		u.Raw = param
	case slices.Contains(spec.Keywords, param):
		u.Kind = UtilityStatic
	case spec.Bracketless && isNumeric(param):
		u.Kind = UtilityBracketlessParam
	case len(spec.Themes) > 0:
		u.Kind = UtilityThemedParam
		u.ValueTokenTypes = slices.Clone(spec.Themes)
	case startsWithDigit(param):
		u.Kind = UtilityBracketlessParam
	default:
		u.Kind = UtilityStatic
	}
	return u
}

// isNumeric reports whether s is a plain number with an optional trailing "%",
// such as "4", "1.5", ".5" or "10%"
func isNumeric(s string) bool {
	s = strings.TrimSuffix(s, "%")
	if s == "" || s == "." {
		return false
	}
	dot := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '.' && !dot:
			dot = true
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

func startsWithDigit(s string) bool {
	return s != "" && (s[0] >= '0' && s[0] <= '9' || s[0] == '.')
}
