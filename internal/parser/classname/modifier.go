package classname

import (
	"strings"

	"bennypowers.dev/mincss/internal/parser/value"
)

var closerFor = map[byte]byte{
	']': '[',
	')': '(',
	'}': '{',
	'>': '<',
}

// modifierIndex returns the index of the first "/" outside of any bracket,
// or -1. A closer only pops the stack when it matches the innermost opener.
func modifierIndex(s string) int {
	var stack []byte
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			i++
		case '[', '(', '{', '<':
			stack = append(stack, c)
		case ']', ')', '}', '>':
			if n := len(stack); n > 0 && stack[n-1] == closerFor[c] {
				stack = stack[:n-1]
			}
		case '/':
			if len(stack) == 0 {
				return i
			}
		}
	}
	return -1
}

// SplitModifier splits s at its modifier boundary. ok is false when s has no modifier.
func SplitModifier(s string) (base, modifier string, ok bool) {
	idx := modifierIndex(s)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+1:], true
}

// ExtractModifier splits a trailing "/modifier" off s and classifies it.
// tokenTypes are the themed token patterns (e.g. "--opacity-*") a normal
// modifier is looked up against. The modifier is nil when s has none.
func ExtractModifier(s string, tokenTypes []string) (string, *Modifier) {
	base, raw, ok := SplitModifier(s)
	if !ok {
		return s, nil
	}
	return base, ParseModifier(raw, tokenTypes)
}

// ParseModifier classifies the text after a modifier "/"
func ParseModifier(raw string, tokenTypes []string) *Modifier {
	m := &Modifier{Raw: raw, Kind: ModifierNormal}
	switch {
	case isWrapped(raw, '[', ']'):
		m.Kind = ModifierArbitrary
		m.Value = raw[1 : len(raw)-1]
		m.Variables = value.ScanVariables(m.Value)
	case isWrapped(raw, '(', ')'):
		m.Kind = ModifierCustomProperty
		m.Value = raw[1 : len(raw)-1]
		m.Variables = value.ScanCustomProperty(m.Value)
	default:
		m.Variables = ThemeVariableNames(tokenTypes, raw)
	}
	return m
}

// ThemeVariableNames expands token type patterns ending in "*" with param,
// so "--color-*" and "red-500" give "--color-red-500". Other patterns are ignored.
func ThemeVariableNames(patterns []string, param string) []string {
	if param == "" {
		return nil
	}
	var names []string
	for _, p := range patterns {
		if prefix, ok := strings.CutSuffix(p, "*"); ok && strings.HasPrefix(prefix, "--") {
			names = append(names, prefix+param)
		}
	}
	return names
}

func isWrapped(s string, open, close byte) bool {
	return len(s) >= 2 && s[0] == open && s[len(s)-1] == close
}
