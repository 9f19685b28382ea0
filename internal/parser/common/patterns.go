package common

import (
	"regexp"
	"strings"
)

// Shared regex patterns for stylesheet and design token text

// CurlyBraceReferenceRegexp matches curly brace token references: {token.reference.path}
var CurlyBraceReferenceRegexp = regexp.MustCompile(`\{([^}]+)\}`)

// JSONPointerReferenceRegexp matches JSON Pointer references in both JSON and YAML:
// JSON: "$ref": "#/path/to/token"
// YAML: $ref: "#/path/to/token" or $ref: '#/path/to/token'
var JSONPointerReferenceRegexp = regexp.MustCompile(`"?\$ref"?\s*:\s*["']?(#[^"'\s]+)["']?`)

// TokenTypePatternRegexp matches a themed token type pattern such as --color-*
var TokenTypePatternRegexp = regexp.MustCompile(`^--[A-Za-z0-9_-]+-\*$`)

// ThemeFunctionRegexp matches --value(...) and --modifier(...) calls in utility bodies.
// Group 1 is the function name, group 2 its comma separated arguments.
var ThemeFunctionRegexp = regexp.MustCompile(`--(value|modifier)\(([^()]*)\)`)

// VarAliasRegexp matches a value that is exactly one var() call, capturing the variable:
// var(--color-blue-500) or var(--a, fallback)
var VarAliasRegexp = regexp.MustCompile(`^var\(\s*(--[A-Za-z0-9_-]+)\s*(?:,.*)?\)$`)

// ThemeFunctionArgs returns the token type patterns passed to --value() and
// --modifier() in a declaration value
func ThemeFunctionArgs(value string) (valueTypes, modifierTypes []string) {
	for _, m := range ThemeFunctionRegexp.FindAllStringSubmatch(value, -1) {
		for _, arg := range splitArgs(m[2]) {
			if !TokenTypePatternRegexp.MatchString(arg) {
				continue
			}
			if m[1] == "value" {
				valueTypes = append(valueTypes, arg)
			} else {
				modifierTypes = append(modifierTypes, arg)
			}
		}
	}
	return valueTypes, modifierTypes
}

func splitArgs(s string) []string {
	var args []string
	for a := range strings.SplitSeq(s, ",") {
		if a = strings.TrimSpace(a); a != "" {
			args = append(args, a)
		}
	}
	return args
}
