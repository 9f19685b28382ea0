package common

import (
	"strings"
)

// ReferenceType indicates the type of reference
type ReferenceType int

const (
	// CurlyBraceReference is a {token.path} style reference
	CurlyBraceReference ReferenceType = iota

	// JSONPointerReference is a $ref field
	JSONPointerReference
)

// Reference represents a reference to another token
type Reference struct {
	Type ReferenceType
	Path string
}

// ExtractReferences extracts curly brace references from a string value
func ExtractReferences(content string) []Reference {
	var refs []Reference
	for _, match := range CurlyBraceReferenceRegexp.FindAllStringSubmatch(content, -1) {
		if len(match) > 1 {
			refs = append(refs, Reference{
				Type: CurlyBraceReference,
				Path: match[1],
			})
		}
	}
	return refs
}

// ExtractReferencesFromValue extracts references from any value type.
// Strings are searched for curly brace references and objects for a $ref field.
func ExtractReferencesFromValue(value any) []Reference {
	switch v := value.(type) {
	case string:
		return ExtractReferences(v)
	case map[string]any:
		if refPath, ok := v["$ref"].(string); ok {
			return []Reference{{
				Type: JSONPointerReference,
				Path: ConvertJSONPointerToTokenPath(refPath),
			}}
		}
	}
	return nil
}

// ConvertJSONPointerToTokenPath converts a JSON Pointer path to a token path
// Automatically strips the "#/" prefix if present
// Examples:
//
//	"#/color/brand/primary" -> "color.brand.primary"
//	"color/brand/primary" -> "color.brand.primary"
func ConvertJSONPointerToTokenPath(jsonPointer string) string {
	jsonPointer = strings.TrimPrefix(jsonPointer, "#/")
	return strings.ReplaceAll(jsonPointer, "/", ".")
}

// TokenPathToVariable converts a dotted token path to a custom property name
// Example: "color.brand", "ds" -> "--ds-color-brand"
func TokenPathToVariable(path, prefix string) string {
	name := strings.ReplaceAll(path, ".", "-")
	if prefix != "" {
		name = prefix + "-" + name
	}
	return "--" + name
}

// RewriteReferences replaces every {token.path} reference in value with the
// var() call for that token
// Example: "0 0 4px {color.shadow}" -> "0 0 4px var(--color-shadow)"
func RewriteReferences(value, prefix string) string {
	return CurlyBraceReferenceRegexp.ReplaceAllStringFunc(value, func(m string) string {
		path := strings.TrimSpace(m[1 : len(m)-1])
		return "var(" + TokenPathToVariable(path, prefix) + ")"
	})
}

// NormalizeLineEndings normalizes line endings to LF for consistent processing
func NormalizeLineEndings(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return content
}
