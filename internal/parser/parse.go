// Package parser dispatches content files to the CSS, HTML and JS parsers.
package parser

import (
	"path/filepath"
	"strings"

	"bennypowers.dev/mincss/internal/parser/css"
	"bennypowers.dev/mincss/internal/parser/html"
	"bennypowers.dev/mincss/internal/parser/js"
)

// languageIDs maps file extensions to language IDs
var languageIDs = map[string]string{
	".css":    "css",
	".html":   "html",
	".htm":    "html",
	".vue":    "html",
	".svelte": "html",
	".astro":  "html",
	".js":     "javascript",
	".mjs":    "javascript",
	".cjs":    "javascript",
	".jsx":    "javascriptreact",
	".ts":     "typescript",
	".mts":    "typescript",
	".tsx":    "typescriptreact",
}

// cssLanguages maps language IDs to the parser category they use.
// "css" → direct CSS, "html" → HTML parser, "js" → JS parser.
var cssLanguages = map[string]string{
	"css":             "css",
	"html":            "html",
	"javascript":      "js",
	"javascriptreact": "js",
	"typescript":      "js",
	"typescriptreact": "js",
}

// LanguageForPath returns the language ID for a file name, or "" for
// files none of the parsers understand
func LanguageForPath(path string) string {
	return languageIDs[strings.ToLower(filepath.Ext(path))]
}

// IsCSSSupportedLanguage returns true if the language supports CSS extraction
func IsCSSSupportedLanguage(languageID string) bool {
	_, ok := cssLanguages[languageID]
	return ok
}

// ParseCSSFromDocument extracts CSS parse results from any supported document type.
// Dispatches to the appropriate parser based on language ID.
func ParseCSSFromDocument(content, languageID string) (*css.ParseResult, error) {
	switch cssLanguages[languageID] {
	case "css":
		p := css.AcquireParser()
		defer css.ReleaseParser(p)
		return p.Parse(content)

	case "html":
		p := html.AcquireParser()
		defer html.ReleaseParser(p)
		return p.ParseCSS(content)

	case "js":
		p := js.AcquireParser()
		defer js.ReleaseParser(p)
		return p.ParseCSS(content)

	default:
		return nil, nil
	}
}

// ClassString is text from a document that holds whitespace-separated class names
type ClassString struct {
	Value string
	// Line and Column are zero-based; Column counts bytes
	Line   uint
	Column uint
}

// ClassStringsFromDocument returns the class-bearing strings of a document.
// HTML documents yield class attributes and JS documents class attributes,
// class helper arguments and html templates. Stylesheets yield their @apply
// lists. For any other language the whole content is returned, to be split
// by the caller.
func ClassStringsFromDocument(content, languageID string) []ClassString {
	var out []ClassString
	switch cssLanguages[languageID] {
	case "css":
		p := css.AcquireParser()
		defer css.ReleaseParser(p)
		result, err := p.Parse(content)
		if err != nil {
			return nil
		}
		for _, a := range result.Applies {
			out = append(out, ClassString{
				Value:  strings.Join(a.ClassNames, " "),
				Line:   uint(a.Range.Start.Line),
				Column: uint(a.Range.Start.Character),
			})
		}

	case "html":
		p := html.AcquireParser()
		defer html.ReleaseParser(p)
		for _, attr := range p.ClassAttributes(content) {
			out = append(out, ClassString{Value: attr.Value, Line: attr.StartLine, Column: attr.StartCol})
		}

	case "js":
		p := js.AcquireParser()
		defer js.ReleaseParser(p)
		for _, s := range p.ClassStrings(content) {
			out = append(out, ClassString{Value: s.Value, Line: s.StartLine, Column: s.StartCol})
		}

	default:
		out = append(out, ClassString{Value: content})
	}
	return out
}
