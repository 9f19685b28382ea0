// Package value extracts custom-property references from CSS value text.
//
// The scanner is total: it never fails on malformed input, unparsable
// fragments are skipped and invalid var() arguments are reported through
// the logger.
package value

import (
	"errors"
	"fmt"
	"strings"

	"bennypowers.dev/mincss/internal/log"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ErrInvalidVariableName indicates a var() argument that does not start with "--"
var ErrInvalidVariableName = errors.New("invalid css variable name")

// InvalidVariableError describes a var() call whose first argument is not a custom property
type InvalidVariableError struct {
	Value    string
	Argument string
}

func (e *InvalidVariableError) Error() string {
	return fmt.Sprintf("var() argument %q in %q does not start with \"--\"", e.Argument, e.Value)
}

func (e *InvalidVariableError) Unwrap() error {
	return ErrInvalidVariableName
}

// ScanVariables returns the custom properties referenced through var() in
// value, in order of first appearance and without duplicates.
func ScanVariables(value string) []string {
	names, _ := scan(value)
	return names
}

// Diagnose returns the invalid var() calls found in value
func Diagnose(value string) []error {
	_, errs := scan(value)
	return errs
}

// ScanCustomProperty scans the payload of a parenthesized custom-property
// reference such as the "--brand" in "bg-(--brand)". A payload starting with
// "--" is itself the reference.
func ScanCustomProperty(payload string) []string {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "--") {
		return ScanVariables("var(" + payload + ")")
	}
	return ScanVariables(payload)
}

// ScanRaw scans a raw bracketed parameter: "[...]" is an arbitrary value and
// "(...)" a custom-property reference. Anything else is scanned as-is.
func ScanRaw(raw string) []string {
	switch {
	case len(raw) >= 2 && raw[0] == '[' && raw[len(raw)-1] == ']':
		return ScanVariables(raw[1 : len(raw)-1])
	case len(raw) >= 2 && raw[0] == '(' && raw[len(raw)-1] == ')':
		return ScanCustomProperty(raw[1 : len(raw)-1])
	}
	return ScanVariables(raw)
}

// IsVariableName reports whether name is a custom property name
func IsVariableName(name string) bool {
	return len(name) > 2 && strings.HasPrefix(name, "--")
}

func scan(value string) ([]string, []error) {
	var names []string
	var errs []error
	seen := make(map[string]bool)

	lexer := css.NewLexer(parse.NewInput(strings.NewReader(value)))
	awaitingArgument := false
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			break
		}

		if awaitingArgument {
			switch tt {
			case css.WhitespaceToken, css.CommentToken:
				continue
			}
			awaitingArgument = false

			arg := string(data)
			if (tt == css.CustomPropertyNameToken || tt == css.IdentToken) && IsVariableName(arg) {
				if !seen[arg] {
					seen[arg] = true
					names = append(names, arg)
				}
				continue
			}
			err := &InvalidVariableError{Value: value, Argument: arg}
			log.Warn("%v", err)
			errs = append(errs, err)
			// fall through: the skipped token may itself open a nested var()
		}

		if tt == css.FunctionToken && isVarFunction(data) {
			awaitingArgument = true
		}
	}

	return names, errs
}

// isVarFunction matches "var(" case-insensitively. Leading underscores are
// ignored because arbitrary values use "_" for spaces, so "a)_var(--b" lexes
// the second call as the function "_var(".
func isVarFunction(data []byte) bool {
	name := strings.TrimLeft(string(data), "_")
	return strings.EqualFold(name, "var(")
}
