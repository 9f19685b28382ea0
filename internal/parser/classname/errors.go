package classname

import (
	"errors"
	"fmt"
)

// Sentinel errors for error type checking
var (
	// ErrUnterminatedArbitrary indicates a "[" without its closing "]"
	ErrUnterminatedArbitrary = errors.New("unterminated arbitrary value")

	// ErrUnterminatedCustomProperty indicates a "(" without its closing ")"
	ErrUnterminatedCustomProperty = errors.New("unterminated custom property")

	// ErrMissingUtility indicates the class name ends without a utility segment
	ErrMissingUtility = errors.New("missing utility")

	// ErrEmptyVariant indicates an empty variant segment, as in "hover::flex"
	ErrEmptyVariant = errors.New("empty variant")

	// ErrDuplicateUtility indicates a utility segment was closed twice; this is a tokenizer bug
	ErrDuplicateUtility = errors.New("duplicate utility")

	// ErrDuplicateModifier indicates a modifier was extracted twice; this is a tokenizer bug
	ErrDuplicateModifier = errors.New("duplicate modifier")
)

// ParseError reports why a single class name could not be parsed
type ParseError struct {
	ClassName string
	// Suffix is the offending remainder of the class name, when there is one
	Suffix string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Suffix != "" {
		return fmt.Sprintf("%s in class %q at %q", e.Err, e.ClassName, e.Suffix)
	}
	return fmt.Sprintf("%s in class %q", e.Err, e.ClassName)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(className, suffix string, err error) error {
	return &ParseError{
		ClassName: className,
		Suffix:    suffix,
		Err:       err,
	}
}
