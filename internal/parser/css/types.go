package css

// Position is a zero-based line and column. Character counts runes.
type Position struct {
	Line      uint32
	Character uint32
}

// Range represents a range in a source file
type Range struct {
	Start Position
	End   Position
}

// Declaration is a custom property declaration (--name: value)
type Declaration struct {
	Name  string
	Value string
	Range Range
}

// Reference is a var() call
type Reference struct {
	Name     string
	Fallback *string // Optional fallback value
	Range    Range
}

// Apply is an @apply rule and the class names it lists
type Apply struct {
	ClassNames []string
	Range      Range
}

// ParseResult contains the results of parsing CSS
type ParseResult struct {
	Declarations []*Declaration
	References   []*Reference
	Applies      []*Apply
}

// NewParseResult returns an empty result
func NewParseResult() *ParseResult {
	return &ParseResult{
		Declarations: []*Declaration{},
		References:   []*Reference{},
		Applies:      []*Apply{},
	}
}

// Append adds the contents of other to r
func (r *ParseResult) Append(other *ParseResult) {
	r.Declarations = append(r.Declarations, other.Declarations...)
	r.References = append(r.References, other.References...)
	r.Applies = append(r.Applies, other.Applies...)
}

// Offset moves every range of r as though the parsed CSS started at line
// and character of an enclosing document. Only positions on the first line
// are shifted horizontally.
func (r *ParseResult) Offset(line, character uint32) {
	for _, d := range r.Declarations {
		d.Range = offsetRange(d.Range, line, character)
	}
	for _, ref := range r.References {
		ref.Range = offsetRange(ref.Range, line, character)
	}
	for _, a := range r.Applies {
		a.Range = offsetRange(a.Range, line, character)
	}
}

func offsetRange(r Range, line, character uint32) Range {
	r.Start = offsetPosition(r.Start, line, character)
	r.End = offsetPosition(r.End, line, character)
	return r
}

func offsetPosition(pos Position, line, character uint32) Position {
	if pos.Line == 0 {
		pos.Character += character
	}
	pos.Line += line
	return pos
}
