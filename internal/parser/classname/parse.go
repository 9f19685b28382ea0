package classname

import (
	"errors"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of parsing one class name in a batch
type Result struct {
	ClassName  string
	Descriptor *Descriptor
	Err        error
}

// Parse parses a class name against the default registry
func Parse(className string) (*Descriptor, error) {
	return defaultRegistry.Parse(className)
}

// ParseAll parses class names against the default registry
func ParseAll(classNames []string) []Result {
	return defaultRegistry.ParseAll(classNames)
}

// Parse tokenizes a class name and classifies its variants, utility and modifier.
// An important flag ("!flex", "hover:!flex" or "flex!") is stripped first.
func (r *Registry) Parse(className string) (*Descriptor, error) {
	src, important := cutTrailingImportant(className)

	seg, err := Tokenize(src)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.ClassName = className
		}
		return nil, err
	}

	d := &Descriptor{
		ClassName: className,
		Important: important,
		Variants:  make([]Variant, 0, len(seg.Variants)),
	}
	for _, v := range seg.Variants {
		d.Variants = append(d.Variants, ClassifyVariant(v))
	}

	utility := seg.Utility
	if rest, ok := strings.CutPrefix(utility, "!"); ok {
		if rest == "" {
			return nil, newParseError(className, utility, ErrMissingUtility)
		}
		utility = rest
		d.Important = true
	}
	d.Utility = r.Classify(utility)

	if !seg.HasModifier {
		return d, nil
	}

	spec, _ := r.Lookup(d.Utility.Name)
	if d.Utility.Kind == UtilityCustom {
		spec = UtilitySpec{}
	}
	if spec.Fraction && d.Utility.Kind == UtilityBracketlessParam && isNumeric(seg.Modifier) {
		d.Utility.Param += "/" + seg.Modifier
		return d, nil
	}
	d.Modifier = ParseModifier(seg.Modifier, spec.ModifierThemes)
	return d, nil
}

// ParseAll parses class names concurrently. Each result carries either a
// descriptor or that class name's error; one failure never affects another.
// Results are in input order.
func (r *Registry) ParseAll(classNames []string) []Result {
	results := make([]Result, len(classNames))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range classNames {
		g.Go(func() error {
			d, err := r.Parse(name)
			results[i] = Result{ClassName: name, Descriptor: d, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// cutTrailingImportant strips an unescaped trailing "!"
func cutTrailingImportant(s string) (string, bool) {
	if !strings.HasSuffix(s, "!") {
		return s, false
	}
	backslashes := 0
	for i := len(s) - 2; i >= 0 && s[i] == '\\'; i-- {
		backslashes++
	}
	if backslashes%2 == 1 {
		return s, false
	}
	return s[:len(s)-1], true
}
