package classname

// Segments is the raw split of a class name into variants, one utility and
// an optional modifier. Variants are in source order, outermost first.
type Segments struct {
	Variants    []string
	Utility     string
	Modifier    string
	HasModifier bool
}

// Tokenize splits a class name such as "md:hover:bg-red-500/50" into its segments.
//
// Brackets and parentheses may nest and a backslash escapes the next byte.
// An unbracketed "/" is resolved by looking ahead: if the text after it
// reaches an unbracketed ":" the whole span is a variant (as in
// "group-hover/item:flex"), otherwise it separates the utility from its
// modifier and tokenizing stops. Every step advances the cursor, so the
// scan ends after at most len(className) steps.
func Tokenize(className string) (*Segments, error) {
	t := &tokenizer{src: className}
	if err := t.run(); err != nil {
		return nil, err
	}
	return &t.seg, nil
}

type tokenizer struct {
	src           string
	seg           Segments
	utilityClosed bool
}

func (t *tokenizer) run() error {
	src := t.src
	start, i := 0, 0
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
		case '[', '(':
			end, err := t.skipGroup(i)
			if err != nil {
				return err
			}
			i = end + 1
		case ':':
			if err := t.addVariant(start, i); err != nil {
				return err
			}
			i++
			start = i
		case '/':
			colon, err := t.scanModifier(i + 1)
			if err != nil {
				return err
			}
			if colon >= 0 {
				if err := t.addVariant(start, colon); err != nil {
					return err
				}
				i = colon + 1
				start = i
				continue
			}
			if err := t.closeUtility(start, i); err != nil {
				return err
			}
			return t.setModifier(src[i+1:])
		default:
			i++
		}
	}
	return t.closeUtility(start, len(src))
}

// skipGroup returns the index of the closer matching the opener at open.
// A closer that does not match the innermost opener is literal text.
func (t *tokenizer) skipGroup(open int) (int, error) {
	src := t.src
	stack := []byte{src[open]}
	for i := open + 1; i < len(src); i++ {
		switch c := src[i]; c {
		case '\\':
			i++
		case '[', '(':
			stack = append(stack, c)
		case ']', ')':
			if stack[len(stack)-1] == closerFor[c] {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					return i, nil
				}
			}
		}
	}

	err := ErrUnterminatedArbitrary
	if stack[len(stack)-1] == '(' {
		err = ErrUnterminatedCustomProperty
	}
	return -1, newParseError(src, src[open:], err)
}

// scanModifier looks for an unbracketed ":" at or after from. It returns -1
// when the end of input comes first.
func (t *tokenizer) scanModifier(from int) (int, error) {
	src := t.src
	for i := from; i < len(src); {
		switch src[i] {
		case '\\':
			i += 2
		case '[', '(':
			end, err := t.skipGroup(i)
			if err != nil {
				return -1, err
			}
			i = end + 1
		case ':':
			return i, nil
		default:
			i++
		}
	}
	return -1, nil
}

func (t *tokenizer) addVariant(start, end int) error {
	if start == end {
		return newParseError(t.src, t.src[start:], ErrEmptyVariant)
	}
	t.seg.Variants = append(t.seg.Variants, t.src[start:end])
	return nil
}

func (t *tokenizer) closeUtility(start, end int) error {
	if t.utilityClosed {
		return newParseError(t.src, t.src[start:], ErrDuplicateUtility)
	}
	if start >= end {
		return newParseError(t.src, "", ErrMissingUtility)
	}
	t.utilityClosed = true
	t.seg.Utility = t.src[start:end]
	return nil
}

func (t *tokenizer) setModifier(raw string) error {
	if t.seg.HasModifier {
		return newParseError(t.src, raw, ErrDuplicateModifier)
	}
	t.seg.Modifier = raw
	t.seg.HasModifier = true
	return nil
}
