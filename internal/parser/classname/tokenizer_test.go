package classname_test

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"bennypowers.dev/mincss/internal/parser/classname"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTokenize tests splitting class names into variants, utility and modifier
func TestTokenize(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		variants    []string
		utility     string
		modifier    string
		hasModifier bool
	}{
		{name: "bare utility", input: "flex", utility: "flex"},
		{name: "one variant", input: "hover:bg-red-500", variants: []string{"hover"}, utility: "bg-red-500"},
		{name: "variant chain", input: "md:hover:bg-red-500/50", variants: []string{"md", "hover"}, utility: "bg-red-500", modifier: "50", hasModifier: true},
		{name: "arbitrary value with slash", input: "bg-[url(/a.png)]", utility: "bg-[url(/a.png)]"},
		{name: "custom property value", input: "bg-(--brand)", utility: "bg-(--brand)"},
		{name: "nested parens", input: "w-(--a,calc(1px+(2px)))", utility: "w-(--a,calc(1px+(2px)))"},
		{name: "arbitrary variant", input: "[&>*]:p-4", variants: []string{"[&>*]"}, utility: "p-4"},
		{name: "colon inside brackets", input: "[mask-type:luminance]", utility: "[mask-type:luminance]"},
		{name: "bracketed modifier", input: "bg-red-500/[0.5]", utility: "bg-red-500", modifier: "[0.5]", hasModifier: true},
		{name: "custom property modifier", input: "bg-red-500/(--alpha)", utility: "bg-red-500", modifier: "(--alpha)", hasModifier: true},
		{name: "fraction", input: "w-1/2", utility: "w-1", modifier: "2", hasModifier: true},
		{name: "modifier after bracket", input: "bg-[red]/50", utility: "bg-[red]", modifier: "50", hasModifier: true},
		{name: "escaped bracket", input: `content-\[x`, utility: `content-\[x`},
		{name: "escaped colon", input: `hover\:flex`, utility: `hover\:flex`},
		{name: "trailing backslash", input: `flex\`, utility: `flex\`},
		{name: "unicode", input: "hover:bg-[ünïcødé]", variants: []string{"hover"}, utility: "bg-[ünïcødé]"},
		{name: "unicode variant", input: "🙂:flex", variants: []string{"🙂"}, utility: "flex"},
		{name: "second slash stays in modifier", input: "a/b/c", utility: "a", modifier: "b/c", hasModifier: true},
		{name: "empty modifier", input: "flex/", utility: "flex", modifier: "", hasModifier: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg, err := classname.Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.variants, seg.Variants)
			assert.Equal(t, tt.utility, seg.Utility)
			assert.Equal(t, tt.modifier, seg.Modifier)
			assert.Equal(t, tt.hasModifier, seg.HasModifier)
		})
	}
}

// TestTokenizeSlashAmbiguity tests that a slash followed by a colon belongs to a variant
func TestTokenizeSlashAmbiguity(t *testing.T) {
	t.Run("named group", func(t *testing.T) {
		seg, err := classname.Tokenize("group-hover/name:flex")
		require.NoError(t, err)
		assert.Equal(t, []string{"group-hover/name"}, seg.Variants)
		assert.Equal(t, "flex", seg.Utility)
		assert.False(t, seg.HasModifier)
	})

	t.Run("named group followed by modifier", func(t *testing.T) {
		seg, err := classname.Tokenize("group-hover/name:bg-red-500/50")
		require.NoError(t, err)
		assert.Equal(t, []string{"group-hover/name"}, seg.Variants)
		assert.Equal(t, "bg-red-500", seg.Utility)
		assert.Equal(t, "50", seg.Modifier)
	})

	t.Run("two named variants", func(t *testing.T) {
		seg, err := classname.Tokenize("group-hover/a:peer-focus/b:flex")
		require.NoError(t, err)
		assert.Equal(t, []string{"group-hover/a", "peer-focus/b"}, seg.Variants)
		assert.Equal(t, "flex", seg.Utility)
	})

	t.Run("bracketed name", func(t *testing.T) {
		seg, err := classname.Tokenize("group-has-[a]/item:flex")
		require.NoError(t, err)
		assert.Equal(t, []string{"group-has-[a]/item"}, seg.Variants)
		assert.Equal(t, "flex", seg.Utility)
	})

	t.Run("colon inside modifier brackets", func(t *testing.T) {
		seg, err := classname.Tokenize("bg-red-500/[a:b]")
		require.NoError(t, err)
		assert.Empty(t, seg.Variants)
		assert.Equal(t, "bg-red-500", seg.Utility)
		assert.Equal(t, "[a:b]", seg.Modifier)
	})
}

// TestTokenizeErrors tests error reporting for malformed class names
func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		err    error
		suffix string
	}{
		{name: "unclosed bracket", input: "bg-[red", err: classname.ErrUnterminatedArbitrary, suffix: "[red"},
		{name: "unclosed bracket in variant", input: "x:[y:z", err: classname.ErrUnterminatedArbitrary, suffix: "[y:z"},
		{name: "lone bracket", input: "[", err: classname.ErrUnterminatedArbitrary, suffix: "["},
		{name: "unclosed bracket in modifier lookahead", input: "group-hover/[a:flex", err: classname.ErrUnterminatedArbitrary, suffix: "[a:flex"},
		{name: "unclosed paren", input: "bg-(--x", err: classname.ErrUnterminatedCustomProperty, suffix: "(--x"},
		{name: "unclosed nested paren", input: "w-(calc(1px)", err: classname.ErrUnterminatedCustomProperty, suffix: "(calc(1px)"},
		{name: "escaped closer", input: `bg-[red\]`, err: classname.ErrUnterminatedArbitrary, suffix: `[red\]`},
		{name: "empty", input: "", err: classname.ErrMissingUtility},
		{name: "variant only", input: "hover:", err: classname.ErrMissingUtility},
		{name: "slash only", input: "hover:/50", err: classname.ErrMissingUtility},
		{name: "empty variant", input: "hover::flex", err: classname.ErrEmptyVariant},
		{name: "leading colon", input: ":flex", err: classname.ErrEmptyVariant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg, err := classname.Tokenize(tt.input)
			require.Error(t, err)
			assert.Nil(t, seg)
			assert.ErrorIs(t, err, tt.err)

			var pe *classname.ParseError
			require.True(t, errors.As(err, &pe), "error should be a *ParseError")
			assert.Equal(t, tt.input, pe.ClassName)
			if tt.suffix != "" {
				assert.Equal(t, tt.suffix, pe.Suffix)
			}
		})
	}
}

// TestTokenizeDeepNesting tests that nesting depth does not matter
func TestTokenizeDeepNesting(t *testing.T) {
	depth := 10000

	t.Run("balanced brackets", func(t *testing.T) {
		input := "bg-" + strings.Repeat("[", depth) + strings.Repeat("]", depth)
		seg, err := classname.Tokenize(input)
		require.NoError(t, err)
		assert.Equal(t, input, seg.Utility)
	})

	t.Run("balanced parens", func(t *testing.T) {
		input := "hover:w-" + strings.Repeat("(", depth) + strings.Repeat(")", depth)
		seg, err := classname.Tokenize(input)
		require.NoError(t, err)
		assert.Equal(t, []string{"hover"}, seg.Variants)
	})

	t.Run("one bracket short", func(t *testing.T) {
		input := "bg-" + strings.Repeat("[", depth) + strings.Repeat("]", depth-1)
		_, err := classname.Tokenize(input)
		assert.ErrorIs(t, err, classname.ErrUnterminatedArbitrary)
	})

	t.Run("one paren short", func(t *testing.T) {
		input := "bg-" + strings.Repeat("(", depth) + strings.Repeat(")", depth-1)
		_, err := classname.Tokenize(input)
		assert.ErrorIs(t, err, classname.ErrUnterminatedCustomProperty)
	})
}

// balanced builds a random class-like string whose brackets and parens all match
func balanced(r *rand.Rand, depth int) string {
	var b strings.Builder
	n := r.Intn(6)
	for range n {
		switch k := r.Intn(10); {
		case k < 5:
			b.WriteByte("abz-09"[r.Intn(6)])
		case k == 5:
			b.WriteByte(':')
		case k == 6:
			b.WriteByte('/')
		case k == 7 && depth > 0:
			b.WriteString("[" + balanced(r, depth-1) + "]")
		case k == 8 && depth > 0:
			b.WriteString("(" + balanced(r, depth-1) + ")")
		default:
			b.WriteString("!")
		}
	}
	return b.String()
}

// TestTokenizeBalancedNeverUnterminated tests that balanced inputs never report an unterminated group
func TestTokenizeBalancedNeverUnterminated(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for range 5000 {
		input := balanced(r, 4)
		seg, err := classname.Tokenize(input)
		if err != nil {
			assert.NotErrorIs(t, err, classname.ErrUnterminatedArbitrary, "input %q", input)
			assert.NotErrorIs(t, err, classname.ErrUnterminatedCustomProperty, "input %q", input)
			continue
		}
		assert.NotEmpty(t, seg.Utility, "input %q", input)
	}
}

// TestTokenizeAdversarial tests that arbitrary byte soup always returns
func TestTokenizeAdversarial(t *testing.T) {
	alphabet := []byte(`[]():/\!-a{}<>`)
	r := rand.New(rand.NewSource(7))
	for range 20000 {
		buf := make([]byte, r.Intn(24))
		for i := range buf {
			buf[i] = alphabet[r.Intn(len(alphabet))]
		}
		input := string(buf)
		assert.NotPanics(t, func() {
			seg, err := classname.Tokenize(input)
			if err == nil {
				assert.NotEmpty(t, seg.Utility, "input %q", input)
			}
		}, "input %q", input)
	}

	// invalid UTF-8 is handled byte-wise
	seg, err := classname.Tokenize("\xff\xfe:\x80")
	require.NoError(t, err)
	assert.Equal(t, []string{"\xff\xfe"}, seg.Variants)
	assert.Equal(t, "\x80", seg.Utility)
}
