package classname_test

import (
	"testing"

	"bennypowers.dev/mincss/internal/parser/classname"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSplitModifier tests finding the modifier boundary
func TestSplitModifier(t *testing.T) {
	tests := []struct {
		input    string
		base     string
		modifier string
		ok       bool
	}{
		{"bg-red-500/50", "bg-red-500", "50", true},
		{"bg-red-500", "bg-red-500", "", false},
		{"bg-[url(/a.png)]", "bg-[url(/a.png)]", "", false},
		{"bg-[url(/a.png)]/25", "bg-[url(/a.png)]", "25", true},
		{"x-{a/b}/c", "x-{a/b}", "c", true},
		{"x-<a/b>/c", "x-<a/b>", "c", true},
		{`a\/b`, `a\/b`, "", false},
		{"a[)/]/b", "a[)/]", "b", true},
		{"group-hover/item", "group-hover", "item", true},
		{"/x", "", "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			base, mod, ok := classname.SplitModifier(tt.input)
			assert.Equal(t, tt.base, base)
			assert.Equal(t, tt.modifier, mod)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

// TestParseModifier tests modifier classification
func TestParseModifier(t *testing.T) {
	t.Run("normal", func(t *testing.T) {
		m := classname.ParseModifier("50", nil)
		assert.Equal(t, classname.ModifierNormal, m.Kind)
		assert.Equal(t, "50", m.Raw)
		assert.Empty(t, m.Value)
		assert.Empty(t, m.Variables)
	})

	t.Run("normal with token types", func(t *testing.T) {
		m := classname.ParseModifier("tight", []string{"--leading-*", "not-a-pattern", "--fixed"})
		assert.Equal(t, classname.ModifierNormal, m.Kind)
		assert.Equal(t, []string{"--leading-tight"}, m.Variables)
	})

	t.Run("arbitrary", func(t *testing.T) {
		m := classname.ParseModifier("[calc(var(--alpha)*1%)]", []string{"--opacity-*"})
		assert.Equal(t, classname.ModifierArbitrary, m.Kind)
		assert.Equal(t, "calc(var(--alpha)*1%)", m.Value)
		assert.Equal(t, []string{"--alpha"}, m.Variables)
	})

	t.Run("custom property", func(t *testing.T) {
		m := classname.ParseModifier("(--alpha)", nil)
		assert.Equal(t, classname.ModifierCustomProperty, m.Kind)
		assert.Equal(t, "--alpha", m.Value)
		assert.Equal(t, []string{"--alpha"}, m.Variables)
	})

	t.Run("lone bracket is normal", func(t *testing.T) {
		m := classname.ParseModifier("[", nil)
		assert.Equal(t, classname.ModifierNormal, m.Kind)
	})
}

// TestExtractModifier tests splitting and classifying in one step
func TestExtractModifier(t *testing.T) {
	base, m := classname.ExtractModifier("text-lg/7", []string{"--leading-*"})
	assert.Equal(t, "text-lg", base)
	require.NotNil(t, m)
	assert.Equal(t, []string{"--leading-7"}, m.Variables)

	base, m = classname.ExtractModifier("text-lg", []string{"--leading-*"})
	assert.Equal(t, "text-lg", base)
	assert.Nil(t, m)
}

// TestThemeVariableNames tests synthesizing variable names from patterns
func TestThemeVariableNames(t *testing.T) {
	assert.Equal(t,
		[]string{"--color-red-500", "--text-red-500"},
		classname.ThemeVariableNames([]string{"--color-*", "--text-*"}, "red-500"))
	assert.Nil(t, classname.ThemeVariableNames([]string{"--color-*"}, ""))
	assert.Nil(t, classname.ThemeVariableNames([]string{"color-*", "--color"}, "x"))
}
