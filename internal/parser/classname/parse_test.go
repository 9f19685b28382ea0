package classname_test

import (
	"errors"
	"fmt"
	"testing"

	"bennypowers.dev/mincss/internal/parser/classname"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseHoverThemedColor tests a variant with a themed colour utility
func TestParseHoverThemedColor(t *testing.T) {
	d, err := classname.Parse("hover:bg-red-500")
	require.NoError(t, err)

	assert.Equal(t, "hover:bg-red-500", d.ClassName)
	require.Len(t, d.Variants, 1)
	assert.Equal(t, classname.VariantRegular, d.Variants[0].Kind)
	assert.Equal(t, "hover", d.Variants[0].Name)

	assert.Equal(t, classname.Utility{
		Kind:            classname.UtilityThemedParam,
		Name:            "bg",
		Param:           "red-500",
		ValueTokenTypes: []string{"--color-*"},
	}, d.Utility)
	assert.Nil(t, d.Modifier)
	assert.False(t, d.Important)
}

// TestParseArbitraryURL tests an arbitrary parameter containing a slash
func TestParseArbitraryURL(t *testing.T) {
	d, err := classname.Parse("bg-[url(/a.png)]")
	require.NoError(t, err)
	assert.Empty(t, d.Variants)
	assert.Equal(t, classname.UtilityArbitraryParam, d.Utility.Kind)
	assert.Equal(t, "bg", d.Utility.Name)
	assert.Equal(t, "[url(/a.png)]", d.Utility.Raw)
	assert.Nil(t, d.Modifier)
}

// TestParseNestedArbitraryVariants tests arbitrary and nested variants with a modifier
func TestParseNestedArbitraryVariants(t *testing.T) {
	d, err := classname.Parse("not-[&.is-dragging]:group-has-[a]:bg-red-500/50")
	require.NoError(t, err)

	require.Len(t, d.Variants, 2)

	first := d.Variants[0]
	assert.Equal(t, classname.VariantArbitraryNestable, first.Kind)
	assert.Equal(t, "not", first.Prefix)
	assert.Equal(t, "&.is-dragging", first.Selector)

	second := d.Variants[1]
	assert.Equal(t, classname.VariantNestable, second.Kind)
	assert.Equal(t, "group", second.Prefix)
	require.NotNil(t, second.Inner)
	assert.Equal(t, classname.VariantArbitraryNestable, second.Inner.Kind)
	assert.Equal(t, "has", second.Inner.Prefix)
	assert.Equal(t, "a", second.Inner.Selector)

	assert.Equal(t, classname.UtilityThemedParam, d.Utility.Kind)
	assert.Equal(t, "bg", d.Utility.Name)
	assert.Equal(t, "red-500", d.Utility.Param)

	require.NotNil(t, d.Modifier)
	assert.Equal(t, classname.ModifierNormal, d.Modifier.Kind)
	assert.Equal(t, "50", d.Modifier.Raw)
}

// TestParseUnclosedBracket tests that an unclosed bracket reports UnterminatedArbitrary
func TestParseUnclosedBracket(t *testing.T) {
	d, err := classname.Parse("bg-[red")
	assert.Nil(t, d)
	require.ErrorIs(t, err, classname.ErrUnterminatedArbitrary)

	var pe *classname.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "bg-[red", pe.ClassName)
	assert.Equal(t, "[red", pe.Suffix)
	assert.Contains(t, err.Error(), `"bg-[red"`)
}

// TestParseImportant tests both important flag positions
func TestParseImportant(t *testing.T) {
	tests := []struct {
		input   string
		utility string
	}{
		{"!flex", "flex"},
		{"hover:!flex", "flex"},
		{"flex!", "flex"},
		{"md:bg-red-500/50!", "bg"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := classname.Parse(tt.input)
			require.NoError(t, err)
			assert.True(t, d.Important)
			assert.Equal(t, tt.utility, d.Utility.Name)
			assert.Equal(t, tt.input, d.ClassName)
		})
	}

	t.Run("escaped bang", func(t *testing.T) {
		d, err := classname.Parse(`content-[x\!`)
		require.ErrorIs(t, err, classname.ErrUnterminatedArbitrary)
		assert.Nil(t, d)
	})

	t.Run("bang alone", func(t *testing.T) {
		_, err := classname.Parse("hover:!")
		assert.ErrorIs(t, err, classname.ErrMissingUtility)
	})
}

// TestParseFraction tests that numeric modifiers fold into fraction-capable utilities
func TestParseFraction(t *testing.T) {
	d, err := classname.Parse("w-1/2")
	require.NoError(t, err)
	assert.Equal(t, classname.UtilityBracketlessParam, d.Utility.Kind)
	assert.Equal(t, "1/2", d.Utility.Param)
	assert.Nil(t, d.Modifier)

	d, err = classname.Parse("-translate-x-1/3")
	require.NoError(t, err)
	assert.True(t, d.Utility.Negative)
	assert.Equal(t, "1/3", d.Utility.Param)

	// p does not take fractions, the modifier stands
	d, err = classname.Parse("p-1/2")
	require.NoError(t, err)
	assert.Equal(t, "1", d.Utility.Param)
	require.NotNil(t, d.Modifier)
	assert.Equal(t, "2", d.Modifier.Raw)
}

// TestParseModifierThemes tests modifier variable synthesis from the registry
func TestParseModifierThemes(t *testing.T) {
	d, err := classname.Parse("text-lg/tight")
	require.NoError(t, err)
	require.NotNil(t, d.Modifier)
	assert.Equal(t, []string{"--leading-tight"}, d.Modifier.Variables)

	d, err = classname.Parse("btn/tight")
	require.NoError(t, err)
	assert.Equal(t, classname.UtilityCustom, d.Utility.Kind)
	require.NotNil(t, d.Modifier)
	assert.Empty(t, d.Modifier.Variables)
}

// TestParseAll tests that one bad class does not affect the others
func TestParseAll(t *testing.T) {
	classes := []string{"hover:bg-red-500", "bg-[red", "p-4", "hover:", "group-hover/item:flex"}
	results := classname.ParseAll(classes)
	require.Len(t, results, len(classes))

	for i, r := range results {
		assert.Equal(t, classes[i], r.ClassName)
	}

	require.NoError(t, results[0].Err)
	assert.Equal(t, "bg", results[0].Descriptor.Utility.Name)

	assert.ErrorIs(t, results[1].Err, classname.ErrUnterminatedArbitrary)
	assert.Nil(t, results[1].Descriptor)

	require.NoError(t, results[2].Err)
	assert.Equal(t, classname.UtilityBracketlessParam, results[2].Descriptor.Utility.Kind)

	assert.ErrorIs(t, results[3].Err, classname.ErrMissingUtility)

	require.NoError(t, results[4].Err)
	require.Len(t, results[4].Descriptor.Variants, 1)
	require.NotNil(t, results[4].Descriptor.Variants[0].Modifier)
	assert.Equal(t, "item", results[4].Descriptor.Variants[0].Modifier.Raw)
}

// TestParseAllLargeBatch tests ordering across many concurrent parses
func TestParseAllLargeBatch(t *testing.T) {
	classes := make([]string, 500)
	for i := range classes {
		classes[i] = fmt.Sprintf("p-%d", i)
	}
	results := classname.ParseAll(classes)
	for i, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, fmt.Sprintf("%d", i), r.Descriptor.Utility.Param)
	}
}
