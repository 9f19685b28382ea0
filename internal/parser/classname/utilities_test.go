package classname_test

import (
	"testing"

	"bennypowers.dev/mincss/internal/parser/classname"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClassifyUtility tests utility classification against the default registry
func TestClassifyUtility(t *testing.T) {
	tests := []struct {
		segment string
		want    classname.Utility
	}{
		{"flex", classname.Utility{Kind: classname.UtilityStatic, Name: "flex"}},
		{"inline-flex", classname.Utility{Kind: classname.UtilityStatic, Name: "inline-flex"}},
		{"items-center", classname.Utility{Kind: classname.UtilityStatic, Name: "items", Param: "center"}},
		{"bg-transparent", classname.Utility{Kind: classname.UtilityStatic, Name: "bg", Param: "transparent"}},
		{"bg-red-500", classname.Utility{Kind: classname.UtilityThemedParam, Name: "bg", Param: "red-500", ValueTokenTypes: []string{"--color-*"}}},
		{"text-lg", classname.Utility{Kind: classname.UtilityThemedParam, Name: "text", Param: "lg", ValueTokenTypes: []string{"--text-*", "--color-*"}}},
		{"w-3xl", classname.Utility{Kind: classname.UtilityThemedParam, Name: "w", Param: "3xl", ValueTokenTypes: []string{"--spacing-*", "--container-*"}}},
		{"bg-[url(/a.png)]", classname.Utility{Kind: classname.UtilityArbitraryParam, Name: "bg", Param: "[url(/a.png)]", Raw: "[url(/a.png)]"}},
		{"bg-(--brand)", classname.Utility{Kind: classname.UtilityArbitraryParam, Name: "bg", Param: "(--brand)", Raw: "(--brand)"}},
		{"p-4", classname.Utility{Kind: classname.UtilityBracketlessParam, Name: "p", Param: "4"}},
		{"p-1.5", classname.Utility{Kind: classname.UtilityBracketlessParam, Name: "p", Param: "1.5"}},
		{"from-10%", classname.Utility{Kind: classname.UtilityBracketlessParam, Name: "from", Param: "10%"}},
		{"grid-cols-12", classname.Utility{Kind: classname.UtilityBracketlessParam, Name: "grid-cols", Param: "12"}},
		{"-mt-4", classname.Utility{Kind: classname.UtilityBracketlessParam, Name: "mt", Param: "4", Negative: true}},
		{"-translate-x-4", classname.Utility{Kind: classname.UtilityBracketlessParam, Name: "translate-x", Param: "4", Negative: true}},
		{"[mask-type:luminance]", classname.Utility{Kind: classname.UtilityFullArbitrary, Raw: "[mask-type:luminance]"}},
		{"-[top:1px]", classname.Utility{Kind: classname.UtilityFullArbitrary, Raw: "[top:1px]", Negative: true}},
		{"btn-primary", classname.Utility{Kind: classname.UtilityCustom, Name: "btn-primary"}},
		{"tab-4", classname.Utility{Kind: classname.UtilityCustom, Name: "tab-4"}},
		{"-", classname.Utility{Kind: classname.UtilityCustom, Name: "-"}},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			assert.Equal(t, tt.want, classname.ClassifyUtility(tt.segment))
		})
	}
}

// TestClassifyUtilityLongestPrefix tests that the longest registered name wins
func TestClassifyUtilityLongestPrefix(t *testing.T) {
	tests := []struct {
		segment string
		name    string
		param   string
	}{
		{"border-spacing-x-4", "border-spacing-x", "4"},
		{"border-spacing-4", "border-spacing", "4"},
		{"border-x-2", "border-x", "2"},
		{"border-red-500", "border", "red-500"},
		{"text-shadow-lg", "text-shadow", "lg"},
		{"inset-shadow-sm", "inset-shadow", "sm"},
		{"backdrop-blur-md", "backdrop-blur", "md"},
		{"table-row-group", "table-row-group", ""},
		{"rounded-tl-lg", "rounded-tl", "lg"},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			u := classname.ClassifyUtility(tt.segment)
			assert.Equal(t, tt.name, u.Name)
			assert.Equal(t, tt.param, u.Param)
		})
	}
}

// TestRegistryMatchOrder tests the tie-break between equally long names
func TestRegistryMatchOrder(t *testing.T) {
	r := classname.NewRegistry(map[string]classname.UtilitySpec{
		"a":     {Paramless: true},
		"a-b":   {Keywords: []string{"c"}},
		"a-b-c": {Paramless: true},
		"x":     {Paramless: true},
	})
	assert.Equal(t, 4, r.Len())

	name, param, ok := r.Match("a-b-c")
	require.True(t, ok)
	assert.Equal(t, "a-b-c", name)
	assert.Empty(t, param)

	name, param, ok = r.Match("a-b-d")
	require.True(t, ok)
	assert.Equal(t, "a-b", name)
	assert.Equal(t, "d", param)

	name, param, ok = r.Match("a-z")
	require.True(t, ok)
	assert.Equal(t, "a", name)
	assert.Equal(t, "z", param)

	_, _, ok = r.Match("ab")
	assert.False(t, ok, "a prefix must be followed by a dash")

	_, _, ok = r.Match("y")
	assert.False(t, ok)

	spec, ok := r.Lookup("a-b")
	require.True(t, ok)
	assert.Equal(t, []string{"c"}, spec.Keywords)
}

// TestClassifyUtilityDoesNotShareRegistrySlices tests that callers cannot mutate the registry
func TestClassifyUtilityDoesNotShareRegistrySlices(t *testing.T) {
	u := classname.ClassifyUtility("bg-red-500")
	u.ValueTokenTypes[0] = "--mutated-*"

	again := classname.ClassifyUtility("bg-blue-500")
	assert.Equal(t, []string{"--color-*"}, again.ValueTokenTypes)
}

// TestDefaultRegistry tests a sample of built-in families
func TestDefaultRegistry(t *testing.T) {
	r := classname.DefaultRegistry()
	assert.Greater(t, r.Len(), 200)

	spec, ok := r.Lookup("p")
	require.True(t, ok)
	assert.Equal(t, []string{"--spacing"}, spec.BareVariables)
	assert.True(t, spec.Bracketless)

	spec, ok = r.Lookup("w")
	require.True(t, ok)
	assert.True(t, spec.Fraction)

	spec, ok = r.Lookup("text")
	require.True(t, ok)
	assert.Equal(t, []string{"--leading-*"}, spec.ModifierThemes)

	_, ok = r.Lookup("btn")
	assert.False(t, ok)
}

// TestUtilitySegment tests rebuilding utility text
func TestUtilitySegment(t *testing.T) {
	for _, seg := range []string{"flex", "bg-red-500", "bg-[url(/a.png)]", "[mask-type:luminance]", "btn-primary"} {
		assert.Equal(t, seg, classname.ClassifyUtility(seg).Segment())
		assert.Equal(t, seg, classname.ClassifyUtility("-"+seg).Segment())
	}
}
