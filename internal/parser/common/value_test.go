package common_test

import (
	"testing"

	"bennypowers.dev/mincss/internal/parser/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueToCSS(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "16px", "16px"},
		{"reference", "{spacing.base}", "var(--ds-spacing-base)"},
		{"float", 1.5, "1.5"},
		{"int", 4, "4"},
		{"json pointer", map[string]any{"$ref": "#/color/brand"}, "var(--ds-color-brand)"},
		{"colour with hex", map[string]any{"colorSpace": "srgb", "components": []any{1.0, 1.0, 1.0}, "hex": "#fff"}, "#fff"},
		{"colour", map[string]any{"colorSpace": "oklch", "components": []any{0.7, 0.1, 200.0}}, "oklch(0.7 0.1 200)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := common.ValueToCSS(tt.value, "ds")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		_, err := common.ValueToCSS([]any{1}, "")
		assert.Error(t, err)
	})

	t.Run("object that is not a colour", func(t *testing.T) {
		_, err := common.ValueToCSS(map[string]any{"width": 1}, "")
		assert.Error(t, err)
	})
}
