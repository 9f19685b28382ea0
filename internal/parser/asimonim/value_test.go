package asimonim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCSSValue tests converting string and structured token values
func TestCSSValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "8px", "8px"},
		{"reference", "{color.base}", "var(--ds-color-base)"},
		{"pointer reference", `{"$ref": "#/color/base"}`, "var(--ds-color-base)"},
		{"colour with hex", `{"colorSpace": "srgb", "components": [1, 0, 0], "hex": "#ff0000"}`, "#ff0000"},
		{"colour with alpha", `{"colorSpace": "srgb", "components": [1, 0, 0], "alpha": 0.5}`, "rgb(255 0 0 / 0.5)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cssValue(tt.raw, "ds")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("object that is not a colour", func(t *testing.T) {
		_, err := cssValue(`{"width": 1}`, "")
		assert.Error(t, err)
	})
}
