package common

import (
	"fmt"

	"bennypowers.dev/mincss/internal/color"
)

// ValueToCSS renders a design token value as CSS text. Structured colours
// are converted and {token.path} references become var() calls.
func ValueToCSS(value any, prefix string) (string, error) {
	switch v := value.(type) {
	case string:
		return RewriteReferences(v, prefix), nil
	case float64:
		return fmt.Sprintf("%g", v), nil
	case int:
		return fmt.Sprintf("%d", v), nil
	case map[string]any:
		if refs := ExtractReferencesFromValue(v); len(refs) > 0 {
			return "var(" + TokenPathToVariable(refs[0].Path, prefix) + ")", nil
		}
		c, err := color.ParseObject(v)
		if err != nil {
			return "", err
		}
		return c.CSS(), nil
	default:
		return "", fmt.Errorf("unsupported token value %T", value)
	}
}
