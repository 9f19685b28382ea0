// Package color converts structured design token colours to CSS.
package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Object is a structured colour token value
type Object struct {
	Space      string
	Components []any // float64 or the "none" keyword
	Alpha      *float64
	Hex        *string
}

// ParseObject reads a structured colour token value
func ParseObject(obj map[string]any) (*Object, error) {
	space, ok := obj["colorSpace"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid colorSpace field in color object")
	}

	raw, ok := obj["components"]
	if !ok {
		return nil, fmt.Errorf("missing components field in color object")
	}
	components, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("components must be an array")
	}
	if len(components) < 3 {
		return nil, fmt.Errorf("invalid number of components: %d", len(components))
	}

	c := &Object{Space: strings.ToLower(space), Components: components}
	if alpha, ok := obj["alpha"].(float64); ok {
		c.Alpha = &alpha
	}
	if hex, ok := obj["hex"].(string); ok && hex != "" {
		c.Hex = &hex
	}
	return c, nil
}

func (c *Object) alpha() float64 {
	if c.Alpha == nil {
		return 1
	}
	return *c.Alpha
}

func (c *Object) opaque() bool {
	return c.alpha() >= 0.999
}

// CSS renders the colour. An explicit hex wins for opaque colours; sRGB
// colours are written as hex when opaque and rgb() otherwise.
func (c *Object) CSS() string {
	if c.Hex != nil && c.opaque() {
		return *c.Hex
	}

	switch c.Space {
	case "srgb":
		return c.rgb()
	case "hsl", "hwb":
		// hue, then two percentages
		return c.function(c.Space, component(c.Components[0]), percent(c.Components[1]), percent(c.Components[2]))
	case "lab", "lch", "oklab", "oklch":
		return c.function(c.Space, component(c.Components[0]), component(c.Components[1]), component(c.Components[2]))
	default:
		return c.function("color", c.Space, component(c.Components[0]), component(c.Components[1]), component(c.Components[2]))
	}
}

func (c *Object) rgb() string {
	var channels [3]int
	for i := range channels {
		v := math.Max(0, math.Min(1, number(c.Components[i])))
		channels[i] = int(math.Round(v * 255))
	}
	if c.opaque() {
		return fmt.Sprintf("#%02x%02x%02x", channels[0], channels[1], channels[2])
	}
	return c.function("rgb", strconv.Itoa(channels[0]), strconv.Itoa(channels[1]), strconv.Itoa(channels[2]))
}

// function writes name(args... / alpha) in the space separated syntax
func (c *Object) function(name string, args ...string) string {
	body := strings.Join(args, " ")
	if !c.opaque() {
		body += " / " + format(c.alpha())
	}
	return name + "(" + body + ")"
}

// number reads a component; the "none" keyword counts as zero
func number(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

func component(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return format(number(v))
}

func percent(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return format(number(v)) + "%"
}

func format(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}
