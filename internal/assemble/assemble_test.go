package assemble_test

import (
	"testing"

	"bennypowers.dev/mincss/internal/assemble"
	"bennypowers.dev/mincss/internal/graph"
	"bennypowers.dev/mincss/internal/resolver"
	"github.com/stretchr/testify/assert"
)

const stylesheet = `@theme inline {
  --color-bg: var(--background);
  --color-unused: red;
  --animate-spin: spin 1s linear infinite;

  @keyframes spin {
    to { transform: rotate(360deg); }
  }
  @keyframes bounce {
    50% { transform: none; }
  }
}

:root {
  --background: #fff;
}

@media (prefers-color-scheme: dark) {
  :root {
    --background: #000;
  }
}

@custom-variant dark (&:where(.dark, .dark *));
@custom-variant unused (&:hover);

@utility spinner {
  animation: var(--animate-spin);
}

@utility ghost {
  opacity: 0;
}
`

func TestStylesheet(t *testing.T) {
	g := graph.Build(stylesheet)
	r := resolver.New(g)

	t.Run("used declarations only", func(t *testing.T) {
		usage := r.Resolve([]string{"dark:bg-bg", "spinner"})
		assert.Equal(t, `@theme inline {
  --color-bg: var(--background);
  --animate-spin: spin 1s linear infinite;
}
:root {
  --background: #fff;
}
@media (prefers-color-scheme: dark) {
  :root {
    --background: #000;
  }
}
@keyframes spin {
    to { transform: rotate(360deg); }
  }
@custom-variant dark (&:where(.dark, .dark *));
@utility spinner {
  animation: var(--animate-spin);
}
`, assemble.Stylesheet(g, usage))
	})

	t.Run("empty usage", func(t *testing.T) {
		assert.Empty(t, assemble.Stylesheet(g, resolver.NewUsage()))
	})

	t.Run("output rebuilds the same closure", func(t *testing.T) {
		usage := r.Resolve([]string{"dark:bg-bg", "spinner"})
		out := assemble.Stylesheet(g, usage)
		again := resolver.New(graph.Build(out)).Resolve([]string{"dark:bg-bg", "spinner"})
		assert.Equal(t, usage.VariableNames(), again.VariableNames())
		assert.Equal(t, usage.UtilityNames(), again.UtilityNames())
		assert.Equal(t, usage.CustomVariantNames(), again.CustomVariantNames())
	})
}
