package graph

import (
	"strings"

	"bennypowers.dev/mincss/internal/log"
	"bennypowers.dev/mincss/internal/parser/common"
	"bennypowers.dev/mincss/internal/parser/value"
)

// conditionalAtRules are walked into; custom properties inside them keep the
// at-rule as part of their context
var conditionalAtRules = map[string]bool{
	"media":          true,
	"supports":       true,
	"layer":          true,
	"container":      true,
	"scope":          true,
	"starting-style": true,
}

type builder struct {
	g   *Graph
	src string
}

func (b *builder) source(n *node) string {
	return b.src[n.start:n.end]
}

// walk visits statements outside of @theme, @utility and @custom-variant.
// selector is the enclosing rule's selector, empty at top level.
func (b *builder) walk(nodes []*node, atRules []string, selector string) {
	for _, n := range nodes {
		switch n.kind {
		case atRuleNode:
			switch {
			case n.name == "theme":
				b.theme(n, atRules)
			case n.name == "utility":
				b.utility(n)
			case n.name == "custom-variant":
				b.customVariant(n)
			case n.name == "keyframes" && selector == "":
				b.g.addKeyframes(b.keyframes(n))
			case conditionalAtRules[n.name] && n.hasBlock:
				header := "@" + n.name
				if n.prelude != "" {
					header += " " + n.prelude
				}
				b.walk(n.children, appendCopy(atRules, header), selector)
			default:
				log.Debug("Skipping @%s", n.name)
			}

		case ruleNode:
			b.walk(n.children, atRules, nestSelector(selector, n.prelude))

		case declarationNode:
			if selector != "" && value.IsVariableName(n.name) {
				b.g.addVariable(&VariableDeclaration{
					Name:    n.name,
					Value:   n.value,
					Context: selector,
					AtRules: atRules,
				})
			}
		}
	}
}

func (b *builder) theme(n *node, atRules []string) {
	context := "@theme"
	if n.prelude != "" {
		context += " " + n.prelude
	}
	for _, child := range n.children {
		switch {
		case child.kind == atRuleNode && child.name == "keyframes":
			b.g.addKeyframes(b.keyframes(child))
		case child.kind != declarationNode:
			log.Debug("Skipping non-declaration in %s", context)
		case !value.IsVariableName(child.name):
			log.Debug("Skipping %q in %s", child.name, context)
		case strings.HasSuffix(child.name, "*"):
			// namespace reset such as "--color-*: initial"
			log.Debug("Skipping namespace reset %s", child.name)
		default:
			b.g.addVariable(&VariableDeclaration{
				Name:    child.name,
				Value:   child.value,
				Context: context,
				AtRules: atRules,
				Theme:   true,
			})
		}
	}
}

func (b *builder) keyframes(n *node) *KeyframesDeclaration {
	return &KeyframesDeclaration{Name: n.prelude, Source: b.source(n)}
}

func (b *builder) utility(n *node) {
	if n.prelude == "" || !n.hasBlock {
		log.Debug("Skipping @utility without name or body")
		return
	}
	u := &UtilityDeclaration{Name: n.prelude, Source: b.source(n)}
	if prefix, ok := strings.CutSuffix(n.prelude, "-*"); ok && prefix != "" {
		u.Dynamic = true
		u.Prefix = prefix
	}
	b.utilityBody(u, n.children)
	b.g.addUtility(u)
}

func (b *builder) utilityBody(u *UtilityDeclaration, nodes []*node) {
	for _, n := range nodes {
		switch n.kind {
		case declarationNode:
			u.DirectDeps = appendUnique(u.DirectDeps, value.ScanVariables(n.value)...)
			valueTypes, modifierTypes := common.ThemeFunctionArgs(n.value)
			u.ValueTokenTypes = appendUnique(u.ValueTokenTypes, valueTypes...)
			u.ModifierTokenTypes = appendUnique(u.ModifierTokenTypes, modifierTypes...)
		case atRuleNode:
			switch n.name {
			case "apply":
				u.AppliedClassNames = appendUnique(u.AppliedClassNames, applyList(n.prelude)...)
			case "variant":
				if name := firstWord(n.prelude); name != "" {
					u.VariantsUsed = appendUnique(u.VariantsUsed, name)
				}
			default:
				u.DirectDeps = appendUnique(u.DirectDeps, value.ScanVariables(n.prelude)...)
			}
			b.utilityBody(u, n.children)
		case ruleNode:
			b.utilityBody(u, n.children)
		}
	}
}

func (b *builder) customVariant(n *node) {
	name, rest := splitName(n.prelude)
	if name == "" {
		log.Debug("Skipping @custom-variant without name")
		return
	}
	cv := &CustomVariantDeclaration{Name: name, Source: b.source(n)}
	if rest != "" {
		cv.Selector = rest
		if len(rest) >= 2 && rest[0] == '(' && rest[len(rest)-1] == ')' {
			cv.Selector = strings.TrimSpace(rest[1 : len(rest)-1])
		}
		cv.DirectDeps = value.ScanVariables(rest)
	}
	b.customVariantBody(cv, n.children)
	b.g.addCustomVariant(cv)
}

func (b *builder) customVariantBody(cv *CustomVariantDeclaration, nodes []*node) {
	for _, n := range nodes {
		switch n.kind {
		case declarationNode:
			cv.DirectDeps = appendUnique(cv.DirectDeps, value.ScanVariables(n.value)...)
		case atRuleNode:
			switch n.name {
			case "slot":
			case "variant":
				if name := firstWord(n.prelude); name != "" {
					cv.VariantsUsed = appendUnique(cv.VariantsUsed, name)
				}
			default:
				cv.DirectDeps = appendUnique(cv.DirectDeps, value.ScanVariables(n.prelude)...)
			}
			b.customVariantBody(cv, n.children)
		case ruleNode:
			cv.DirectDeps = appendUnique(cv.DirectDeps, value.ScanVariables(n.prelude)...)
			b.customVariantBody(cv, n.children)
		}
	}
}

// applyList splits an @apply prelude into class names, dropping a trailing !important
func applyList(prelude string) []string {
	var classes []string
	for _, c := range strings.Fields(prelude) {
		if c == "!important" {
			continue
		}
		classes = append(classes, c)
	}
	return classes
}

// splitName splits "dark (&:where(.dark, .dark *))" into its name and the rest
func splitName(prelude string) (string, string) {
	i := strings.IndexAny(prelude, " \t\n(")
	if i < 0 {
		return prelude, ""
	}
	return prelude[:i], strings.TrimSpace(prelude[i:])
}

func firstWord(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}

// nestSelector resolves a nested rule's selector against its parent
func nestSelector(parent, child string) string {
	switch {
	case parent == "":
		return child
	case strings.Contains(child, "&"):
		return strings.ReplaceAll(child, "&", parent)
	default:
		return parent + " " + child
	}
}

func appendCopy(list []string, v string) []string {
	out := make([]string, len(list), len(list)+1)
	copy(out, list)
	return append(out, v)
}
