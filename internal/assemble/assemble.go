// Package assemble writes the minimal stylesheet for a resolved usage.
package assemble

import (
	"slices"
	"strings"

	"bennypowers.dev/mincss/internal/graph"
	"bennypowers.dev/mincss/internal/resolver"
)

const indent = "  "

// group is the declarations sharing one context and one at-rule chain
type group struct {
	atRules      []string
	context      string
	declarations []*graph.VariableDeclaration
}

func groupKey(d *graph.VariableDeclaration) string {
	return strings.Join(d.AtRules, "\x00") + "\x01" + d.Context
}

// Stylesheet returns the parts of g that usage needs, in this order:
//
//   - declarations of used variables, grouped by their context (theme block
//     or selector) and enclosing at-rules, groups in order of first appearance
//   - @keyframes named in the values of those declarations
//   - used @custom-variant rules
//   - used @utility blocks
//
// Custom variants, utilities and keyframes are copied from the source text.
func Stylesheet(g *graph.Graph, usage *resolver.Usage) string {
	var sb strings.Builder

	var groups []*group
	index := make(map[string]*group)
	var keyframes []*graph.KeyframesDeclaration
	seenKeyframes := make(map[string]bool)

	for _, d := range g.Declarations() {
		if !usage.Variables.Has(d.Name) {
			continue
		}
		key := groupKey(d)
		gr, ok := index[key]
		if !ok {
			gr = &group{atRules: d.AtRules, context: d.Context}
			index[key] = gr
			groups = append(groups, gr)
		}
		gr.declarations = append(gr.declarations, d)

		for _, k := range g.KeyframesIn(d.Value) {
			if !seenKeyframes[k.Name] {
				seenKeyframes[k.Name] = true
				keyframes = append(keyframes, k)
			}
		}
	}

	for _, gr := range groups {
		writeGroup(&sb, gr)
	}

	slices.SortFunc(keyframes, func(a, b *graph.KeyframesDeclaration) int {
		return a.Order - b.Order
	})
	for _, k := range keyframes {
		writeSource(&sb, k.Source)
	}

	for _, cv := range g.CustomVariants() {
		if usage.CustomVariants.Has(cv.Name) {
			writeSource(&sb, cv.Source)
		}
	}

	for _, u := range g.Utilities() {
		if usage.Utilities.Has(u.Name) {
			writeSource(&sb, u.Source)
		}
	}

	return sb.String()
}

func writeGroup(sb *strings.Builder, gr *group) {
	depth := 0
	for _, at := range gr.atRules {
		openBlock(sb, depth, at)
		depth++
	}
	openBlock(sb, depth, gr.context)
	for _, d := range gr.declarations {
		sb.WriteString(strings.Repeat(indent, depth+1))
		sb.WriteString(d.Name)
		sb.WriteString(": ")
		sb.WriteString(d.Value)
		sb.WriteString(";\n")
	}
	for ; depth >= 0; depth-- {
		sb.WriteString(strings.Repeat(indent, depth))
		sb.WriteString("}\n")
	}
}

func openBlock(sb *strings.Builder, depth int, header string) {
	sb.WriteString(strings.Repeat(indent, depth))
	sb.WriteString(header)
	sb.WriteString(" {\n")
}

func writeSource(sb *strings.Builder, src string) {
	sb.WriteString(strings.TrimSpace(src))
	sb.WriteString("\n")
}
