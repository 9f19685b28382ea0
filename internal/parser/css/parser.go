package css

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// Parser finds custom property declarations, var() calls and @apply rules
// in CSS with tree-sitter
type Parser struct {
	parser *sitter.Parser
}

var cssLang = sitter.NewLanguage(tree_sitter_css.Language())

// parserPool holds idle parsers. It has no New func so that ClosePool
// can drain it.
var parserPool sync.Pool

func newParser() *Parser {
	parser := sitter.NewParser()
	if err := parser.SetLanguage(cssLang); err != nil {
		panic(fmt.Sprintf("failed to set CSS language: %v", err))
	}
	return &Parser{parser: parser}
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p, ok := parserPool.Get().(*Parser)
	if !ok {
		return newParser()
	}
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// ClosePool closes all idle parsers in the pool
func ClosePool() {
	for {
		p, ok := parserPool.Get().(*Parser)
		if !ok {
			return
		}
		p.Close()
	}
}

// Parse parses CSS and collects custom property declarations, var() calls
// and @apply rules. Tree-sitter recovers from syntax errors, so malformed
// input yields whatever could be recognised.
func (p *Parser) Parse(source string) (*ParseResult, error) {
	src := []byte(source)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse CSS")
	}
	defer tree.Close()

	w := &walker{src: src, result: NewParseResult()}
	w.walk(tree.RootNode())
	return w.result, nil
}

type walker struct {
	src    []byte
	result *ParseResult
}

func (w *walker) walk(node *sitter.Node) {
	if node == nil {
		return
	}

	switch node.Kind() {
	case "declaration":
		w.declaration(node)
	case "call_expression":
		w.call(node)
	case "at_rule", "postcss_statement":
		w.atRule(node)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		w.walk(node.Child(i))
	}
}

func (w *walker) text(node *sitter.Node) string {
	return string(w.src[node.StartByte():node.EndByte()])
}

func (w *walker) declaration(node *sitter.Node) {
	var property, colon *sitter.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "property_name":
			if property == nil {
				property = child
			}
		case ":":
			if colon == nil {
				colon = child
			}
		}
	}
	if property == nil || colon == nil {
		return
	}

	name := w.text(property)
	if !strings.HasPrefix(name, "--") {
		return
	}

	value := strings.TrimSpace(string(w.src[colon.EndByte():node.EndByte()]))
	value = strings.TrimSpace(strings.TrimSuffix(value, ";"))

	w.result.Declarations = append(w.result.Declarations, &Declaration{
		Name:  name,
		Value: value,
		Range: w.rangeOf(node),
	})
}

func (w *walker) call(node *sitter.Node) {
	var fn, args *sitter.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "function_name":
			fn = child
		case "arguments":
			args = child
		}
	}
	if fn == nil || args == nil || !strings.EqualFold(w.text(fn), "var") {
		return
	}

	inner := strings.TrimSpace(w.text(args))
	inner = strings.TrimPrefix(inner, "(")
	inner = strings.TrimSuffix(inner, ")")
	name, fallback, hasFallback := strings.Cut(inner, ",")
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	ref := &Reference{Name: name, Range: w.rangeOf(node)}
	if hasFallback {
		fb := strings.TrimSpace(fallback)
		ref.Fallback = &fb
	}
	w.result.References = append(w.result.References, ref)
}

func (w *walker) atRule(node *sitter.Node) {
	if node.ChildCount() == 0 {
		return
	}
	keyword := node.Child(0)
	if keyword.Kind() != "at_keyword" || w.text(keyword) != "@apply" {
		return
	}

	body := strings.TrimSpace(string(w.src[keyword.EndByte():node.EndByte()]))
	body = strings.TrimSuffix(body, ";")
	var classes []string
	for _, c := range strings.Fields(body) {
		if c != "!important" {
			classes = append(classes, c)
		}
	}
	if len(classes) == 0 {
		return
	}
	w.result.Applies = append(w.result.Applies, &Apply{
		ClassNames: classes,
		Range:      w.rangeOf(node),
	})
}

func (w *walker) rangeOf(node *sitter.Node) Range {
	return Range{
		Start: w.position(node.StartByte(), node.StartPosition()),
		End:   w.position(node.EndByte(), node.EndPosition()),
	}
}

// position converts tree-sitter's byte column to a rune column
func (w *walker) position(offset uint, pt sitter.Point) Position {
	lineStart := offset - pt.Column
	return Position{
		Line:      uint32(pt.Row),                                  //nolint:gosec // G115: bounded by file size
		Character: uint32(utf8.RuneCount(w.src[lineStart:offset])), //nolint:gosec // G115: bounded by file size
	}
}
