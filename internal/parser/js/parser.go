package js

import (
	"fmt"
	"slices"
	"sync"

	"bennypowers.dev/mincss/internal/log"
	"bennypowers.dev/mincss/internal/parser/css"
	htmlparser "bennypowers.dev/mincss/internal/parser/html"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// ClassFunctions are the helpers whose string arguments are class names
var ClassFunctions = []string{"clsx", "cn", "cva", "cx", "classNames", "classnames", "twMerge", "twJoin", "tv"}

// Parser handles parsing JS/TS to extract class strings and CSS from tagged template literals
type Parser struct {
	parser        *sitter.Parser
	templateQuery *sitter.Query
	genericQuery  *sitter.Query // matches css<Type>`...` (generic form parsed by JS grammar as binary_expression)
	jsxQuery      *sitter.Query
	callQuery     *sitter.Query
}

var jsLang = sitter.NewLanguage(tree_sitter_javascript.Language())

func mustQuery(name, source string) *sitter.Query {
	q, err := sitter.NewQuery(jsLang, source)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s query: %v", name, err))
	}
	return q
}

// parserPool holds idle parsers. It has no New func so that ClosePool
// can drain it.
var parserPool sync.Pool

func newParser() *Parser {
	parser := sitter.NewParser()
	if err := parser.SetLanguage(jsLang); err != nil {
		panic(fmt.Sprintf("failed to set JS language: %v", err))
	}

	return &Parser{
		parser: parser,
		templateQuery: mustQuery("template", `
			(call_expression
				function: (identifier) @tag
				arguments: (template_string) @template)
		`),
		// css<Type>`...` is misparsed as nested binary expressions by the JS grammar
		genericQuery: mustQuery("generic", `
			(binary_expression
				left: (binary_expression
					left: (identifier) @tag)
				right: (template_string) @template)
		`),
		jsxQuery: mustQuery("jsx", `
			(jsx_attribute
				(property_identifier) @attr_name
				(_) @attr_value)
		`),
		callQuery: mustQuery("call", `
			(call_expression
				function: (identifier) @fn
				arguments: (arguments) @args)
		`),
	}
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
	for _, q := range []*sitter.Query{p.templateQuery, p.genericQuery, p.jsxQuery, p.callQuery} {
		if q != nil {
			q.Close()
		}
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

// ParseTemplates finds css/html tagged template literals and splits them at ${...} boundaries.
// Handles both standard form (css`...`) and generic form (css<Type>`...`).
func (p *Parser) ParseTemplates(source string) []TemplateRegion {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()
	return p.templates(tree.RootNode(), sourceBytes)
}

func (p *Parser) templates(root *sitter.Node, sourceBytes []byte) []TemplateRegion {
	var regions []TemplateRegion
	for _, query := range []*sitter.Query{p.templateQuery, p.genericQuery} {
		regions = runTemplateQuery(query, root, sourceBytes, regions)
	}
	return regions
}

// runTemplateQuery executes a single tree-sitter query against the parsed tree,
// extracting matching css/html tagged template regions and appending them to regions.
func runTemplateQuery(query *sitter.Query, root *sitter.Node, sourceBytes []byte, regions []TemplateRegion) []TemplateRegion {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Matches(query, root, sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		var tagName string
		var templateNode *sitter.Node

		for _, capture := range match.Captures {
			switch query.CaptureNames()[capture.Index] {
			case "tag":
				tagName = string(sourceBytes[capture.Node.StartByte():capture.Node.EndByte()])
			case "template":
				node := capture.Node
				templateNode = &node
			}
		}

		if templateNode == nil || (tagName != "css" && tagName != "html") {
			continue
		}

		if segments := extractSegments(templateNode, sourceBytes); len(segments) > 0 {
			regions = append(regions, TemplateRegion{
				Segments: segments,
				Tag:      tagName,
			})
		}
	}

	return regions
}

// extractSegments splits a template_string node into literal text segments
// (string_fragment nodes), skipping ${...} substitutions
func extractSegments(templateNode *sitter.Node, sourceBytes []byte) []Segment {
	var segments []Segment
	for i := uint(0); i < templateNode.ChildCount(); i++ {
		child := templateNode.Child(i)
		if child.Kind() == "string_fragment" {
			segments = append(segments, Segment{
				Content:   string(sourceBytes[child.StartByte():child.EndByte()]),
				StartLine: child.StartPosition().Row,
				StartCol:  child.StartPosition().Column,
			})
		}
	}
	return segments
}

// ClassStrings returns the string literal text in JS/TS source that holds
// class names, in source order of discovery: JSX class/className attributes,
// string arguments of ClassFunctions (including nested arrays and object
// keys), and class attributes of html tagged templates. Each literal is
// reported once.
func (p *Parser) ClassStrings(source string) []ClassString {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()
	root := tree.RootNode()

	c := &classCollector{src: sourceBytes, seen: make(map[uint]bool)}
	c.run(p.jsxQuery, root, "attr_name", "attr_value", func(name string) bool {
		return name == "class" || name == "className"
	})
	c.run(p.callQuery, root, "fn", "args", func(name string) bool {
		return slices.Contains(ClassFunctions, name)
	})

	for _, tmpl := range p.templates(root, sourceBytes) {
		if tmpl.Tag == "html" {
			c.htmlSegments(tmpl.Segments)
		}
	}

	return c.found
}

type classCollector struct {
	src   []byte
	seen  map[uint]bool
	found []ClassString
}

// run collects string fragments below each valueCapture whose nameCapture passes accept
func (c *classCollector) run(query *sitter.Query, root *sitter.Node, nameCapture, valueCapture string, accept func(string) bool) {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Matches(query, root, c.src)
	for match := matches.Next(); match != nil; match = matches.Next() {
		var name string
		var value *sitter.Node
		for _, capture := range match.Captures {
			switch query.CaptureNames()[capture.Index] {
			case nameCapture:
				name = string(c.src[capture.Node.StartByte():capture.Node.EndByte()])
			case valueCapture:
				node := capture.Node
				value = &node
			}
		}
		if value != nil && accept(name) {
			c.fragments(value)
		}
	}
}

// fragments walks a subtree and records every string fragment in it. Calls
// are not entered: class helpers among them are matched on their own.
func (c *classCollector) fragments(node *sitter.Node) {
	switch node.Kind() {
	case "call_expression":
		return
	case "string_fragment":
		if start := node.StartByte(); !c.seen[start] {
			c.seen[start] = true
			c.found = append(c.found, ClassString{
				Value:     string(c.src[start:node.EndByte()]),
				StartLine: node.StartPosition().Row,
				StartCol:  node.StartPosition().Column,
			})
		}
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		c.fragments(node.Child(i))
	}
}

func (c *classCollector) htmlSegments(segments []Segment) {
	htmlParser := htmlparser.AcquireParser()
	defer htmlparser.ReleaseParser(htmlParser)

	for _, seg := range segments {
		for _, attr := range htmlParser.ClassAttributes(seg.Content) {
			line, col := attr.StartLine, attr.StartCol
			if line == 0 {
				col += seg.StartCol
			}
			c.found = append(c.found, ClassString{
				Value:     attr.Value,
				StartLine: line + seg.StartLine,
				StartCol:  col,
			})
		}
	}
}

// ParseCSS extracts and parses CSS from tagged template literals in JS/TS source
func (p *Parser) ParseCSS(source string) (*css.ParseResult, error) {
	result := css.NewParseResult()
	templates := p.ParseTemplates(source)
	if len(templates) == 0 {
		return result, nil
	}

	cssParser := css.AcquireParser()
	defer css.ReleaseParser(cssParser)

	for _, tmpl := range templates {
		switch tmpl.Tag {
		case "css":
			parseCSSSegments(cssParser, tmpl.Segments, result)
		case "html":
			parseHTMLSegments(tmpl.Segments, result)
		}
	}

	return result, nil
}

// parseCSSSegments parses each segment of a css tagged template as CSS
func parseCSSSegments(cssParser *css.Parser, segments []Segment, result *css.ParseResult) {
	for _, seg := range segments {
		parsed, err := cssParser.Parse(seg.Content)
		if err != nil {
			log.Debug("Failed to parse CSS segment at %d:%d: %v", seg.StartLine, seg.StartCol, err)
			continue
		}
		parsed.Offset(uint32(seg.StartLine), uint32(seg.StartCol)) //nolint:gosec // G115: segment positions from tree-sitter are bounded by file size
		result.Append(parsed)
	}
}

// parseHTMLSegments parses each segment of an html tagged template as HTML, then extracts CSS
func parseHTMLSegments(segments []Segment, result *css.ParseResult) {
	htmlParser := htmlparser.AcquireParser()
	defer htmlparser.ReleaseParser(htmlParser)

	for _, seg := range segments {
		parsed, err := htmlParser.ParseCSS(seg.Content)
		if err != nil {
			log.Debug("Failed to parse HTML segment at %d:%d: %v", seg.StartLine, seg.StartCol, err)
			continue
		}
		parsed.Offset(uint32(seg.StartLine), uint32(seg.StartCol)) //nolint:gosec // G115: segment positions from tree-sitter are bounded by file size
		result.Append(parsed)
	}
}
