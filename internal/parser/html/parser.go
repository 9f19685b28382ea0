package html

import (
	"fmt"
	"slices"
	"sync"

	"bennypowers.dev/mincss/internal/log"
	"bennypowers.dev/mincss/internal/parser/css"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

// ClassAttributeNames are the attributes whose values are class lists.
// Framework bindings such as Vue's ":class" are included.
var ClassAttributeNames = []string{"class", "className", ":class", "v-bind:class", "x-bind:class"}

// Parser handles parsing HTML to extract class attributes and CSS regions
type Parser struct {
	parser     *sitter.Parser
	styleQuery *sitter.Query
	attrQuery  *sitter.Query
}

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

// parserPool holds idle parsers. It has no New func so that ClosePool
// can drain it.
var parserPool sync.Pool

func newParser() *Parser {
	parser := sitter.NewParser()
	if err := parser.SetLanguage(htmlLang); err != nil {
		panic(fmt.Sprintf("failed to set HTML language: %v", err))
	}

	styleQuery, qerr := sitter.NewQuery(htmlLang, `(style_element (raw_text) @css)`)
	if qerr != nil {
		panic(fmt.Sprintf("failed to compile style query: %v", qerr))
	}

	attrQuery, qerr := sitter.NewQuery(htmlLang, `
		(attribute
			(attribute_name) @attr_name
			[
				(attribute_value) @attr_value
				(quoted_attribute_value (attribute_value) @attr_value)
			])
	`)
	if qerr != nil {
		panic(fmt.Sprintf("failed to compile attribute query: %v", qerr))
	}

	return &Parser{
		parser:     parser,
		styleQuery: styleQuery,
		attrQuery:  attrQuery,
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
	if p.styleQuery != nil {
		p.styleQuery.Close()
	}
	if p.attrQuery != nil {
		p.attrQuery.Close()
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

// document is the result of one pass over an HTML source
type document struct {
	regions []CSSRegion
	classes []ClassAttribute
}

func (p *Parser) scan(source string) *document {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return &document{}
	}
	defer tree.Close()

	root := tree.RootNode()
	doc := &document{}

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Matches(p.styleQuery, root, sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		for _, capture := range match.Captures {
			node := capture.Node
			doc.regions = append(doc.regions, CSSRegion{
				Content:   string(sourceBytes[node.StartByte():node.EndByte()]),
				StartLine: node.StartPosition().Row,
				StartCol:  node.StartPosition().Column,
				Type:      StyleTag,
			})
		}
	}

	attrCursor := sitter.NewQueryCursor()
	defer attrCursor.Close()

	attrMatches := attrCursor.Matches(p.attrQuery, root, sourceBytes)
	for match := attrMatches.Next(); match != nil; match = attrMatches.Next() {
		var name string
		var valueNode *sitter.Node
		for _, capture := range match.Captures {
			switch p.attrQuery.CaptureNames()[capture.Index] {
			case "attr_name":
				name = string(sourceBytes[capture.Node.StartByte():capture.Node.EndByte()])
			case "attr_value":
				node := capture.Node
				valueNode = &node
			}
		}
		if valueNode == nil {
			continue
		}

		content := string(sourceBytes[valueNode.StartByte():valueNode.EndByte()])
		line, col := valueNode.StartPosition().Row, valueNode.StartPosition().Column
		switch {
		case name == "style":
			doc.regions = append(doc.regions, CSSRegion{
				Content:   content,
				StartLine: line,
				StartCol:  col,
				Type:      StyleAttribute,
			})
		case slices.Contains(ClassAttributeNames, name):
			doc.classes = append(doc.classes, ClassAttribute{
				Name:      name,
				Value:     content,
				StartLine: line,
				StartCol:  col,
			})
		}
	}

	return doc
}

// ClassAttributes returns the class attribute values of an HTML source in document order
func (p *Parser) ClassAttributes(source string) []ClassAttribute {
	return p.scan(source).classes
}

// ParseCSSRegions extracts CSS regions from HTML source: <style> contents
// first, then style attributes
func (p *Parser) ParseCSSRegions(source string) []CSSRegion {
	return p.scan(source).regions
}

// ParseCSS extracts CSS from HTML and parses it, mapping positions back to HTML coordinates
func (p *Parser) ParseCSS(source string) (*css.ParseResult, error) {
	result := css.NewParseResult()
	regions := p.ParseCSSRegions(source)
	if len(regions) == 0 {
		return result, nil
	}

	cssParser := css.AcquireParser()
	defer css.ReleaseParser(cssParser)

	for _, region := range regions {
		var parsed *css.ParseResult
		var err error
		switch region.Type {
		case StyleTag:
			parsed, err = cssParser.Parse(region.Content)
		case StyleAttribute:
			parsed, err = parseStyleAttribute(cssParser, region.Content)
		default:
			continue
		}
		if err != nil {
			log.Debug("Failed to parse CSS region at %d:%d: %v", region.StartLine, region.StartCol, err)
			continue
		}
		parsed.Offset(uint32(region.StartLine), uint32(region.StartCol)) //nolint:gosec // G115: region positions from tree-sitter are bounded by file size
		result.Append(parsed)
	}

	return result, nil
}

// attributeWrapper makes a style attribute's declarations a parsable rule
const attributeWrapper = "x{"

// parseStyleAttribute parses the declarations of a style attribute and
// removes the wrapper from first-line columns
func parseStyleAttribute(cssParser *css.Parser, content string) (*css.ParseResult, error) {
	parsed, err := cssParser.Parse(attributeWrapper + content + "}")
	if err != nil {
		return nil, err
	}
	unwrap := func(r *css.Range) {
		for _, pos := range []*css.Position{&r.Start, &r.End} {
			if pos.Line == 0 && pos.Character >= uint32(len(attributeWrapper)) {
				pos.Character -= uint32(len(attributeWrapper))
			}
		}
	}
	for _, d := range parsed.Declarations {
		unwrap(&d.Range)
	}
	for _, ref := range parsed.References {
		unwrap(&ref.Range)
	}
	for _, a := range parsed.Applies {
		unwrap(&a.Range)
	}
	return parsed, nil
}
