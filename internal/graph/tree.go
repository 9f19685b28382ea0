package graph

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

type nodeKind int

const (
	atRuleNode nodeKind = iota
	ruleNode
	declarationNode
)

// node is one statement of a stylesheet: an at-rule, a qualified rule or a
// declaration. start and end are byte offsets covering the whole statement.
type node struct {
	kind nodeKind
	// name is the at-keyword without "@" (lower case) or the declaration property
	name string
	// prelude is the at-rule prelude or the rule selector
	prelude  string
	value    string
	hasBlock bool
	children []*node
	start    int
	end      int
}

type token struct {
	tt   css.TokenType
	data string
	off  int
}

// lex splits src into tokens with their byte offsets. The lexer emits every
// input byte in exactly one token, so offsets are running sums.
func lex(src string) []token {
	lexer := css.NewLexer(parse.NewInput(strings.NewReader(src)))
	var toks []token
	off := 0
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			return toks
		}
		toks = append(toks, token{tt: tt, data: string(data), off: off})
		off += len(data)
	}
}

type treeParser struct {
	src  string
	toks []token
	pos  int
}

// parseTree parses src into its top-level statements. It never fails:
// unbalanced input ends the current block at end of input and stray closing
// braces are skipped.
func parseTree(src string) []*node {
	p := &treeParser{src: src, toks: lex(src)}
	var nodes []*node
	for p.pos < len(p.toks) {
		if p.toks[p.pos].tt == css.RightBraceToken {
			p.pos++
			continue
		}
		if n := p.statement(); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func (p *treeParser) offset() int {
	if p.pos < len(p.toks) {
		return p.toks[p.pos].off
	}
	return len(p.src)
}

func (p *treeParser) skipTrivia() {
	for p.pos < len(p.toks) {
		switch p.toks[p.pos].tt {
		case css.WhitespaceToken, css.CommentToken, css.CDOToken, css.CDCToken, css.SemicolonToken:
			p.pos++
		default:
			return
		}
	}
}

// block parses statements up to the matching "}" and consumes it
func (p *treeParser) block() []*node {
	var nodes []*node
	for {
		p.skipTrivia()
		if p.pos >= len(p.toks) {
			return nodes
		}
		if p.toks[p.pos].tt == css.RightBraceToken {
			p.pos++
			return nodes
		}
		if n := p.statement(); n != nil {
			nodes = append(nodes, n)
		}
	}
}

// statement parses one statement starting at the current token. It returns
// nil when only trivia was left.
func (p *treeParser) statement() *node {
	p.skipTrivia()
	if p.pos >= len(p.toks) || p.toks[p.pos].tt == css.RightBraceToken {
		return nil
	}

	start := p.offset()
	if t := p.toks[p.pos]; t.tt == css.AtKeywordToken {
		p.pos++
		n := &node{
			kind:  atRuleNode,
			name:  strings.ToLower(strings.TrimPrefix(t.data, "@")),
			start: start,
		}
		prelude, term := p.until()
		n.prelude = strings.TrimSpace(prelude)
		if term == css.LeftBraceToken {
			n.hasBlock = true
			n.children = p.block()
		}
		n.end = p.offset()
		return n
	}

	text, term := p.until()
	switch term {
	case css.LeftBraceToken:
		n := &node{kind: ruleNode, prelude: strings.TrimSpace(text), hasBlock: true, start: start}
		n.children = p.block()
		n.end = p.offset()
		return n
	default:
		n := &node{kind: declarationNode, start: start, end: p.offset()}
		name, value, ok := strings.Cut(text, ":")
		if !ok {
			// not a declaration; keep the text so callers can skip it
			n.name = strings.TrimSpace(text)
			return n
		}
		n.name = strings.TrimSpace(name)
		n.value = strings.TrimSpace(value)
		return n
	}
}

// until collects text up to a "{" or ";" outside parentheses and brackets, or
// any "}", and returns it with the terminating token type. "{" and ";" are
// consumed, "}" is left for the enclosing block. Comments are dropped.
// ErrorToken is returned at end of input.
func (p *treeParser) until() (string, css.TokenType) {
	var b strings.Builder
	depth := 0
	for p.pos < len(p.toks) {
		t := p.toks[p.pos]
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.LeftBraceToken, css.SemicolonToken:
			if depth == 0 {
				p.pos++
				return b.String(), t.tt
			}
		case css.RightBraceToken:
			return b.String(), t.tt
		case css.CommentToken:
			p.pos++
			continue
		}
		b.WriteString(t.data)
		p.pos++
	}
	return b.String(), css.ErrorToken
}
