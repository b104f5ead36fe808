package template

import (
	"strings"
)

// Parser builds a Template AST from lexer tokens.
type Parser struct {
	tokens []Token
	pos    int
	file   string
}

// NewParser creates a parser over the given tokens.
func NewParser(tokens []Token, file string) *Parser {
	return &Parser{tokens: tokens, file: file}
}

// Parse parses the token stream into a Template.
func Parse(input, file string) (*Template, error) {
	lexer := NewLexer(input, file)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens, file).ParseTemplate()
}

// ParseTemplate consumes all tokens and returns the parsed template.
func (p *Parser) ParseTemplate() (*Template, error) {
	nodes, err := p.parseNodes(StmtUnknown)
	if err != nil {
		return nil, err
	}
	if tok := p.current(); tok.Type != TokenEOF {
		return nil, NewParseErrorf(tok.Pos, "unexpected token %s", tok.Type)
	}
	return &Template{Nodes: nodes, File: p.file}, nil
}

// parseNodes parses nodes until EOF or a statement that terminates the
// enclosing block (endfor/endif/elif/else). The terminator token is left
// for the caller to consume.
func (p *Parser) parseNodes(enclosing StmtKind) ([]Node, error) {
	var nodes []Node

	for {
		tok := p.current()
		switch tok.Type {
		case TokenEOF:
			if enclosing != StmtUnknown {
				return nil, NewUnmatchedBlockError(tok.Pos, enclosing)
			}
			return nodes, nil

		case TokenText:
			n := &TextNode{Text: tok.Value}
			n.pos = tok.Pos
			nodes = append(nodes, n)
			p.advance()

		case TokenExpr:
			n := &ExprNode{Expr: tok.Value}
			n.pos = tok.Pos
			nodes = append(nodes, n)
			p.advance()

		case TokenStmt:
			stmt, err := parseStmt(tok)
			if err != nil {
				return nil, err
			}
			switch stmt.Kind {
			case StmtFor:
				p.advance()
				block, err := p.parseForBlock(stmt)
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, block)

			case StmtIf:
				p.advance()
				block, err := p.parseIfBlock(stmt)
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, block)

			case StmtEndFor, StmtEndIf, StmtElif, StmtElse:
				if enclosing == StmtUnknown {
					return nil, NewUnmatchedBlockError(stmt.Pos(), stmt.Kind)
				}
				return nodes, nil

			default:
				return nil, NewParseErrorf(tok.Pos, "unknown statement %q", tok.Value)
			}

		default:
			return nil, NewParseErrorf(tok.Pos, "unexpected token %s", tok.Type)
		}
	}
}

// parseForBlock parses the body of a for loop. The opening statement has
// already been consumed.
func (p *Parser) parseForBlock(open *StmtNode) (*ForBlock, error) {
	body, err := p.parseNodes(StmtFor)
	if err != nil {
		return nil, err
	}

	term, err := p.terminator()
	if err != nil {
		return nil, err
	}
	if term.Kind != StmtEndFor {
		return nil, NewUnmatchedBlockError(term.Pos(), term.Kind)
	}
	p.advance()

	block := &ForBlock{VarName: open.VarName, IterExpr: open.Expr, Body: body}
	block.pos = open.Pos()
	return block, nil
}

// parseIfBlock parses the branches of an if conditional. The opening
// statement has already been consumed.
func (p *Parser) parseIfBlock(open *StmtNode) (*IfBlock, error) {
	block := &IfBlock{Condition: open.Expr}
	block.pos = open.Pos()

	body, err := p.parseNodes(StmtIf)
	if err != nil {
		return nil, err
	}
	block.Body = body

	for {
		term, err := p.terminator()
		if err != nil {
			return nil, err
		}

		switch term.Kind {
		case StmtElif:
			p.advance()
			branchBody, err := p.parseNodes(StmtIf)
			if err != nil {
				return nil, err
			}
			block.ElseIfs = append(block.ElseIfs, Branch{
				Condition: term.Expr,
				Body:      branchBody,
				pos:       term.Pos(),
			})

		case StmtElse:
			if block.Else != nil {
				return nil, NewParseError(term.Pos(), "duplicate 'else' branch")
			}
			p.advance()
			elseBody, err := p.parseNodes(StmtIf)
			if err != nil {
				return nil, err
			}
			block.Else = elseBody

		case StmtEndIf:
			p.advance()
			return block, nil

		default:
			return nil, NewUnmatchedBlockError(term.Pos(), term.Kind)
		}
	}
}

// terminator returns the statement token that ended the current block.
func (p *Parser) terminator() (*StmtNode, error) {
	tok := p.current()
	if tok.Type != TokenStmt {
		return nil, NewParseErrorf(tok.Pos, "expected block terminator, got %s", tok.Type)
	}
	return parseStmt(tok)
}

func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// parseStmt classifies a raw statement token. A trailing colon is
// accepted on block openers so both "for x in xs" and "for x in xs:"
// parse.
func parseStmt(tok Token) (*StmtNode, error) {
	text := strings.TrimSuffix(strings.TrimSpace(tok.Value), ":")

	stmt := &StmtNode{}
	stmt.pos = tok.Pos

	switch {
	case text == "endfor":
		stmt.Kind = StmtEndFor

	case text == "endif":
		stmt.Kind = StmtEndIf

	case text == "else":
		stmt.Kind = StmtElse

	case strings.HasPrefix(text, "elif ") || strings.HasPrefix(text, "elif\t"):
		stmt.Kind = StmtElif
		stmt.Expr = strings.TrimSpace(text[len("elif"):])
		if stmt.Expr == "" {
			return nil, NewParseError(tok.Pos, "'elif' requires a condition")
		}

	case strings.HasPrefix(text, "if ") || strings.HasPrefix(text, "if\t"):
		stmt.Kind = StmtIf
		stmt.Expr = strings.TrimSpace(text[len("if"):])
		if stmt.Expr == "" {
			return nil, NewParseError(tok.Pos, "'if' requires a condition")
		}

	case strings.HasPrefix(text, "for ") || strings.HasPrefix(text, "for\t"):
		rest := strings.TrimSpace(text[len("for"):])
		varName, iter, ok := strings.Cut(rest, " in ")
		if !ok {
			return nil, NewParseError(tok.Pos, "'for' requires the form 'for <var> in <expr>'")
		}
		stmt.Kind = StmtFor
		stmt.VarName = strings.TrimSpace(varName)
		stmt.Expr = strings.TrimSpace(iter)
		if stmt.VarName == "" || stmt.Expr == "" {
			return nil, NewParseError(tok.Pos, "'for' requires the form 'for <var> in <expr>'")
		}

	default:
		return nil, NewParseErrorf(tok.Pos, "unknown statement %q", text)
	}

	return stmt, nil
}
