// Package sqlparse provides statement-level SQL analysis: splitting raw text
// into statements, classifying the leading verb, finding and rewriting the
// top-level LIMIT clause, and extracting referenced table names.
//
// The lexer is deliberately shallow. It understands strings, quoted
// identifiers, comments and parenthesis depth, which is enough to reason
// about statement boundaries and top-level clauses without a full grammar.
package sqlparse

import "strings"

type tokenKind int

const (
	tkIdent tokenKind = iota
	tkNumber
	tkString
	tkPunct
	tkSemi
	tkLParen
	tkRParen
)

type token struct {
	kind  tokenKind
	text  string
	start int // byte offset in input
	end   int
	depth int // parenthesis depth at this token
}

// lower returns the token text lowercased, with identifier quoting removed.
func (t token) lower() string {
	return strings.ToLower(unquote(t.text))
}

// quoted reports whether the token is a quoted identifier. Quoted
// identifiers are always names; they never act as keywords.
func (t token) quoted() bool {
	return t.kind == tkIdent && len(t.text) > 0 &&
		(t.text[0] == '"' || t.text[0] == '`' || t.text[0] == '[')
}

// unquote strips one level of identifier quoting ("x", `x`, [x]).
func unquote(s string) string {
	if len(s) >= 2 {
		switch {
		case s[0] == '"' && s[len(s)-1] == '"':
			return strings.ReplaceAll(s[1:len(s)-1], `""`, `"`)
		case s[0] == '`' && s[len(s)-1] == '`':
			return strings.ReplaceAll(s[1:len(s)-1], "``", "`")
		case s[0] == '[' && s[len(s)-1] == ']':
			return s[1 : len(s)-1]
		}
	}
	return s
}

type lexer struct {
	input string
	pos   int
	depth int
}

func tokenize(input string) []token {
	l := &lexer{input: input}
	var tokens []token
	for {
		tok, ok := l.next()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func (l *lexer) next() (token, bool) {
	l.skipSpaceAndComments()
	if l.pos >= len(l.input) {
		return token{}, false
	}

	start := l.pos
	c := l.input[l.pos]
	switch {
	case c == '(':
		l.pos++
		tok := token{kind: tkLParen, text: "(", start: start, end: l.pos, depth: l.depth}
		l.depth++
		return tok, true
	case c == ')':
		l.pos++
		if l.depth > 0 {
			l.depth--
		}
		return token{kind: tkRParen, text: ")", start: start, end: l.pos, depth: l.depth}, true
	case c == ';':
		l.pos++
		return token{kind: tkSemi, text: ";", start: start, end: l.pos, depth: l.depth}, true
	case c == '\'':
		l.scanString('\'')
		return token{kind: tkString, text: l.input[start:l.pos], start: start, end: l.pos, depth: l.depth}, true
	case c == '"':
		l.scanString('"')
		return token{kind: tkIdent, text: l.input[start:l.pos], start: start, end: l.pos, depth: l.depth}, true
	case c == '`':
		l.scanString('`')
		return token{kind: tkIdent, text: l.input[start:l.pos], start: start, end: l.pos, depth: l.depth}, true
	case isDigit(c):
		l.scanNumber()
		return token{kind: tkNumber, text: l.input[start:l.pos], start: start, end: l.pos, depth: l.depth}, true
	case isIdentStart(c):
		l.scanIdent()
		return token{kind: tkIdent, text: l.input[start:l.pos], start: start, end: l.pos, depth: l.depth}, true
	default:
		l.pos++
		return token{kind: tkPunct, text: l.input[start:l.pos], start: start, end: l.pos, depth: l.depth}, true
	}
}

// scanString consumes a quoted region, honoring doubled-quote escapes and,
// for single quotes, backslash escapes. An unterminated string consumes the
// rest of the input rather than failing.
func (l *lexer) scanString(quote byte) {
	l.pos++ // opening quote
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '\\' && quote == '\'' && l.pos+1 < len(l.input) {
			l.pos += 2
			continue
		}
		if c == quote {
			if l.pos+1 < len(l.input) && l.input[l.pos+1] == quote {
				l.pos += 2 // doubled quote escape
				continue
			}
			l.pos++
			return
		}
		l.pos++
	}
}

func (l *lexer) scanNumber() {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if isDigit(c) || c == '.' || c == 'e' || c == 'E' {
			l.pos++
			continue
		}
		break
	}
}

func (l *lexer) scanIdent() {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if isIdentStart(c) || isDigit(c) || c == '$' {
			l.pos++
			continue
		}
		break
	}
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.pos++
		case c == '-' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '-':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '*':
			l.pos += 2
			for l.pos < len(l.input) {
				if l.input[l.pos] == '*' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '/' {
					l.pos += 2
					break
				}
				l.pos++
			}
		default:
			return
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}
