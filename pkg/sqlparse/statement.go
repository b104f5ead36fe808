package sqlparse

import (
	"sort"
	"strconv"
	"strings"
)

// Statement is the ephemeral parsed form of a single SQL statement. It is
// constructed per execution and discarded afterwards, never persisted.
type Statement struct {
	raw    string
	tokens []token
}

// Parse tokenizes one SQL statement. The input is taken verbatim; callers
// that may receive multi-statement text should use SplitStatements first.
func Parse(sql string) *Statement {
	return &Statement{raw: sql, tokens: tokenize(sql)}
}

// String returns the statement text, trimmed.
func (s *Statement) String() string {
	return strings.TrimSpace(s.raw)
}

// Empty reports whether the statement contains no tokens at all (blank text
// or comments only).
func (s *Statement) Empty() bool {
	for _, t := range s.tokens {
		if t.kind != tkSemi {
			return false
		}
	}
	return true
}

// SplitStatements splits raw SQL text on top-level semicolons, dropping
// fragments that contain no tokens (trailing whitespace, comment tails).
func SplitStatements(sql string) []string {
	tokens := tokenize(sql)
	var out []string
	segStart := 0
	hasToken := false
	for _, t := range tokens {
		if t.kind == tkSemi && t.depth == 0 {
			if hasToken {
				out = append(out, strings.TrimSpace(sql[segStart:t.start]))
			}
			segStart = t.end
			hasToken = false
			continue
		}
		hasToken = true
	}
	if hasToken {
		if tail := strings.TrimSpace(sql[segStart:]); tail != "" {
			out = append(out, tail)
		}
	}
	return out
}

// TrimTrailingSemicolon removes trailing whitespace and semicolons.
func TrimTrailingSemicolon(sql string) string {
	return strings.TrimRight(strings.TrimSpace(sql), "; \t\n\r")
}

// mainVerbs are the statement verbs recognized after a WITH clause.
var mainVerbs = map[string]struct{}{
	"select": {}, "insert": {}, "update": {}, "delete": {},
	"create": {}, "drop": {}, "alter": {}, "merge": {}, "replace": {},
}

// Verb returns the uppercased leading verb of the statement. Leading
// parentheses are skipped, and a WITH clause resolves to the verb of the
// main statement body.
func (s *Statement) Verb() string {
	var first *token
	for i := range s.tokens {
		if s.tokens[i].kind == tkIdent {
			first = &s.tokens[i]
			break
		}
		if s.tokens[i].kind == tkLParen {
			continue
		}
		break
	}
	if first == nil {
		return ""
	}
	verb := first.lower()
	if verb != "with" {
		return strings.ToUpper(verb)
	}
	// CTE: the main verb is the first bare keyword at depth 0 after the
	// WITH. Quoted identifiers are names, so a CTE named "select" can
	// never stand in for the statement verb.
	verbIdx := -1
	for i := range s.tokens {
		t := &s.tokens[i]
		if t == first || t.kind != tkIdent || t.depth != 0 || t.quoted() {
			continue
		}
		if _, ok := mainVerbs[t.lower()]; ok {
			verbIdx = i
			break
		}
	}
	if verbIdx < 0 {
		return "WITH"
	}
	// A data-modifying CTE body (WITH x AS (DELETE ...) SELECT ...)
	// makes the whole statement carry that verb.
	for i := 0; i < verbIdx; i++ {
		if s.tokens[i].kind != tkLParen || s.tokens[i].depth != 0 {
			continue
		}
		j := i + 1
		if j >= verbIdx || s.tokens[j].kind != tkIdent || s.tokens[j].quoted() {
			continue
		}
		if v := s.tokens[j].lower(); v != "select" {
			if _, ok := mainVerbs[v]; ok {
				return strings.ToUpper(v)
			}
		}
	}
	return strings.ToUpper(s.tokens[verbIdx].lower())
}

// IsSelect reports whether the statement (after CTE resolution) is a SELECT.
func (s *Statement) IsSelect() bool { return s.Verb() == "SELECT" }

// IsExplain reports whether the statement is an EXPLAIN.
func (s *Statement) IsExplain() bool { return s.Verb() == "EXPLAIN" }

// IsShow reports whether the statement is a SHOW.
func (s *Statement) IsShow() bool { return s.Verb() == "SHOW" }

// limitClause locates the top-level LIMIT clause. It returns the index of
// the numeric token that carries the effective limit, or -1. For the MySQL
// form "LIMIT offset, count" the count token is returned.
func (s *Statement) limitClause() int {
	for i := len(s.tokens) - 1; i >= 0; i-- {
		t := s.tokens[i]
		if t.kind != tkIdent || t.depth != 0 || t.lower() != "limit" {
			continue
		}
		if i+1 >= len(s.tokens) || s.tokens[i+1].kind != tkNumber {
			continue
		}
		// "LIMIT a, b" means offset a, count b.
		if i+3 < len(s.tokens) && s.tokens[i+2].kind == tkPunct && s.tokens[i+2].text == "," && s.tokens[i+3].kind == tkNumber {
			return i + 3
		}
		return i + 1
	}
	return -1
}

// Limit returns the statement's top-level LIMIT value, if present.
func (s *Statement) Limit() (int, bool) {
	idx := s.limitClause()
	if idx < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s.tokens[idx].text)
	if err != nil {
		return 0, false
	}
	return n, true
}

// WithLimit returns the statement text with its top-level LIMIT set to n:
// an existing clause has its value replaced in place, otherwise a LIMIT is
// appended after stripping any trailing semicolon.
func (s *Statement) WithLimit(n int) string {
	idx := s.limitClause()
	if idx < 0 {
		return TrimTrailingSemicolon(s.raw) + "\nLIMIT " + strconv.Itoa(n)
	}
	t := s.tokens[idx]
	return s.raw[:t.start] + strconv.Itoa(n) + s.raw[t.end:]
}

// Tables returns the distinct table names referenced in FROM and JOIN
// clauses at any nesting depth, sorted. Quoting is stripped; dotted names
// are preserved. Subqueries and table functions are ignored.
func (s *Statement) Tables() []string {
	seen := make(map[string]struct{})
	for i := 0; i < len(s.tokens); i++ {
		t := s.tokens[i]
		if t.kind != tkIdent {
			continue
		}
		kw := t.lower()
		if kw != "from" && kw != "join" {
			continue
		}
		name, next := s.qualifiedName(i + 1)
		if name == "" {
			continue
		}
		// A following "(" means a table function, not a table reference.
		if next < len(s.tokens) && s.tokens[next].kind == tkLParen {
			continue
		}
		seen[name] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// qualifiedName reads an ident(.ident)* sequence starting at token index i.
// It returns the dotted name (or "" if i is not an identifier) and the index
// of the first token after the name.
func (s *Statement) qualifiedName(i int) (string, int) {
	if i >= len(s.tokens) || s.tokens[i].kind != tkIdent {
		return "", i
	}
	parts := []string{unquote(s.tokens[i].text)}
	i++
	for i+1 < len(s.tokens) && s.tokens[i].kind == tkPunct && s.tokens[i].text == "." && s.tokens[i+1].kind == tkIdent {
		parts = append(parts, unquote(s.tokens[i+1].text))
		i += 2
	}
	return strings.Join(parts, "."), i
}
