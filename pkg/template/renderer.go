package template

import (
	"errors"
	"fmt"
	"strings"

	"go.starlark.net/starlark"
)

// Renderer walks a parsed template and produces the expanded SQL text.
type Renderer struct {
	env  *Environment
	file string
}

// NewRenderer creates a renderer bound to an environment.
func NewRenderer(env *Environment, file string) *Renderer {
	return &Renderer{env: env, file: file}
}

// RenderString parses and renders a template in one step.
func RenderString(input, file string, env *Environment) (string, error) {
	tmpl, err := Parse(input, file)
	if err != nil {
		return "", err
	}
	return NewRenderer(env, file).Render(tmpl)
}

// Render evaluates the template against the environment.
func (r *Renderer) Render(tmpl *Template) (string, error) {
	var sb strings.Builder
	if err := r.renderNodes(&sb, tmpl.Nodes, nil); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (r *Renderer) renderNodes(sb *strings.Builder, nodes []Node, locals starlark.StringDict) error {
	for _, node := range nodes {
		switch n := node.(type) {
		case *TextNode:
			sb.WriteString(n.Text)

		case *ExprNode:
			if err := r.renderExpr(sb, n, locals); err != nil {
				return err
			}

		case *ForBlock:
			if err := r.renderFor(sb, n, locals); err != nil {
				return err
			}

		case *IfBlock:
			if err := r.renderIf(sb, n, locals); err != nil {
				return err
			}

		default:
			return NewRenderErrorf(node.Pos(), "unexpected node type %T", node)
		}
	}
	return nil
}

// renderExpr evaluates a {{ expr }} expression. An expression that fails
// only because a name is undefined is emitted back as a literal
// placeholder, so partially specified templates degrade instead of
// failing the whole render.
func (r *Renderer) renderExpr(sb *strings.Builder, n *ExprNode, locals starlark.StringDict) error {
	value, err := r.eval(n.Expr, n.Pos(), locals)
	if err != nil {
		if isUndefinedError(err) {
			sb.WriteString("{{ " + n.Expr + " }}")
			return nil
		}
		return err
	}
	sb.WriteString(valueString(value))
	return nil
}

func (r *Renderer) renderFor(sb *strings.Builder, n *ForBlock, locals starlark.StringDict) error {
	iterValue, err := r.eval(n.IterExpr, n.Pos(), locals)
	if err != nil {
		return err
	}

	iterable, ok := iterValue.(starlark.Iterable)
	if !ok {
		return NewRenderErrorf(n.Pos(), "cannot iterate over %s in 'for' loop", iterValue.Type())
	}

	iter := iterable.Iterate()
	defer iter.Done()

	var item starlark.Value
	for iter.Next(&item) {
		inner := make(starlark.StringDict, len(locals)+1)
		for k, v := range locals {
			inner[k] = v
		}
		inner[n.VarName] = item

		if err := r.renderNodes(sb, n.Body, inner); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderIf(sb *strings.Builder, n *IfBlock, locals starlark.StringDict) error {
	cond, err := r.eval(n.Condition, n.Pos(), locals)
	if err != nil {
		return err
	}
	if cond.Truth() {
		return r.renderNodes(sb, n.Body, locals)
	}

	for _, branch := range n.ElseIfs {
		cond, err := r.eval(branch.Condition, branch.pos, locals)
		if err != nil {
			return err
		}
		if cond.Truth() {
			return r.renderNodes(sb, branch.Body, locals)
		}
	}

	if n.Else != nil {
		return r.renderNodes(sb, n.Else, locals)
	}
	return nil
}

// eval runs a single Starlark expression with the environment globals
// plus any loop locals. Locals shadow globals.
func (r *Renderer) eval(expr string, pos Position, locals starlark.StringDict) (starlark.Value, error) {
	globals := r.env.Globals()
	if len(locals) > 0 {
		combined := make(starlark.StringDict, len(globals)+len(locals))
		for k, v := range globals {
			combined[k] = v
		}
		for k, v := range locals {
			combined[k] = v
		}
		globals = combined
	}

	thread := &starlark.Thread{
		Name: r.file,
		Print: func(_ *starlark.Thread, _ string) {
			// Templates do not print.
		},
	}

	value, err := starlark.Eval(thread, r.file, expr, globals) //nolint:staticcheck // SA1019: will migrate to EvalOptions later
	if err != nil {
		return nil, WrapRenderError(pos, fmt.Sprintf("error evaluating %q", expr), err)
	}
	return value, nil
}

// isUndefinedError reports whether an evaluation failed because a name
// was not defined, as opposed to a genuine expression error.
func isUndefinedError(err error) bool {
	var re *RenderError
	if !errors.As(err, &re) || re.Cause == nil {
		return false
	}
	return strings.Contains(re.Cause.Error(), "undefined: ")
}

// valueString converts an evaluated value to its SQL text form. Strings
// are emitted raw, None renders as empty.
func valueString(v starlark.Value) string {
	switch val := v.(type) {
	case starlark.String:
		return string(val)
	case starlark.NoneType:
		return ""
	default:
		return v.String()
	}
}
