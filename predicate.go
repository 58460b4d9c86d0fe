package cursor

import (
	"fmt"
	"strings"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
	celgo "github.com/google/cel-go/cel"
)

// ElementMatchPredicate decides whether an element is interactive.
type ElementMatchPredicate interface {
	Match(e *Element) bool
}

// PredicateFunc adapts a plain function to ElementMatchPredicate.
type PredicateFunc func(e *Element) bool

// Match calls f(e).
func (f PredicateFunc) Match(e *Element) bool { return f(e) }

// DefaultInteractive matches links, buttons, form controls and elements
// tagged with TagCursorHover.
var DefaultInteractive ElementMatchPredicate = PredicateFunc(func(e *Element) bool {
	return e.Role != RoleNone || e.HasTag(TagCursorHover)
})

// Predicate engines accepted by PredicateConfig.Engine.
const (
	EngineBuiltin = "builtin"
	EngineExpr    = "expr"
	EngineCEL     = "cel"
)

// NewPredicate builds the predicate described by cfg. An empty engine or
// expression selects DefaultInteractive.
func NewPredicate(cfg PredicateConfig) (ElementMatchPredicate, error) {
	engine := strings.ToLower(strings.TrimSpace(cfg.Engine))
	if engine == "" || engine == EngineBuiltin || strings.TrimSpace(cfg.Expression) == "" {
		return DefaultInteractive, nil
	}
	switch engine {
	case EngineExpr:
		return NewExprPredicate(cfg.Expression)
	case EngineCEL:
		return NewCELPredicate(cfg.Expression)
	default:
		return nil, fmt.Errorf("%w: unknown predicate engine %q", ErrInvalidConfig, cfg.Engine)
	}
}

// elementVars exposes the element fields visible to predicate expressions.
func elementVars(e *Element) map[string]any {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"name":    e.Name,
		"role":    e.Role.String(),
		"tags":    tags,
		"visible": e.Visible,
		"label":   e.Label,
	}
}

// --- expr ---

// ExprPredicate matches elements with a compiled expr-lang expression, e.g.
//
//	role in ["link", "button"] || "cursor-hover" in tags
type ExprPredicate struct {
	program    *exprvm.Program
	expression string
}

// NewExprPredicate compiles expression. It must evaluate to a bool.
func NewExprPredicate(expression string) (*ExprPredicate, error) {
	program, err := exprlang.Compile(expression,
		exprlang.Env(elementVars(&Element{})),
		exprlang.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("compile expr predicate %q: %w", expression, err)
	}
	return &ExprPredicate{program: program, expression: expression}, nil
}

// Match evaluates the expression against e. Evaluation errors count as no match.
func (p *ExprPredicate) Match(e *Element) bool {
	out, err := exprlang.Run(p.program, elementVars(e))
	if err != nil {
		return false
	}
	b, _ := out.(bool)
	return b
}

// String returns the source expression.
func (p *ExprPredicate) String() string { return p.expression }

// --- CEL ---

// CELPredicate matches elements with a compiled CEL expression, e.g.
//
//	role != "none" || tags.exists(t, t == "cursor-hover")
type CELPredicate struct {
	program    celgo.Program
	expression string
}

// NewCELPredicate compiles expression. It must have a bool output type.
func NewCELPredicate(expression string) (*CELPredicate, error) {
	env, err := celgo.NewEnv(
		celgo.Variable("name", celgo.StringType),
		celgo.Variable("role", celgo.StringType),
		celgo.Variable("tags", celgo.ListType(celgo.StringType)),
		celgo.Variable("visible", celgo.BoolType),
		celgo.Variable("label", celgo.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("cel environment: %w", err)
	}
	ast, iss := env.Compile(expression)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("compile cel predicate %q: %w", expression, iss.Err())
	}
	if ast.OutputType() != celgo.BoolType {
		return nil, fmt.Errorf("compile cel predicate %q: output type %s, want bool", expression, ast.OutputType())
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("cel program %q: %w", expression, err)
	}
	return &CELPredicate{program: program, expression: expression}, nil
}

// Match evaluates the expression against e. Evaluation errors count as no match.
func (p *CELPredicate) Match(e *Element) bool {
	out, _, err := p.program.Eval(elementVars(e))
	if err != nil {
		return false
	}
	b, _ := out.Value().(bool)
	return b
}

// String returns the source expression.
func (p *CELPredicate) String() string { return p.expression }
