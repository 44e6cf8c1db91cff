package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/vkazan/tlarun/internal/eval"
	"github.com/vkazan/tlarun/internal/hclconst"
	"github.com/vkazan/tlarun/internal/rewriter"
	"github.com/vkazan/tlarun/internal/tlamodule"
	"github.com/vkazan/tlarun/internal/tlastate"
	"github.com/vkazan/tlarun/internal/value"
)

// resolveConstants evaluates every "-const name=expr" flag, in the order
// given (so a later expression may refer to an earlier one), then merges
// an optional "-const-file" convenience file on top. Each expr is raw
// TLA+ expression text, run through the same rewriter/eval pipeline as
// the module itself, rather than a second bespoke expression parser.
func resolveConstants(ctx context.Context, exprs []string, constFile string) (map[string]value.Value, error) {
	consts := make(map[string]value.Value, len(exprs))
	for _, raw := range exprs {
		name, exprText, err := splitConstFlag(raw)
		if err != nil {
			return nil, err
		}
		v, err := evalConstExpr(ctx, name, exprText, consts)
		if err != nil {
			return nil, fmt.Errorf("app: evaluating constant %q: %w", name, err)
		}
		consts[name] = v
	}

	if constFile == "" {
		return consts, nil
	}
	merged, err := hclconst.Load(constFile, consts)
	if err != nil {
		return nil, fmt.Errorf("app: loading const file %q: %w", constFile, err)
	}
	return merged, nil
}

func splitConstFlag(raw string) (name, expr string, err error) {
	i := strings.IndexByte(raw, '=')
	if i <= 0 {
		return "", "", fmt.Errorf("app: invalid -const %q: want name=expr", raw)
	}
	return strings.TrimSpace(raw[:i]), strings.TrimSpace(raw[i+1:]), nil
}

// evalConstExpr wraps expr in a throwaway one-definition module so it can
// run through the same rewriter/extractor/evaluator the real module
// does, rather than needing a standalone expression-only entry point
// anywhere in internal/syntax.
func evalConstExpr(ctx context.Context, name, expr string, priorConsts map[string]value.Value) (value.Value, error) {
	src := fmt.Sprintf("---- MODULE Const ----\n%s == %s\n====", name, expr)
	mod, err := rewriter.Rewrite(src)
	if err != nil {
		return value.Value{}, err
	}
	m, err := tlamodule.Extract(mod)
	if err != nil {
		return value.Value{}, err
	}
	def, ok := m.OpDefs[name]
	if !ok {
		return value.Value{}, fmt.Errorf("could not parse constant definition")
	}

	env := eval.NewEnv(m, priorConsts, false)
	branches, err := eval.Eval(eval.NewContext(ctx, env, tlastate.Empty()), def.Body)
	if err != nil {
		return value.Value{}, err
	}
	if len(branches) != 1 {
		return value.Value{}, fmt.Errorf("expression does not evaluate to a single value (got %d branches)", len(branches))
	}
	return branches[0].Value, nil
}
