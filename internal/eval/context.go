package eval

import (
	"context"

	"github.com/vkazan/tlarun/internal/syntax"
	"github.com/vkazan/tlarun/internal/tlamodule"
	"github.com/vkazan/tlarun/internal/tlastate"
	"github.com/vkazan/tlarun/internal/value"
)

// Env is the part of a Context shared, unmodified, across every branch of
// one top-level Eval call: the module's definitions and the constant
// bindings supplied by the caller. It is built once per enumeration run.
type Env struct {
	OpDefs    map[string]*tlamodule.OpDef
	FuncDefs  map[string]*tlamodule.FuncDef
	Constants map[string]value.Value

	// VarNames lists the module's declared state variables, used by the
	// branch-merging policy (§4.6) to tell a genuine new assignment
	// apart from an incidental local binding of the same name.
	VarNames []string

	// AllowUnprimedAssign is true while evaluating Init, where a bare
	// `x = e` assigns x; false while evaluating Next, where only `x' = e`
	// assigns and a bare `x` is a read of the predecessor state.
	AllowUnprimedAssign bool
}

// NewEnv builds an Env from an extracted module and a set of constant
// bindings.
func NewEnv(mod *tlamodule.Module, constants map[string]value.Value, allowUnprimedAssign bool) *Env {
	return &Env{
		OpDefs:              mod.OpDefs,
		FuncDefs:            mod.FuncDefs,
		Constants:           constants,
		VarNames:            mod.Vars,
		AllowUnprimedAssign: allowUnprimedAssign,
	}
}

// Context is the per-branch evaluation environment described in §4.5: a
// State in progress plus the local bindings (quantifiers, LET, operator
// parameters) visible at this point in the tree.
type Context struct {
	Env    *Env
	State  tlastate.State
	Locals map[string]value.Value

	// Primed is set while evaluating the operand of a `X'` node, so that
	// plain-identifier resolution inside it looks up the primed name.
	Primed bool

	// At, when non-nil, is the value `@` resolves to inside an EXCEPT
	// clause's RHS.
	At *value.Value

	// LocalOps and LocalFuncs hold LET-bound operator/function
	// definitions. Unlike Env.OpDefs/FuncDefs, these are looked up
	// lexically with their Scope's bindings still in effect, since a
	// LET nested inside a quantifier or another LET must still see the
	// names bound around it.
	LocalOps   map[string]*LocalOp
	LocalFuncs map[string]*LocalFunc

	// GoCtx is the context.Context this evaluation run was started
	// with, carried through every branch by ordinary struct copy so
	// node implementations (evalChoose, in particular) can log through
	// ctxlog without threading a second parameter through every Eval
	// call in the package.
	GoCtx context.Context
}

// LocalOp is a LET-bound `Name(p1, ..., pn) == Body` definition. Scope is
// the Context in effect at the LET, captured so the body can resolve
// names from its lexical surroundings when it's eventually evaluated.
type LocalOp struct {
	Params []string
	Body   *syntax.Node
	Scope  Context
}

// LocalFunc is a LET-bound `Name[v1 \in S1, ...] == Body` definition.
type LocalFunc struct {
	Binders []syntax.Binder
	Body    *syntax.Node
	Scope   Context
}

// NewContext builds the root Context for one Init/Next evaluation. ctx is
// carried on every branch for library-internal logging (§ AMBIENT STACK
// logging contract): CHOOSE's witness trace and enumerate's Init/Next/
// Reachable logging both read the logger back out via
// ctxlog.FromContext, which panics if ctx has none installed. Callers
// must first install one with ctxlog.WithLogger (app.App.Context does
// this) — a bare context.Background() panics on the first CHOOSE or log
// call.
func NewContext(ctx context.Context, env *Env, state tlastate.State) Context {
	return Context{Env: env, State: state, Locals: map[string]value.Value{}, GoCtx: ctx}
}

// WithState returns a copy of c with its State replaced.
func (c Context) WithState(s tlastate.State) Context {
	c.State = s
	return c
}

// WithLocal returns a copy of c with name bound to v in Locals, shadowing
// any constant, operator, or outer local of the same name.
func (c Context) WithLocal(name string, v value.Value) Context {
	out := make(map[string]value.Value, len(c.Locals)+1)
	for k, existing := range c.Locals {
		out[k] = existing
	}
	out[name] = v
	c.Locals = out
	return c
}

// WithPrimed returns a copy of c with the primed-scope flag set to p.
func (c Context) WithPrimed(p bool) Context {
	c.Primed = p
	return c
}

// WithAt returns a copy of c with the `@` binding set to v.
func (c Context) WithAt(v value.Value) Context {
	c.At = &v
	return c
}

// WithLocalOp returns a copy of c with a LET-bound operator added.
func (c Context) WithLocalOp(name string, op *LocalOp) Context {
	out := make(map[string]*LocalOp, len(c.LocalOps)+1)
	for k, existing := range c.LocalOps {
		out[k] = existing
	}
	out[name] = op
	c.LocalOps = out
	return c
}

// WithLocalFunc returns a copy of c with a LET-bound function added.
func (c Context) WithLocalFunc(name string, f *LocalFunc) Context {
	out := make(map[string]*LocalFunc, len(c.LocalFuncs)+1)
	for k, existing := range c.LocalFuncs {
		out[k] = existing
	}
	out[name] = f
	c.LocalFuncs = out
	return c
}

// Branch is one evaluation outcome: the Value the node evaluated to, and
// the Context (State plus Locals) as extended along that branch.
type Branch struct {
	Value value.Value
	Ctx   Context
}
