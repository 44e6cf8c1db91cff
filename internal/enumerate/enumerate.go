package enumerate

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkazan/tlarun/internal/ctxlog"
	"github.com/vkazan/tlarun/internal/eval"
	"github.com/vkazan/tlarun/internal/tlaerr"
	"github.com/vkazan/tlarun/internal/tlamodule"
	"github.com/vkazan/tlarun/internal/tlastate"
	"github.com/vkazan/tlarun/internal/value"
)

// ErrMaxStatesReached is wrapped into the error Reachable returns when
// Config.MaxStates cuts an exploration short. The Result returned
// alongside it is the partial exploration up to that point, not
// discarded — callers that only want a bounded sample of the state space
// can treat this as success with errors.Is.
var ErrMaxStatesReached = errors.New("enumerate: max states reached")

// Edge is one predecessor/successor pair discovered while exploring
// reachable states, keyed by state fingerprint rather than by the
// State value itself, so an Edge is cheap to copy and compare.
type Edge struct {
	From uint64
	To   uint64
}

// Result is Reachable's output per §4.7's "also record (predecessor,
// successor) edges."
type Result struct {
	States []tlastate.State
	Edges  []Edge
}

// Init computes the initial states of m: evaluate Init's body from a
// state with no variables yet assigned, in a mode where a bare `x = e`
// assigns x, keeping only the branches whose final value is TRUE. Per
// §4.7, duplicate states (by fingerprint) collapse into one.
func Init(ctx context.Context, m *tlamodule.Module, constants map[string]value.Value) ([]tlastate.State, error) {
	logger := ctxlog.FromContext(ctx)
	body, err := m.InitBody()
	if err != nil {
		return nil, err
	}

	env := eval.NewEnv(m, constants, true)
	branches, err := eval.Eval(eval.NewContext(ctx, env, tlastate.Empty()), body)
	if err != nil {
		return nil, fmt.Errorf("enumerate: evaluating Init: %w", err)
	}

	var states []tlastate.State
	for _, b := range branches {
		bv, ok := b.Value.AsBool()
		if !ok {
			return nil, tlaerr.New(tlaerr.KindTypeMismatch, "Init must evaluate to a boolean")
		}
		if bv {
			states = append(states, b.Ctx.State)
		}
	}
	states = dedupe(states)
	logger.Debug("computed initial states", "count", len(states))
	return states, nil
}

// Next computes the successor states of s: evaluate Next's body from s
// extended with one unassigned primed slot per variable, in a mode
// where only a primed reference assigns. A branch is kept only if its
// value is TRUE and every declared variable's primed slot ended up
// assigned along that branch; anything else is discarded, not an error,
// per §4.7's edge cases.
func Next(ctx context.Context, m *tlamodule.Module, constants map[string]value.Value, s tlastate.State) ([]tlastate.State, error) {
	logger := ctxlog.FromContext(ctx)
	body, err := m.NextBody()
	if err != nil {
		return nil, err
	}

	env := eval.NewEnv(m, constants, false)
	branches, err := eval.Eval(eval.NewContext(ctx, env, s), body)
	if err != nil {
		return nil, fmt.Errorf("enumerate: evaluating Next: %w", err)
	}

	var successors []tlastate.State
	for _, b := range branches {
		bv, ok := b.Value.AsBool()
		if !ok {
			return nil, tlaerr.New(tlaerr.KindTypeMismatch, "Next must evaluate to a boolean")
		}
		if !bv || !allPrimedAssigned(env.VarNames, b.Ctx.State) {
			continue
		}
		successors = append(successors, b.Ctx.State.Deprime())
	}
	successors = dedupe(successors)
	logger.Debug("computed successor states", "from", s.Fingerprint(), "count", len(successors))
	return successors, nil
}

// Reachable runs classical BFS from initial, per §4.7: a seen-set keyed
// by state fingerprint dedupes states, every new successor is enqueued,
// and every (predecessor, successor) pair is recorded as an Edge
// regardless of whether the successor was already seen. Exploration
// stops early, returning the partial Result wrapped in
// ErrMaxStatesReached, once maxStates distinct states have been found;
// maxStates <= 0 means unbounded.
func Reachable(ctx context.Context, m *tlamodule.Module, constants map[string]value.Value, initial []tlastate.State, maxStates int) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	seen := make(map[uint64]tlastate.State)
	queue := make([]tlastate.State, 0, len(initial))
	for _, s := range initial {
		fp := s.Fingerprint()
		if _, ok := seen[fp]; ok {
			continue
		}
		seen[fp] = s
		queue = append(queue, s)
	}

	var edges []Edge
	truncated := false
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]

		successors, err := Next(ctx, m, constants, s)
		if err != nil {
			return nil, fmt.Errorf("enumerate: exploring from state %d: %w", s.Fingerprint(), err)
		}

		fromFP := s.Fingerprint()
		for _, succ := range successors {
			toFP := succ.Fingerprint()
			edges = append(edges, Edge{From: fromFP, To: toFP})
			if _, ok := seen[toFP]; ok {
				continue
			}
			if maxStates > 0 && len(seen) >= maxStates {
				truncated = true
				continue
			}
			seen[toFP] = succ
			queue = append(queue, succ)
		}
	}

	states := make([]tlastate.State, 0, len(seen))
	for _, s := range seen {
		states = append(states, s)
	}
	result := &Result{States: states, Edges: edges}

	if truncated {
		logger.Warn("reachability exploration stopped at max-states bound", "maxStates", maxStates, "statesFound", len(states))
		return result, fmt.Errorf("%w: found %d states", ErrMaxStatesReached, len(states))
	}
	logger.Info("reachability exploration complete", "statesFound", len(states), "edges", len(edges))
	return result, nil
}

func allPrimedAssigned(varNames []string, s tlastate.State) bool {
	for _, v := range varNames {
		if !s.Has(v + "'") {
			return false
		}
	}
	return true
}

func dedupe(states []tlastate.State) []tlastate.State {
	seen := make(map[uint64]bool, len(states))
	out := make([]tlastate.State, 0, len(states))
	for _, s := range states {
		fp := s.Fingerprint()
		if seen[fp] {
			continue
		}
		seen[fp] = true
		out = append(out, s)
	}
	return out
}
