package eval

import "github.com/vkazan/tlarun/internal/value"

// assignedVarKeys returns the state keys (variable names, primed or
// unprimed depending on the env's current evaluation mode) that branches
// could have newly assigned, given the module's declared variables.
func (e *Env) assignedVarKeys() []string {
	keys := make([]string, 0, len(e.VarNames))
	for _, v := range e.VarNames {
		if e.AllowUnprimedAssign {
			keys = append(keys, v)
		} else {
			keys = append(keys, v+"'")
		}
	}
	return keys
}

// newlyAssigned reports whether branchCtx's state binds a variable key
// that parent did not already bind, restricted to the module's own
// variables so that local-only bindings (quantifiers, LET) never count.
func newlyAssigned(parent Context, branchCtx Context) bool {
	for _, k := range parent.Env.assignedVarKeys() {
		if !parent.State.Has(k) && branchCtx.State.Has(k) {
			return true
		}
	}
	return false
}

// mergeDisjunctive implements §4.6's policy for \/, a flattened
// disjunction list, and \E once every sub-branch has been evaluated: if
// any sub-branch assigned a state variable the parent hadn't, every
// branch survives as-is (the enumerator will see multiple successors);
// otherwise all branches collapse into one, "any branch true", with the
// parent's own (unmodified) state.
func mergeDisjunctive(parent Context, branches []Branch) []Branch {
	for _, b := range branches {
		if newlyAssigned(parent, b.Ctx) {
			return branches
		}
	}
	any := false
	for _, b := range branches {
		if v, ok := b.Value.AsBool(); ok && v {
			any = true
			break
		}
	}
	return []Branch{{Value: value.NewBool(any), Ctx: parent}}
}
