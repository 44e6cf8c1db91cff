package eval

import (
	"github.com/vkazan/tlarun/internal/syntax"
	"github.com/vkazan/tlarun/internal/value"
)

// bindCombo is one concrete assignment to a list of binders: Values holds
// one value per binder slot, in binder order, and Ctx has each binder's
// name(s) already bound in Locals.
type bindCombo struct {
	Values []value.Value
	Ctx    Context
}

// bindBinders enumerates every combination of values binders can take,
// threading ctx left-to-right so a later binder's domain expression may
// reference an earlier one (`\E x \in S, y \in T(x) : ...`). A Pattern
// binder (`<<a,b>> \in S`) destructures each domain element positionally
// instead of binding one name.
func bindBinders(ctx Context, binders []syntax.Binder) ([]bindCombo, error) {
	combos := []bindCombo{{Ctx: ctx}}
	for _, b := range binders {
		var next []bindCombo
		for _, c := range combos {
			domBranches, err := Eval(c.Ctx, b.Domain)
			if err != nil {
				return nil, err
			}
			for _, db := range domBranches {
				elems, err := db.Value.Elems()
				if err != nil {
					return nil, err
				}
				for _, elem := range elems {
					bc := bindCombo{
						Values: append(append([]value.Value{}, c.Values...), elem),
						Ctx:    db.Ctx,
					}
					if len(b.Pattern) > 0 {
						for i, name := range b.Pattern {
							part, err := elem.At(i + 1)
							if err != nil {
								return nil, err
							}
							bc.Ctx = bc.Ctx.WithLocal(name, part)
						}
					} else {
						bc.Ctx = bc.Ctx.WithLocal(b.Name, elem)
					}
					next = append(next, bc)
				}
			}
		}
		combos = next
	}
	return combos, nil
}

// bindingKey turns a combo's per-binder values into the single domain
// element §4.5 prescribes: the lone value when there is exactly one
// binder slot, otherwise a Tuple of them in binder order.
func bindingKey(values []value.Value) value.Value {
	if len(values) == 1 {
		return values[0]
	}
	return value.NewTuple(values...)
}
