package hclconst

import (
	"fmt"
	"math/big"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vkazan/tlarun/internal/bggoexpr"
	"github.com/vkazan/tlarun/internal/bggohcl"
	"github.com/vkazan/tlarun/internal/depgraph"
	"github.com/vkazan/tlarun/internal/value"
)

// Load parses path as a flat HCL attribute file and evaluates its
// attributes into constant values, in dependency order, merging them on
// top of base (constants supplied some other way, e.g. "-const
// name=expr" flags, which a const-file attribute's expression may also
// reference). Load never mutates base.
func Load(path string, base map[string]value.Value) (map[string]value.Value, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hclconst: reading %s: %w", path, err)
	}

	f, diags := hclsyntax.ParseConfig(src, path, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("hclconst: parsing %s: %w", path, diags)
	}
	attrs, diags := f.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("hclconst: reading attributes of %s: %w", path, diags)
	}

	order, err := dependencyOrder(attrs, base)
	if err != nil {
		return nil, fmt.Errorf("hclconst: %s: %w", path, err)
	}

	evalCtx := &hcl.EvalContext{Variables: make(map[string]cty.Value, len(base)+len(attrs))}
	for name, v := range base {
		cv, err := valueToCty(v)
		if err != nil {
			return nil, fmt.Errorf("hclconst: converting base constant %q: %w", name, err)
		}
		evalCtx.Variables[name] = cv
	}

	out := make(map[string]value.Value, len(base)+len(attrs))
	for name, v := range base {
		out[name] = v
	}

	for _, name := range order {
		attr := attrs[name]
		cv, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("hclconst: evaluating %q: %w", name, diags)
		}
		v, err := ctyToValue(cv)
		if err != nil {
			return nil, fmt.Errorf("hclconst: converting %q: %w", name, err)
		}
		out[name] = v
		evalCtx.Variables[name] = cv
	}
	return out, nil
}

// dependencyOrder builds a depgraph.Graph over attrs (nodes that
// reference another attribute in this file depend on it), runs cycle
// detection, and returns attribute names in an order where every
// dependency precedes its dependents — Kahn's algorithm over
// depgraph's Dependencies/Dependents, since depgraph itself has no
// built-in topological sort. Traversals are collected with a
// bggoexpr.Container, the same dependency-scanning helper burstgridgo
// uses over its own HCL blocks; bggohcl.TraversalKey gives
// undefined-reference errors a canonical "var.foo[0].bar" form
// instead of a bare root name. References to names in base are valid
// (resolved later by hcl.EvalContext) but never become graph edges,
// since base is already fully evaluated; anything that is neither an
// attribute nor a base constant is an undefined reference.
func dependencyOrder(attrs hcl.Attributes, base map[string]value.Value) ([]string, error) {
	g := depgraph.New()
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
		g.AddNode(name)
	}
	sort.Strings(names)

	for _, name := range names {
		c := bggoexpr.NewContainer()
		c.Add(attrs[name].Expr)
		for _, t := range c.References() {
			root := t.RootName()
			if root == name {
				continue
			}
			if _, ok := attrs[root]; ok {
				if err := g.AddEdge(root, name); err != nil {
					return nil, err
				}
				continue
			}
			if _, ok := base[root]; ok {
				continue
			}
			return nil, fmt.Errorf("constant %q references undefined name %q", name, bggohcl.TraversalKey(t))
		}
	}
	if err := g.DetectCycles(); err != nil {
		return nil, err
	}

	remaining := make(map[string]int, len(names))
	for _, n := range names {
		deps, err := g.Dependencies(n)
		if err != nil {
			return nil, err
		}
		remaining[n] = len(deps)
	}

	var ready []string
	for _, n := range names {
		if remaining[n] == 0 {
			ready = append(ready, n)
		}
	}

	order := make([]string, 0, len(names))
	for len(ready) > 0 {
		sort.Strings(ready)
		n := ready[0]
		ready = ready[1:]
		order = append(order, n)

		dependents, err := g.Dependents(n)
		if err != nil {
			return nil, err
		}
		for _, d := range dependents {
			remaining[d]--
			if remaining[d] == 0 {
				ready = append(ready, d)
			}
		}
	}
	if len(order) != len(names) {
		return nil, fmt.Errorf("dependency cycle among constants")
	}
	return order, nil
}

// ctyToValue converts a decoded cty.Value into this repo's value.Value,
// the one conversion surface where cty's value model and value.Value's
// meet.
func ctyToValue(v cty.Value) (value.Value, error) {
	if v.IsNull() {
		return value.Value{}, fmt.Errorf("null values have no TLA+ equivalent")
	}
	t := v.Type()
	switch {
	case t == cty.String:
		return value.NewStr(v.AsString()), nil
	case t == cty.Bool:
		return value.NewBool(v.True()), nil
	case t == cty.Number:
		bf := v.AsBigFloat()
		i, acc := bf.Int64()
		if acc != big.Exact {
			return value.Value{}, fmt.Errorf("non-integer number %s has no TLA+ equivalent", bf.String())
		}
		return value.NewInt(i), nil
	case t.IsTupleType() || t.IsListType():
		elems, err := ctyElements(v)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewTuple(elems...), nil
	case t.IsSetType():
		elems, err := ctyElements(v)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewSet(elems...), nil
	case t.IsObjectType() || t.IsMapType():
		return ctyObjectToRecord(v)
	default:
		return value.Value{}, fmt.Errorf("cty type %s has no TLA+ equivalent", t.FriendlyName())
	}
}

func ctyElements(v cty.Value) ([]value.Value, error) {
	out := make([]value.Value, 0, v.LengthInt())
	it := v.ElementIterator()
	for it.Next() {
		_, ev := it.Element()
		cv, err := ctyToValue(ev)
		if err != nil {
			return nil, err
		}
		out = append(out, cv)
	}
	return out, nil
}

func ctyObjectToRecord(v cty.Value) (value.Value, error) {
	var names []string
	var vals []value.Value
	it := v.ElementIterator()
	for it.Next() {
		kv, ev := it.Element()
		cv, err := ctyToValue(ev)
		if err != nil {
			return value.Value{}, err
		}
		names = append(names, kv.AsString())
		vals = append(vals, cv)
	}
	return value.NewRecord(names, vals)
}

// valueToCty converts a value.Value back into cty, for feeding
// previously-resolved constants into an hcl.EvalContext so a const-file
// attribute can reference a "-const name=expr" constant.
func valueToCty(v value.Value) (cty.Value, error) {
	switch v.Kind() {
	case value.Int:
		n, _ := v.AsInt()
		return cty.NumberIntVal(n), nil
	case value.Bool:
		b, _ := v.AsBool()
		return cty.BoolVal(b), nil
	case value.Str:
		s, _ := v.AsStr()
		return cty.StringVal(s), nil
	case value.Tuple:
		n, err := v.Length()
		if err != nil {
			return cty.NilVal, err
		}
		elems := make([]cty.Value, n)
		for i := 0; i < n; i++ {
			e, err := v.At(i + 1)
			if err != nil {
				return cty.NilVal, err
			}
			cv, err := valueToCty(e)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = cv
		}
		if len(elems) == 0 {
			return cty.EmptyTupleVal, nil
		}
		return cty.TupleVal(elems), nil
	case value.Set:
		elems, err := v.Elems()
		if err != nil {
			return cty.NilVal, err
		}
		out := make([]cty.Value, len(elems))
		for i, e := range elems {
			cv, err := valueToCty(e)
			if err != nil {
				return cty.NilVal, err
			}
			out[i] = cv
		}
		if len(out) == 0 {
			return cty.SetValEmpty(cty.DynamicPseudoType), nil
		}
		return cty.SetVal(out), nil
	case value.FcnRcd:
		if !v.IsRecord() {
			return cty.NilVal, fmt.Errorf("a function with a non-string domain has no cty equivalent")
		}
		dom, err := v.Domain()
		if err != nil {
			return cty.NilVal, err
		}
		fields, err := dom.Elems()
		if err != nil {
			return cty.NilVal, err
		}
		attrs := make(map[string]cty.Value, len(fields))
		for _, f := range fields {
			name, _ := f.AsStr()
			fv, err := v.Apply(f)
			if err != nil {
				return cty.NilVal, err
			}
			cv, err := valueToCty(fv)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[name] = cv
		}
		return cty.ObjectVal(attrs), nil
	default:
		return cty.NilVal, fmt.Errorf("value of kind %s has no cty equivalent", v.Kind())
	}
}
