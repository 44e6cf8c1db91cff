// Package eval is the recursive evaluator described in §4.5 of the
// interpreter's contract: given a syntax node and a Context, it returns a
// non-empty list of Contexts, each one evaluation branch. A branch
// carries the Value the node evaluated to and the State as extended by
// any variable assignments that branch made along the way.
//
// The dispatcher (Eval) is one large switch over syntax.Kind, in the
// style of the teacher's walkForFunctions — a flat type/kind switch
// rather than a per-kind interface hierarchy, since the syntax package
// already commits to one Node type for every construct.
package eval
