// Package rewriter normalizes TLA+ module text into the restricted
// shape internal/eval's dispatcher expects: no comments, every
// quantifier binding exactly one identifier to one domain, and no
// standalone `\in`/`\notin` boolean tests (desugared into an
// existential).
//
// Comment removal is a genuine textual pass — comment bytes are
// blanked in place, newlines are never touched, so every surviving
// token keeps its original line and column exactly. Quantifier
// normalization and membership desugaring operate on the parsed tree
// rather than re-splicing source text; synthesized nodes (the nested
// quantifier chain, the desugared existential, its fresh bound name)
// inherit the position of the node they replace, which is the
// "best-effort" position-mapping the interpreter's contract allows.
package rewriter
