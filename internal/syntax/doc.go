// Package syntax implements the concrete lexer and recursive-descent
// parser that turn TLA+ module text into a labeled Node tree.
//
// Upstream architectures that embed this evaluator typically get this
// tree from a tree-sitter grammar and treat parsing as an external
// concern; this repository is a standalone module that accepts module
// text as input (see §6 of the interpreter's external interfaces), so
// it owns its own parser. internal/rewriter calls Parse once on the
// comment-stripped text and then rewrites the resulting tree, so Parse
// is the single entry point into this package.
package syntax
