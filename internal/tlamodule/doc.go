// Package tlamodule extracts the declarations a module makes — constants,
// variables, operator and function definitions, and the Next action list
// — from a rewritten syntax tree, per §4.4. It also validates the
// definitions: duplicate Init/Next are rejected outright, and a
// dependency graph over definition names is checked for cycles before
// any evaluation happens, so mutually recursive operator definitions
// fail fast with a clear diagnostic instead of overflowing the
// evaluator's call stack. A definition that refers only to itself adds
// no edge and is not rejected by this check.
package tlamodule
