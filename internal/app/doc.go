// Package app contains the core application logic: the App struct, its
// constant resolution step, and the primary run lifecycle, decoupled
// from any specific entrypoint like a CLI. It is the teacher's
// internal/app package adapted to this domain: one App per invocation,
// built from a validated config.Config, running the interpreter's own
// library packages rather than a workflow executor.
package app
