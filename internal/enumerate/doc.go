// Package enumerate implements the state enumerators of §4.7: Init and
// Next state generation, and BFS reachability over state fingerprints.
// It drives internal/eval's Context/Branch machinery the way the
// teacher's dag.Executor drives its Graph: Reachable's worklist loop is
// the sequential, non-concurrent counterpart of Executor.Run's worker
// pool, since a single evaluation here is pure and cheap enough that the
// concurrency the teacher needs for I/O-bound graph nodes buys nothing.
package enumerate
