// Package itf serializes value.Value and tlastate.State into the
// Informal Trace Format described in §6: every value wrapped as
// {"#type": T, "#value": v}, states as a JSON object keyed by variable
// name with sorted keys. Set/function ordering follows the value
// package's fingerprint order rather than stringification, per
// spec.md's open-question guidance (b).
package itf
