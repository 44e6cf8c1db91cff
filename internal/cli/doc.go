// Package cli parses command-line arguments, validates user input, and
// translates flags into an internal/config.Config, the same
// responsibility the teacher's internal/cli package has for
// burstgridgo's own flag set.
package cli
