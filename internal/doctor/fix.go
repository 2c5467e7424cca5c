package doctor

import (
	"github.com/thoreinstein/s4m/internal/errors"
)

// Fixer is an optional interface that checks can implement to support auto-remediation.
// Checks that implement Fixer can fix issues they detect when the --fix flag is used.
type Fixer interface {
	// CanFix returns true if this check has fixable issues.
	// Must be called after Run() to check if there are issues that can be fixed.
	CanFix() bool

	// Fix attempts to remediate the issues found by Run().
	// Returns a slice of FixResult indicating what was fixed or why it couldn't be fixed.
	// Must be called after Run().
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix operation.
type FixResult struct {
	// Path is the file or directory that was targeted for fixing.
	Path string `json:"path"`

	// Fixed indicates whether the fix was successfully applied.
	Fixed bool `json:"fixed"`

	// Description explains what was fixed or why it couldn't be fixed.
	Description string `json:"description"`

	// Error contains the error if the fix failed.
	Error error `json:"-"`
}

// CanFix reports whether Run found temp files to remove. Staging folders
// are never removed automatically.
func (c *LeftoverCheck) CanFix() bool {
	return len(c.temps) > 0
}

// Fix removes the temp files found by Run.
func (c *LeftoverCheck) Fix() []FixResult {
	results := make([]FixResult, 0, len(c.temps))
	for _, path := range c.temps {
		r := FixResult{Path: path}
		if err := c.remove(path); err != nil {
			r.Description = "could not remove"
			r.Error = errors.FromOS(err, "removing "+path)
		} else {
			r.Fixed = true
			r.Description = "removed"
		}
		results = append(results, r)
	}
	return results
}

// FixAll runs Fix on every check in r that implements Fixer and has
// something to fix. Checks must have been run first.
func FixAll(r *Runner) []FixResult {
	var results []FixResult
	for _, c := range r.Checks() {
		if f, ok := c.(Fixer); ok && f.CanFix() {
			results = append(results, f.Fix()...)
		}
	}
	return results
}
