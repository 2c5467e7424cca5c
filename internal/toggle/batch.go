package toggle

import (
	"github.com/thoreinstein/s4m/internal/entry"
	"github.com/thoreinstein/s4m/internal/errors"
)

// Result is the outcome of toggling one entry in a batch.
type Result struct {
	// Entry is the entry as it was passed in.
	Entry entry.Entry

	Succeeded bool

	// NewName is the entry's name after a successful toggle.
	NewName string

	// Err is the failure for an unsuccessful toggle.
	Err error
}

// ErrorKind returns the kind name of Err, or "" on success.
func (r Result) ErrorKind() string {
	return errors.Kind(r.Err)
}

// Many applies target to every entry in order and returns one Result per
// entry, index-aligned with entries. A failure is recorded and the batch
// continues; successful renames are never rolled back.
func (t *Toggler) Many(entries []entry.Entry, target entry.State) []Result {
	results := make([]Result, 0, len(entries))
	for _, e := range entries {
		updated, err := t.Apply(e, target)
		if err != nil {
			t.logger.Debug("toggle failed", "entry", e.Name(), "kind", errors.Kind(err), "error", err)
			results = append(results, Result{Entry: e, Err: err})
			continue
		}
		results = append(results, Result{Entry: e, Succeeded: true, NewName: updated.Name()})
	}
	return results
}

// FlipMany toggles every entry to the opposite of its own current state.
func (t *Toggler) FlipMany(entries []entry.Entry) []Result {
	results := make([]Result, 0, len(entries))
	for _, e := range entries {
		results = append(results, t.Many([]entry.Entry{e}, e.State.Inverse())...)
	}
	return results
}

// Summary counts the successes and failures in results.
func Summary(results []Result) (succeeded, failed int) {
	for _, r := range results {
		if r.Succeeded {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
