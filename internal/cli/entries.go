package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/thoreinstein/s4m/internal/cli/prompt"
	"github.com/thoreinstein/s4m/internal/entry"
	"github.com/thoreinstein/s4m/internal/errors"
	"github.com/thoreinstein/s4m/internal/toggle"
)

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	failMark = color.New(color.FgRed).Sprint("✗")
)

// pickEntries is the interactive selector. Tests replace it.
var pickEntries = prompt.PickEntries

// Labeler returns the display name of an entry.
type Labeler func(entry.Entry) string

// ToggleRequest describes one enable, disable or toggle invocation.
type ToggleRequest struct {
	Root     string
	Category entry.Category

	// Target is the state to move entries into; nil flips each entry.
	Target *entry.State

	// Names select entries by current or enabled-form name.
	Names []string

	// All selects every entry not already in Target.
	All bool

	// Interactive opens the fuzzy finder over the candidates.
	Interactive bool

	// ListCommand is suggested when a name is unknown.
	ListCommand string

	Label  Labeler
	Logger *slog.Logger
}

// RunToggle scans Root, selects entries and applies the change, writing one
// line per entry and a summary to w. A batch with failures returns an error
// carrying the first failure's kind.
func RunToggle(w io.Writer, req ToggleRequest) error {
	if req.Logger == nil {
		req.Logger = slog.Default()
	}
	if req.Label == nil {
		req.Label = func(e entry.Entry) string { return e.Base }
	}

	entries, err := entry.Scan(req.Root, req.Category)
	if err != nil {
		return err
	}

	var selected []entry.Entry
	switch {
	case req.Interactive:
		selected, err = pickEntries(candidates(entries, req.Target), req.Label)
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
		if errors.Is(err, prompt.ErrNoChoices) {
			fmt.Fprintln(w, "Nothing to change.")
			return nil
		}
		if err != nil {
			return err
		}
	case req.All:
		selected = candidates(entries, req.Target)
	case len(req.Names) > 0:
		selected, err = SelectByName(entries, req.Names, req.ListCommand)
		if err != nil {
			return err
		}
	default:
		return errors.NewUserError(errors.New("no entries given"),
			"Name one or more entries, or use --all or --interactive")
	}

	if len(selected) == 0 {
		fmt.Fprintln(w, "Nothing to change.")
		return nil
	}

	t := toggle.New(toggle.WithLogger(req.Logger))
	var results []toggle.Result
	if req.Target == nil {
		results = t.FlipMany(selected)
	} else {
		results = t.Many(selected, *req.Target)
	}

	PrintResults(w, results, req.Label)
	return ResultsError(results)
}

// candidates returns the entries a change to target would affect. A nil
// target keeps every entry.
func candidates(entries []entry.Entry, target *entry.State) []entry.Entry {
	if target == nil {
		return entries
	}
	out := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		if e.State != *target {
			out = append(out, e)
		}
	}
	return out
}

// SelectByName resolves names against entries, keeping the order of names
// and dropping duplicates. Any unknown name fails the whole selection.
func SelectByName(entries []entry.Entry, names []string, listCommand string) ([]entry.Entry, error) {
	seen := make(map[string]bool, len(names))
	out := make([]entry.Entry, 0, len(names))
	for _, name := range names {
		e, ok := entry.Lookup(entries, name)
		if !ok {
			err := errors.Mark(errors.Newf("no entry named %q", name), errors.ErrNotFound)
			return nil, errors.NewUserError(err, "Run: "+listCommand)
		}
		if seen[e.Path] {
			continue
		}
		seen[e.Path] = true
		out = append(out, e)
	}
	return out, nil
}

// PrintResults writes one line per toggle result and a summary line.
func PrintResults(w io.Writer, results []toggle.Result, label Labeler) {
	for _, r := range results {
		if r.Succeeded {
			fmt.Fprintf(w, "%s %s → %s\n", okMark, label(r.Entry), r.NewName)
			continue
		}
		fmt.Fprintf(w, "%s %s: %v (%s)\n", failMark, label(r.Entry), r.Err, r.ErrorKind())
	}
	ok, failed := toggle.Summary(results)
	fmt.Fprintf(w, "\n%d changed, %d failed\n", ok, failed)
}

// ResultsError returns nil when every toggle succeeded, otherwise the first
// failure wrapped with the failure count.
func ResultsError(results []toggle.Result) error {
	_, failed := toggle.Summary(results)
	if failed == 0 {
		return nil
	}
	for _, r := range results {
		if !r.Succeeded {
			return errors.Classify(errors.Wrapf(r.Err, "%d of %d entries failed", failed, len(results)))
		}
	}
	return nil
}

// EntryView is the JSON form of an entry.
type EntryView struct {
	Name  string `json:"name"`
	Base  string `json:"base"`
	Label string `json:"label,omitempty"`
	Kind  string `json:"kind"`
	State string `json:"state"`
	Path  string `json:"path"`
}

// PrintEntries writes entries as a table. detailHeader names the middle
// column filled by detail.
func PrintEntries(w io.Writer, entries []entry.Entry, detailHeader string, detail Labeler) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\t%s\tSTATE\n", detailHeader)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Base, detail(e), stateText(e))
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "writing table")
	}

	enabled := 0
	for _, e := range entries {
		if e.Enabled() {
			enabled++
		}
	}
	fmt.Fprintf(w, "\n%d enabled, %d disabled\n", enabled, len(entries)-enabled)
	return nil
}

// PrintEntriesJSON writes entries as an indented JSON array.
func PrintEntriesJSON(w io.Writer, entries []entry.Entry, label Labeler) error {
	views := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		v := EntryView{
			Name:  e.Name(),
			Base:  e.Base,
			Kind:  e.Kind.String(),
			State: e.State.String(),
			Path:  e.Path,
		}
		if label != nil {
			v.Label = label(e)
		}
		views = append(views, v)
	}
	return WriteJSON(w, views)
}

// WriteJSON encodes v with two-space indentation.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}

func stateText(e entry.Entry) string {
	if e.Enabled() {
		return color.GreenString("enabled")
	}
	return color.YellowString("disabled")
}
