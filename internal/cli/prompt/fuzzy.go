package prompt

import (
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/s4m/internal/entry"
	"github.com/thoreinstein/s4m/internal/errors"
)

// findMulti is swapped in tests; the real finder needs a terminal.
var findMulti = func(entries []entry.Entry, itemFunc func(int) string, opts ...fuzzyfinder.Option) ([]int, error) {
	return fuzzyfinder.FindMulti(entries, itemFunc, opts...)
}

// PickEntries opens a fuzzy finder over entries and returns the ones the
// user marks with Tab, in list order. label supplies the display name for
// each entry and may be nil. Aborting with Esc or Ctrl+C returns
// ErrSelectionCancelled.
func PickEntries(entries []entry.Entry, label func(entry.Entry) string) ([]entry.Entry, error) {
	if len(entries) == 0 {
		return nil, ErrNoChoices
	}
	if label == nil {
		label = func(e entry.Entry) string { return e.Base }
	}

	idxs, err := findMulti(
		entries,
		func(i int) string {
			return fmt.Sprintf("[%s] %s", stateMark(entries[i]), label(entries[i]))
		},
		fuzzyfinder.WithPromptString("toggle> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			e := entries[i]
			return fmt.Sprintf("Name: %s\nFolder: %s\nKind: %s\nState: %s\nPath: %s",
				label(e), e.Name(), e.Kind, e.State, e.Path)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}

	picked := make([]bool, len(entries))
	for _, i := range idxs {
		if i >= 0 && i < len(entries) {
			picked[i] = true
		}
	}
	out := make([]entry.Entry, 0, len(idxs))
	for i, ok := range picked {
		if ok {
			out = append(out, entries[i])
		}
	}
	return out, nil
}

func stateMark(e entry.Entry) string {
	if e.Enabled() {
		return "on "
	}
	return "off"
}
