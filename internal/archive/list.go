package archive

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/s4m/internal/errors"
)

type listed struct {
	Record
	seq int
}

// List returns the archives in dir, newest first. A non-empty label
// restricts the result to archives with that label. Files whose names do
// not parse as archive names are ignored.
func List(dir, label string) ([]Record, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.FromOS(err, "reading backup directory")
	}

	found := make([]listed, 0, len(des))
	for _, de := range des {
		if !de.Type().IsRegular() || !strings.EqualFold(filepath.Ext(de.Name()), Ext) {
			continue
		}
		l, created, seq, err := parseName(de.Name())
		if err != nil {
			continue
		}
		if label != "" && l != label {
			continue
		}
		rec := Record{
			Path:      filepath.Join(dir, de.Name()),
			Label:     l,
			CreatedAt: created,
		}
		if info, err := de.Info(); err == nil {
			rec.Size = info.Size()
		}
		found = append(found, listed{Record: rec, seq: seq})
	}

	if len(found) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(found, func(a, b listed) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		if a.seq != b.seq {
			return b.seq - a.seq
		}
		return strings.Compare(a.Label, b.Label)
	})

	out := make([]Record, len(found))
	for i, f := range found {
		out[i] = f.Record
	}
	return out, nil
}

// Latest returns the newest archive for label in dir.
func Latest(dir, label string) (*Record, error) {
	recs, err := List(dir, label)
	if err != nil {
		return nil, err
	}
	return &recs[0], nil
}

// Prune deletes all but the newest keep archives for label in dir and
// returns the removed records. An empty label prunes each label
// separately.
func Prune(dir, label string, keep int) ([]Record, error) {
	if keep < 0 {
		return nil, errors.New("keep must be non-negative")
	}

	recs, err := List(dir, label)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil, nil
		}
		return nil, err
	}

	// Already sorted newest first.
	seen := make(map[string]int)
	var removed []Record
	for _, rec := range recs {
		seen[rec.Label]++
		if seen[rec.Label] <= keep {
			continue
		}
		if err := os.Remove(rec.Path); err != nil {
			return removed, errors.FromOS(err, "removing backup "+filepath.Base(rec.Path))
		}
		removed = append(removed, rec)
	}
	return removed, nil
}
