// Package toggle renames entries between their enabled and disabled names.
//
// A toggle never changes content and never renames onto an existing path:
// the target name is checked before the rename and an occupied target fails
// with ErrNameCollision instead of merging into it.
package toggle

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thoreinstein/s4m/internal/entry"
	"github.com/thoreinstein/s4m/internal/errors"
)

// Toggler applies state changes to entries.
type Toggler struct {
	logger *slog.Logger
	rename func(oldpath, newpath string) error
}

// Option configures a Toggler.
type Option func(*Toggler)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(t *Toggler) {
		if l != nil {
			t.logger = l
		}
	}
}

// New creates a Toggler.
func New(opts ...Option) *Toggler {
	t := &Toggler{
		logger: slog.Default(),
		rename: os.Rename,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Apply renames e so that it is in the target state and returns the updated
// entry.
//
// Errors:
//   - ErrInvalidState: e is already in target, or its name is not recognized.
//     Nothing is touched.
//   - ErrNameCollision: an entry with the target name already exists.
//   - ErrPermission: the rename was refused by the filesystem. Not retried.
//   - ErrSourceNotFound: e no longer exists.
func (t *Toggler) Apply(e entry.Entry, target entry.State) (entry.Entry, error) {
	newName, err := entry.ToggledName(e.Name(), e.Kind, e.Category, target)
	if err != nil {
		return e, err
	}

	if _, err := os.Lstat(e.Path); err != nil {
		return e, errors.FromOS(err, e.Name())
	}

	newPath := filepath.Join(e.Dir(), newName)
	if _, err := os.Lstat(newPath); err == nil {
		return e, errors.Wrapf(errors.ErrNameCollision, "cannot rename %q: %q already exists", e.Name(), newName)
	} else if !os.IsNotExist(err) {
		return e, errors.FromOS(err, "checking "+newName)
	}

	if err := t.rename(e.Path, newPath); err != nil {
		return e, errors.FromOS(err, "renaming "+e.Name())
	}

	t.logger.Debug("toggled entry", "from", e.Name(), "to", newName, "state", target)

	updated := e
	updated.Path = newPath
	updated.State = target
	return updated, nil
}

// Toggle flips e to the opposite of its current state.
func (t *Toggler) Toggle(e entry.Entry) (entry.Entry, error) {
	return t.Apply(e, e.State.Inverse())
}
