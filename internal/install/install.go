package install

import (
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/thoreinstein/s4m/internal/archive"
	"github.com/thoreinstein/s4m/internal/errors"
	"github.com/thoreinstein/s4m/pkg/fileutil"
)

// Report summarizes an executed plan.
type Report struct {
	Source         string   `json:"source"`
	DestRoot       string   `json:"dest_root"`
	InstalledCount int      `json:"installed_count"`
	SkippedCount   int      `json:"skipped_count"`
	SkippedNames   []string `json:"skipped_names"`
	UnsafeNames    []string `json:"unsafe_names,omitempty"`
	// InstalledNames lists the names written, in plan order.
	InstalledNames []string `json:"installed_names,omitempty"`
	// Failures lists the items whose write failed, in plan order.
	Failures []Failure `json:"failures,omitempty"`
}

// Failure is one item that could not be written.
type Failure struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Err returns nil when every item was written or skipped, and otherwise
// the first failure wrapped with the failure count.
func (r *Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	total := r.InstalledCount + r.SkippedCount + len(r.UnsafeNames) + len(r.Failures)
	return errors.Wrapf(r.Failures[0].Err, "%d of %d items failed", len(r.Failures), total)
}

// Installer executes install plans.
type Installer struct {
	logger *slog.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(i *Installer) {
		if l != nil {
			i.logger = l
		}
	}
}

// New creates an Installer.
func New(opts ...Option) *Installer {
	i := &Installer{logger: slog.Default()}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Install plans and executes the installation of source into destRoot.
// Existing paths in destRoot are never modified; they are reported in
// SkippedNames. Items that fail to write are reported in Failures; see
// Report.Err.
func (i *Installer) Install(source, destRoot string) (*Report, error) {
	plan, err := NewPlan(source, destRoot)
	if err != nil {
		return nil, err
	}
	defer plan.Close()
	return i.Execute(plan)
}

// Execute carries out the plan's write steps in order. A path that
// appears after planning is skipped, not overwritten. A step that fails is
// recorded in the report's Failures and the remaining steps still run; a
// failed step leaves nothing behind. The returned error covers only
// failures that stop the whole install, such as an unusable destination.
func (i *Installer) Execute(plan *Plan) (*Report, error) {
	rep := &Report{
		Source:       plan.Source,
		DestRoot:     plan.DestRoot,
		SkippedNames: []string{},
	}

	if err := os.MkdirAll(plan.DestRoot, 0o755); err != nil {
		return rep, errors.FromOS(err, "creating "+plan.DestRoot)
	}

	for _, step := range plan.Steps {
		switch step.Action {
		case ActionSkipExists:
			rep.skip(step.Name)
			continue
		case ActionSkipUnsafe:
			i.logger.Warn("skipping unsafe archive member", "name", step.Name)
			rep.UnsafeNames = append(rep.UnsafeNames, step.Name)
			continue
		}

		err := i.write(step)
		if errors.Is(err, fs.ErrExist) {
			i.logger.Debug("destination appeared after planning", "path", step.Dest)
			rep.skip(step.Name)
			continue
		}
		if err != nil {
			err = errors.Wrapf(err, "installing %s", step.Name)
			i.logger.Debug("install failed", "name", step.Name, "kind", errors.Kind(err), "error", err)
			rep.Failures = append(rep.Failures, Failure{
				Name:    step.Name,
				Kind:    errors.Kind(err),
				Message: err.Error(),
				Err:     err,
			})
			continue
		}

		i.logger.Debug("installed", "name", step.Name, "dest", step.Dest)
		rep.InstalledCount++
		rep.InstalledNames = append(rep.InstalledNames, step.Name)
	}

	return rep, nil
}

func (i *Installer) write(step Step) error {
	switch step.Action {
	case ActionExtract:
		if step.member == nil {
			return errors.Newf("no archive member for %s", step.Name)
		}
		return archive.ExtractMember(step.member, step.Dest, true)
	case ActionCopy:
		return copyExclusive(step.Source, step.Dest)
	default:
		return errors.Newf("unexpected action %s", step.Action)
	}
}

func copyExclusive(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.FromOS(err, "opening "+src)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.FromOS(err, "stat "+src)
	}

	err = fileutil.AtomicCreateExclusive(dest, info.Mode().Perm(), func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	})
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return err
		}
		return errors.FromOS(err, "writing "+dest)
	}

	// Keep the source modification time, like a file manager copy.
	_ = os.Chtimes(dest, info.ModTime(), info.ModTime())
	return nil
}

func (r *Report) skip(name string) {
	r.SkippedCount++
	r.SkippedNames = append(r.SkippedNames, name)
}
