package install

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/s4m/internal/archive"
	"github.com/thoreinstein/s4m/internal/entry"
	"github.com/thoreinstein/s4m/internal/errors"
)

// Action is the decision recorded for one planned item.
type Action int

const (
	// ActionCopy copies a single mod file into the destination.
	ActionCopy Action = iota
	// ActionExtract extracts an archive member into the destination.
	ActionExtract
	// ActionSkipExists leaves an existing destination path untouched.
	ActionSkipExists
	// ActionSkipUnsafe drops an archive member whose name escapes the
	// destination or that is neither a regular file nor a directory.
	ActionSkipUnsafe
)

func (a Action) String() string {
	switch a {
	case ActionCopy:
		return "copy"
	case ActionExtract:
		return "extract"
	case ActionSkipExists:
		return "skip-exists"
	case ActionSkipUnsafe:
		return "skip-unsafe"
	default:
		return "unknown"
	}
}

// SourceType identifies how a source is installed.
type SourceType int

const (
	SourceArchive SourceType = iota
	SourceFile
)

// Step is one planned action.
type Step struct {
	// Name is the member name as it appears in the source.
	Name string
	// Source is the source file path for copies.
	Source string
	// Dest is the destination path. Empty for unsafe members.
	Dest   string
	Action Action

	member *zip.File
}

// Plan is the full set of decisions for an install, computed before any
// write. A Plan holding archive members keeps the archive open until
// Close is called.
type Plan struct {
	Source   string
	DestRoot string
	Type     SourceType
	Steps    []Step

	zr *zip.ReadCloser
}

// Close releases the archive held by the plan.
func (p *Plan) Close() error {
	if p.zr == nil {
		return nil
	}
	err := p.zr.Close()
	p.zr = nil
	return err
}

// Count returns the number of steps with the given action.
func (p *Plan) Count(a Action) int {
	n := 0
	for _, s := range p.Steps {
		if s.Action == a {
			n++
		}
	}
	return n
}

// DetectType classifies source by extension. Zip archives and recognized
// mod files are supported; anything else fails with
// errors.ErrUnsupportedSource.
func DetectType(source string) (SourceType, error) {
	name := filepath.Base(source)
	switch {
	case strings.EqualFold(filepath.Ext(name), archive.Ext):
		return SourceArchive, nil
	case entry.IsModFile(name):
		return SourceFile, nil
	default:
		return 0, errors.Wrapf(errors.ErrUnsupportedSource, "%s: only .zip, .package and .ts4script files can be installed", name)
	}
}

// NewPlan inspects source and decides, for every item it holds, whether
// it will be written into destRoot or skipped. Nothing is written.
func NewPlan(source, destRoot string) (*Plan, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, errors.FromOS(err, "install source "+source)
	}
	if info.IsDir() {
		return nil, errors.Wrapf(errors.ErrUnsupportedSource, "%s is a directory", source)
	}

	typ, err := DetectType(source)
	if err != nil {
		return nil, err
	}

	p := &Plan{Source: source, DestRoot: destRoot, Type: typ}

	if typ == SourceFile {
		name := filepath.Base(source)
		dest := filepath.Join(destRoot, name)
		p.Steps = []Step{{Name: name, Source: source, Dest: dest, Action: decide(dest, ActionCopy)}}
		return p, nil
	}

	zr, err := archive.Open(source)
	if err != nil {
		return nil, err
	}
	p.zr = zr

	p.Steps = make([]Step, 0, len(zr.File))
	for _, f := range zr.File {
		step := Step{Name: f.Name, member: f}
		dest, err := archive.SafeJoin(destRoot, f.Name)
		if err == nil {
			err = archive.CheckMember(f)
		}
		if err != nil {
			step.Action = ActionSkipUnsafe
		} else {
			step.Dest = dest
			step.Action = decide(dest, ActionExtract)
		}
		p.Steps = append(p.Steps, step)
	}
	return p, nil
}

func decide(dest string, write Action) Action {
	if _, err := os.Lstat(dest); err == nil {
		return ActionSkipExists
	}
	return write
}
