package errors

import (
	"fmt"
	"io/fs"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for the state-mutation engine. Every failure surfaced by
// the toggle, archive, install and restore packages is marked with exactly
// one of these so callers can classify it with [errors.Is] or [Kind].
var (
	// ErrInvalidState indicates a toggle into the state the entry is already
	// in, or a name that does not match its category's pattern.
	ErrInvalidState = crdb.New("invalid state")

	// ErrNameCollision indicates the rename target already exists.
	ErrNameCollision = crdb.New("name collision")

	// ErrPermission indicates insufficient rights on a path.
	ErrPermission = crdb.New("permission denied")

	// ErrSourceNotFound indicates a source root or file does not exist.
	ErrSourceNotFound = crdb.New("source not found")

	// ErrUnsupportedSource indicates an install source of an unrecognized type.
	ErrUnsupportedSource = crdb.New("unsupported source type")

	// ErrSnapshotFailed indicates the pre-restore snapshot could not be written.
	ErrSnapshotFailed = crdb.New("snapshot failed")

	// ErrPartialClear indicates the restore clearing phase could not empty
	// the destination.
	ErrPartialClear = crdb.New("partial clear")

	// ErrUnsafePath indicates an archive member that would escape its
	// extraction root.
	ErrUnsafePath = crdb.New("unsafe archive path")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = crdb.New("invalid configuration")

	// ErrNotFound indicates the requested item was not found.
	ErrNotFound = crdb.New("not found")
)

// Error kind names reported by result objects.
const (
	KindInvalidState      = "InvalidStateError"
	KindNameCollision     = "NameCollisionError"
	KindPermission        = "PermissionError"
	KindSourceNotFound    = "SourceNotFoundError"
	KindUnsupportedSource = "UnsupportedSourceTypeError"
	KindSnapshotFailed    = "SnapshotFailedError"
	KindPartialClear      = "PartialClearError"
	KindUnsafePath        = "UnsafePathError"
	KindUnknown           = "Error"
)

var kinds = []struct {
	sentinel error
	name     string
}{
	// Snapshot and clear failures wrap lower-level kinds, so they are
	// checked first.
	{ErrSnapshotFailed, KindSnapshotFailed},
	{ErrPartialClear, KindPartialClear},
	{ErrInvalidState, KindInvalidState},
	{ErrNameCollision, KindNameCollision},
	{ErrPermission, KindPermission},
	{ErrSourceNotFound, KindSourceNotFound},
	{ErrUnsupportedSource, KindUnsupportedSource},
	{ErrUnsafePath, KindUnsafePath},
}

// Kind returns the error kind name for err, or "" for a nil error.
// Errors carrying none of the package sentinels report KindUnknown.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if crdb.Is(err, k.sentinel) {
			return k.name
		}
	}
	if crdb.Is(err, fs.ErrPermission) {
		return KindPermission
	}
	return KindUnknown
}

// FromOS marks a filesystem error with the matching sentinel: permission
// failures become ErrPermission and missing paths ErrSourceNotFound. The
// original error stays in the chain.
func FromOS(err error, msg string) error {
	if err == nil {
		return nil
	}
	switch {
	case crdb.Is(err, fs.ErrPermission):
		return crdb.Mark(crdb.Wrap(err, msg), ErrPermission)
	case crdb.Is(err, fs.ErrNotExist):
		return crdb.Mark(crdb.Wrap(err, msg), ErrSourceNotFound)
	default:
		return crdb.Wrap(err, msg)
	}
}

// Wrappers over cockroachdb/errors so callers import a single package.
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Errorf = crdb.Errorf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Mark   = crdb.Mark
	Is     = crdb.Is
	As     = crdb.As
)

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: s4m config list",
	}
}

// Classify converts a core error into an ExitError whose suggestion matches
// its kind. ExitErrors pass through unchanged.
func Classify(err error) *ExitError {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if crdb.As(err, &exitErr) {
		return exitErr
	}
	switch Kind(err) {
	case KindInvalidState:
		return NewUserError(err, "Run the matching list command to see current states")
	case KindNameCollision:
		return NewUserError(err, "Rename or remove the conflicting entry, then retry")
	case KindPermission:
		return NewSystemError(err, "Check file permissions or close the game and retry")
	case KindSourceNotFound:
		return NewUserError(err, "Check the path, or set it with: s4m config set")
	case KindUnsupportedSource:
		return NewUserError(err, "Only .zip, .package and .ts4script files can be installed")
	case KindSnapshotFailed:
		return NewSystemError(err, "Nothing was changed; free disk space or fix permissions and retry")
	case KindPartialClear:
		return NewSystemError(err, "Close programs holding files open; the pre-restore snapshot is kept")
	default:
		return NewSystemError(err, "")
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
