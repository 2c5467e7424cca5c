// Package errors provides error handling conventions for s4m.
//
// This package defines the error kinds produced by the state-mutation engine,
// a [Kind] classifier used by per-item result objects, an ExitError type for
// CLI exit code handling, and exit code constants following standard Unix
// conventions. Wrapping is delegated to github.com/cockroachdb/errors.
//
// # Error Kinds
//
// Every failure in the toggle, archive, install and restore packages is
// marked with one sentinel so callers can check it using [errors.Is]:
//
//	if errors.Is(err, s4merrors.ErrNameCollision) {
//	    // the rename target already exists
//	}
//
// [Kind] maps an error to a stable name such as "NameCollisionError" for
// reporting.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. [Classify] builds one from a core error's kind:
//
//	exitErr := s4merrors.Classify(err)
//	if exitErr.Suggestion != "" {
//	    fmt.Println("Suggestion:", exitErr.Suggestion)
//	}
//	os.Exit(exitErr.Code)
package errors
