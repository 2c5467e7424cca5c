// Package logging builds the slog loggers s4m writes its diagnostics with.
//
// Command output goes to stdout; logs go to stderr, either as colored text
// when stderr is a terminal or as JSON with --log-format json. A --log-file
// adds a JSON copy of every record.
//
//	logger, err := logging.New(logging.Options{
//		Level:  logging.LevelFromVerbosity(2),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//
// Commands hand the logger to the core packages through the context with
// [NewContext] and [FromContext]. Per-member archive and install logging
// uses [LevelTrace], enabled by -vvv.
//
// Tests use [ForTest] so log lines appear only for failing tests.
package logging
