// Package archive writes and reads the timestamped zip backups used for
// the Mods and saves folders.
//
// Archives are named <label>_<YYYYMMDD_HHMMSS.mmm>.zip. A clashing name
// gains a "-N" suffix and an existing archive is never overwritten.
// Member names are relative to the archived root with forward slashes,
// and empty directories are stored as their own members so extraction
// reproduces the tree exactly.
//
// Extraction validates every member name before writing anything.
// Absolute names and names that climb out of the destination fail with
// errors.ErrUnsafePath.
package archive
