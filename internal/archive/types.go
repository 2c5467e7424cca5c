package archive

import (
	"time"

	"github.com/thoreinstein/s4m/internal/errors"
)

// Ext is the archive file extension.
const Ext = ".zip"

// TimestampLayout is embedded in archive names. Millisecond precision keeps
// back-to-back backups apart; a numeric suffix resolves any remaining clash.
const TimestampLayout = "20060102_150405.000"

// legacyTimestampLayout is the second-precision form older backups use.
const legacyTimestampLayout = "20060102_150405"

// DefaultRetentionCount is the default number of backups kept per label.
const DefaultRetentionCount = 5

// ErrNoBackupsFound indicates no archives exist for the requested label.
var ErrNoBackupsFound = errors.New("no backups found")

// Record describes a written archive. Records are never modified after
// the archive is published.
type Record struct {
	// SourceRoot is the directory that was archived. Empty for records
	// loaded from disk.
	SourceRoot string `json:"source_root,omitempty"`

	// Path is the absolute archive path.
	Path string `json:"path"`

	// Label is the name part before the timestamp, e.g. "Mods".
	Label string `json:"label"`

	// CreatedAt is the timestamp embedded in the file name.
	CreatedAt time.Time `json:"created_at"`

	// EntryCount is the number of members, directories included.
	EntryCount int `json:"entry_count"`

	// Size is the archive size in bytes.
	Size int64 `json:"size"`
}
