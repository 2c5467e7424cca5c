package archive

import (
	"strconv"
	"strings"
	"time"

	"github.com/thoreinstein/s4m/internal/errors"
)

// FileName returns the archive name for label created at t. A seq above 1
// adds a "-seq" suffix used when the plain name is already taken.
func FileName(label string, t time.Time, seq int) string {
	name := label + "_" + t.Format(TimestampLayout)
	if seq > 1 {
		name += "-" + strconv.Itoa(seq)
	}
	return name + Ext
}

// ParseFileName splits an archive name into its label and timestamp.
// Both the millisecond layout and the older second-precision layout are
// accepted. Timestamps are interpreted in the local time zone.
func ParseFileName(name string) (label string, created time.Time, err error) {
	label, created, _, err = parseName(name)
	return label, created, err
}

func parseName(name string) (label string, created time.Time, seq int, err error) {
	if !strings.EqualFold(name[max(0, len(name)-len(Ext)):], Ext) {
		return "", time.Time{}, 0, errors.Newf("%q is not a %s archive", name, Ext)
	}
	stem := name[:len(name)-len(Ext)]

	seq = 1
	if dash := strings.LastIndexByte(stem, '-'); dash > 0 {
		if n, convErr := strconv.Atoi(stem[dash+1:]); convErr == nil && n > 1 {
			stem = stem[:dash]
			seq = n
		}
	}

	// The timestamp is the last two underscore-separated fields.
	second := strings.LastIndexByte(stem, '_')
	if second <= 0 {
		return "", time.Time{}, 0, errors.Newf("%q has no timestamp", name)
	}
	first := strings.LastIndexByte(stem[:second], '_')
	if first <= 0 {
		return "", time.Time{}, 0, errors.Newf("%q has no timestamp", name)
	}

	ts := stem[first+1:]
	for _, layout := range []string{TimestampLayout, legacyTimestampLayout} {
		if created, err = time.ParseInLocation(layout, ts, time.Local); err == nil {
			return stem[:first], created, seq, nil
		}
	}
	return "", time.Time{}, 0, errors.Newf("%q has no valid timestamp", name)
}
