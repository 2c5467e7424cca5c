// Package restore replaces a destination tree with the contents of a
// backup archive, taking a snapshot of the current contents first.
//
// A restore moves through the phases snapshotting, clearing and
// extracting, ending in done or failed. The snapshot archive is written
// next to the destination folder and is never removed, so the previous
// state can always be recovered by restoring it.
package restore
