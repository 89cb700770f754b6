// Package database provides SQLite-based storage for run history.
//
// When recording is enabled, every finished catalog is stored as a run:
//   - one row in runs with the timestamp, counts and the track-type union
//   - one row per example with its source, title and viewconf fingerprint
//
// Two runs can then be compared to see which examples and track types were
// added or removed and which viewconfs changed upstream.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because:
// 1. The history is a single file in the XDG data directory
// 2. The CGO-free driver keeps cross-compilation simple
// 3. WAL mode lets "history" read while another run writes
package database
