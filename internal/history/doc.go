// Package history persists one row per organizer run and one row per source
// file it handled, so a shortened name can be traced back to the sample it
// came from.
//
// The store is a SQLite database in the state directory opened through the
// pure-Go modernc.org/sqlite driver. Writes retry briefly on SQLITE_BUSY.
package history
