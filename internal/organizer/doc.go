// Package organizer drives one pass over the source library: every matching
// sample is shortened, checked against the whole-path ceiling, and converted
// into the destination tree.
//
// Files are processed sequentially in enumeration order because the
// shortener's word reservations depend on that order. A failure on one file
// is logged and recorded; the run moves on. Only an operator abort, context
// cancellation, or a configuration problem ends the run early. A file lock in
// the state directory keeps two runs from sharing one history database.
package organizer
