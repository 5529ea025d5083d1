// Package shortener turns a relative sample path into its short destination
// form.
//
// A Shortener owns a WordSet that remembers every folder word accepted so far
// in the run, along with its naive singular/plural counterpart. Later folder
// segments that repeat one of those words lose it, which keeps bulk imports
// from producing paths like "drums/drum_kit/drum_one_shots". Because of this
// the output for a file depends on every file shortened before it in the
// same run: create one Shortener per run and feed it paths in enumeration
// order.
//
// Filenames are never de-duplicated or strike-filtered; they are only
// formatted, forced to the target extension and truncated.
package shortener
