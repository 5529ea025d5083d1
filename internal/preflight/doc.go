// Package preflight checks that the directories a run touches are usable
// before any file is converted.
//
// The run command calls RunAll and refuses to start when a check fails. The
// deps command renders the same results next to the external tool table.
package preflight
