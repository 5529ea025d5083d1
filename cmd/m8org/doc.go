// Package main hosts the m8org CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration once, builds the logger,
// history store, converter and overlong resolver, and hands them to the
// organizer. Subcommands cover a full run, a dry-run plan, ad-hoc path
// shortening, dependency checks, run history, and configuration scaffolding.
package main
