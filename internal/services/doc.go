// Package services defines shared utilities consumed by the organizer and the
// external tool wrappers.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, source files, and stage names for
//     logging.
//   - Structured error markers plus the Wrap helper that translate per-file
//     failures into consistent history statuses (failed vs skipped).
package services
