// Package ffprobe provides a typed wrapper around ffprobe JSON output, used to
// verify converted samples.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: audio stream properties (codec, sample format, rate, depth)
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
package ffprobe
