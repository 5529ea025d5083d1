// Package convert turns source samples into PCM WAV files with ffmpeg.
//
// Converter is the seam the organizer depends on; FFmpeg is the production
// implementation. It derives the PCM codec from the configured bit depth,
// optionally resamples, applies a per-file timeout, and can check the result
// with ffprobe to confirm the codec before the file is counted as converted.
package convert
