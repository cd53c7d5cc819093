// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual stream properties (codec, dimensions, frame rate)
//   - Format: container-level metadata (duration, size)
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// Helper methods on Result provide duration parsing and access to the
// primary video stream, which the frame extractor needs before sampling.
package ffprobe
