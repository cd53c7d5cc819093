// Package subtitle turns a noisy per-frame stream of OCR observations into a
// clean, temporally coherent subtitle track.
//
// OCR runs independently on every sampled frame, so one on-screen caption
// typically produces dozens of near-duplicate and occasionally corrupted
// readings. The pipeline collapses those into single cues:
//
//	observations -> stabilizer -> segments -> selector -> entries -> cleanup
//
// The stabilizer is a streaming state machine that groups consecutive
// observations judged similar to a per-segment baseline text. The selector
// picks the best reading out of each segment's accumulated evidence. The
// cleanup pass derives end times, drops watermark-style URL cues, and merges
// adjacent near-duplicate entries.
//
// Everything in this package is single-threaded and deterministic given
// frame-index-ordered input.
package subtitle
