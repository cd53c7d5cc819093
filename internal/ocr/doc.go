// Package ocr runs text recognition over extracted video frames.
//
// The recognition engine itself is an external collaborator hidden behind
// the Engine interface. Engines carry mutable model state and are not safe
// to share across goroutines, so the batch scheduler constructs one engine
// per worker through a Factory and fans the frame list out in contiguous
// chunks. The scheduler's output is the ordered observation stream consumed
// by the subtitle stabilizer.
package ocr
