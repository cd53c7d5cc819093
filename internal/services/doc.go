// Package services defines the error taxonomy shared by the recognition
// scheduler, the subtitle pipeline, and the external tool clients.
//
// Errors are tagged with sentinel markers so callers can classify failures
// with errors.Is: configuration problems are reported before any work starts,
// engine initialization failures abort a batch, and cancellation is kept
// distinct from genuine failure.
package services
