package store

// Status tracks a job through the pipeline.
type Status string

const (
	StatusPending     Status = "pending"
	StatusExtracting  Status = "extracting"
	StatusRecognizing Status = "recognizing"
	StatusGenerating  Status = "generating"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
)

// Terminal reports whether the job has finished, successfully or not.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}
