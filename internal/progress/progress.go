// Package progress defines the side-channel used to report pipeline
// advancement to interactive frontends.
package progress

// Phase identifies which stage of the pipeline an update belongs to.
type Phase string

const (
	PhaseExtracting  Phase = "extracting"
	PhaseRecognizing Phase = "recognizing"
	PhaseGenerating  Phase = "generating"
)

// Update is one progress report. Current counts processed units (frames),
// Total is the known unit count for the phase.
type Update struct {
	Phase   Phase
	Current int
	Total   int
	Message string
}

// Func receives updates. Implementations must be cheap; updates are emitted
// from hot loops. A nil Func is always safe to call through Emit.
type Func func(Update)

// Emit calls fn when it is non-nil.
func (fn Func) Emit(update Update) {
	if fn != nil {
		fn(update)
	}
}
