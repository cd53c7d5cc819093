package ocr

// TextRegion is one detected text area within a frame image.
type TextRegion struct {
	// Top is the region's vertical position, used to restore reading order
	// for stacked subtitle lines. Units are engine-defined; only relative
	// ordering matters.
	Top        float64 `json:"top"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Engine recognizes text in a single image. Implementations are stateful
// and must only be used from one goroutine at a time.
type Engine interface {
	// Recognize returns the text regions detected in the image at path.
	// A failed call affects only that frame; the scheduler skips it.
	Recognize(path string) ([]TextRegion, error)
	Close() error
}

// Factory constructs a fresh engine. The scheduler invokes it once per
// worker; a construction failure (missing model assets) is fatal for the
// whole batch.
type Factory func() (Engine, error)

// Frame identifies one extracted frame image awaiting recognition.
type Frame struct {
	Index int
	Path  string
}
