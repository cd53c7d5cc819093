// Package paddleocr drives an external PP-OCRv5 recognizer binary and
// exposes it as an ocr.Engine.
package paddleocr

// DefaultCommand is the recognizer binary resolved from PATH when none is
// configured.
const DefaultCommand = "ppocr"

// Config describes how to invoke the recognizer.
type Config struct {
	// Command is the recognizer binary.
	Command string
	// ModelsDir holds the PP-OCRv5 model assets.
	ModelsDir string
	// Language selects the recognition model; empty means the multilingual
	// model.
	Language string
}

func (c Config) command() string {
	if c.Command == "" {
		return DefaultCommand
	}
	return c.Command
}
