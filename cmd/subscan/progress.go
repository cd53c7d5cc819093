package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// interactiveTerminal reports whether stderr is attached to a terminal, in
// which case progress bars are rendered.
func interactiveTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// phaseBar wraps a progress bar for one pipeline phase. A nil receiver is a
// no-op so non-interactive runs skip rendering without branching at every
// update site.
type phaseBar struct {
	bar *progressbar.ProgressBar
}

func newPhaseBar(enabled bool, total int, description string) *phaseBar {
	if !enabled || total <= 0 {
		return nil
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	return &phaseBar{bar: bar}
}

func (b *phaseBar) Set(current int) {
	if b == nil || b.bar == nil {
		return
	}
	_ = b.bar.Set(current)
}

func (b *phaseBar) Finish() {
	if b == nil || b.bar == nil {
		return
	}
	_ = b.bar.Finish()
}
