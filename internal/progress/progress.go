// Package progress shows a stderr spinner while the analysis runs.
package progress

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// Spinner wraps an indeterminate progress indicator.
type Spinner struct {
	bar *progressbar.ProgressBar
}

// NewSpinner creates a spinner with the given label.
func NewSpinner(label string) *Spinner {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	return &Spinner{bar: bar}
}

// Finish clears the spinner completely.
func (s *Spinner) Finish() {
	if s == nil {
		return
	}
	s.bar.Finish()
	s.bar.Clear()
}
