package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

const DefaultWidth = 80

// Wrap word-wraps text to width and splits it into lines.
func Wrap(text string, width int) []string {
	if text == "" {
		return nil
	}
	if width <= 0 {
		width = DefaultWidth
	}
	return strings.Split(wordwrap.String(text, width), "\n")
}
