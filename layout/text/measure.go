// Package text provides the measurement services used by the
// text renderers: run widths, font metrics and line break opportunities.
package text

import (
	"unicode"

	"github.com/benoitkugler/boxlayout/utils"
	"golang.org/x/text/width"
)

type Fl = utils.Fl

// Metrics are the vertical extents of a font, relative
// to the baseline.
type Metrics struct {
	Ascent, Descent Fl
}

// Measurer computes the width and vertical metrics of text.
type Measurer interface {
	// Width returns the advance of `text` at the given font size.
	Width(text []rune, fontSize Fl) Fl
	// Metrics returns the ascent and descent of the font.
	Metrics(fontSize Fl) Metrics
}

// MonospaceMeasurer is a font-less measurer: each rune has the same
// advance, except East Asian wide runes which use a full em, and
// zero width runes.
type MonospaceMeasurer struct {
	// Advance is the width of a narrow rune, in em.
	Advance Fl
	// Ascent and Descent are in em.
	Ascent, Descent Fl
}

// DefaultMeasurer uses half an em per narrow rune.
var DefaultMeasurer = MonospaceMeasurer{Advance: 0.5, Ascent: 0.8, Descent: 0.2}

func (m MonospaceMeasurer) runeAdvance(r rune) Fl {
	switch {
	case r == '\u200b' || r == '\u00ad' || unicode.Is(unicode.Mn, r):
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 1
	}
	return m.Advance
}

func (m MonospaceMeasurer) Width(text []rune, fontSize Fl) Fl {
	var w Fl
	for _, r := range text {
		w += m.runeAdvance(r)
	}
	return w * fontSize
}

func (m MonospaceMeasurer) Metrics(fontSize Fl) Metrics {
	return Metrics{Ascent: m.Ascent * fontSize, Descent: m.Descent * fontSize}
}

// IsSpace returns true for the collapsible spaces where lines are broken.
func IsSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\u3000' }

// TrimTrailingSpaces returns text without its trailing spaces.
func TrimTrailingSpaces(text []rune) []rune {
	end := len(text)
	for end > 0 && IsSpace(text[end-1]) {
		end--
	}
	return text[:end]
}

// TrimLeadingSpaces returns text without its leading spaces, and
// the number of removed runes.
func TrimLeadingSpaces(text []rune) ([]rune, int) {
	start := 0
	for start < len(text) && IsSpace(text[start]) {
		start++
	}
	return text[start:], start
}

// CountSpaces returns the number of inner spaces, used for justification.
func CountSpaces(text []rune) int {
	var n int
	for _, r := range TrimTrailingSpaces(text) {
		if r == ' ' {
			n++
		}
	}
	return n
}
