package text

import (
	"strings"

	"github.com/benoitkugler/textlayout/language"
	"github.com/benoitkugler/textprocessing/pango"
)

var bidiControls = strings.NewReplacer(
	"\u202a", "\u200b",
	"\u202b", "\u200b",
	"\u202c", "\u200b",
	"\u202d", "\u200b",
	"\u202e", "\u200b",
)

// BreakOpportunities returns the sorted positions p, with 0 < p < len(text),
// such that a line may be broken before text[p] (UAX #14).
func BreakOpportunities(text []rune) []int {
	if len(text) < 2 {
		return nil
	}
	cleaned := []rune(bidiControls.Replace(string(text)))
	if len(cleaned) != len(text) {
		cleaned = text
	}
	attrs := pango.ComputeCharacterAttributes(cleaned, -1)
	var out []int
	for p := 1; p < len(text) && p < len(attrs); p++ {
		if attrs[p].IsLineBreak() {
			out = append(out, p)
		}
	}
	return out
}

// the scripts without spaces between words, for which break
// points must be computed on whole sequences of runs
var specialScripts = map[language.Script]bool{
	language.Thai:     true,
	language.Lao:      true,
	language.Khmer:    true,
	language.Myanmar:  true,
	language.Han:      true,
	language.Hiragana: true,
	language.Katakana: true,
}

// IsSpecialScript returns true for the runes of a script
// whose words are not separated by spaces.
func IsSpecialScript(r rune) bool {
	return specialScripts[language.LookupScript(r)]
}

// HasSpecialScript returns true if one rune of text is in
// a special script.
func HasSpecialScript(text []rune) bool {
	for _, r := range text {
		if IsSpecialScript(r) {
			return true
		}
	}
	return false
}
