// Package features derives the numeric and boolean signals the scoring engine
// works from. Extraction is a fixed, language-agnostic policy over raw text:
// no lexing, no parsing.
package features

import (
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dsablic/codecheck/internal/model"
	"gonum.org/v1/gonum/stat"
)

const (
	// SaturationLength is the length, in characters, at which LengthScore reaches 1.
	SaturationLength = 800

	// LongLineThreshold is the rune count above which a line counts as long.
	LongLineThreshold = 100
)

// markers is the vocabulary associated with copied or generated code.
var markers = []string{"copy", "paste", "generated", "ai"}

var commentPrefixes = []string{"//", "#", "/*", "*", "--"}

// Options selects optional extraction work.
type Options struct {
	// Extended computes the descriptive line statistics.
	Extended bool
}

// Extract computes the FeatureSet of text. It is total: any string,
// including the empty string, yields a valid FeatureSet.
func Extract(text string, opts Options) model.FeatureSet {
	n := Length(text)
	fs := model.FeatureSet{
		Length:             n,
		LengthScore:        min(float64(n)/SaturationLength, 1),
		HasComments:        strings.Contains(text, "//") || strings.Contains(text, "#"),
		RepetitiveMarkers:  hasMarker(text),
		UniformIndentation: hasIndentedLine(text),
	}
	if opts.Extended {
		fs.Stats = lineStats(text)
	}
	return fs
}

// Length returns the character count of text the way a browser text field
// reports it: in UTF-16 code units.
func Length(text string) int {
	n := 0
	for _, r := range text {
		n += max(utf16.RuneLen(r), 1)
	}
	return n
}

func hasMarker(text string) bool {
	for _, m := range markers {
		if containsFoldASCII(text, m) {
			return true
		}
	}
	return false
}

// containsFoldASCII reports whether text contains the lowercase ASCII word,
// folding case for ASCII letters only. Non-ASCII runes such as U+0130 never
// fold onto an ASCII letter.
func containsFoldASCII(text, word string) bool {
	n := len(word)
	for i := 0; i+n <= len(text); i++ {
		match := true
		for j := 0; j < n; j++ {
			c := text[i+j]
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			if c != word[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// hasIndentedLine reports whether any line starts with whitespace. A line
// start is the beginning of text or any position after a line terminator,
// so an empty line between two lines also counts.
func hasIndentedLine(text string) bool {
	atLineStart := true
	for _, r := range text {
		if atLineStart && isSpace(r) {
			return true
		}
		atLineStart = isLineTerminator(r)
	}
	return false
}

// isSpace matches the ECMAScript whitespace class, which includes BOM but
// not NEL.
func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}

func lineStats(text string) *model.LineStats {
	if text == "" {
		return &model.LineStats{}
	}

	lines := strings.Split(text, "\n")
	lengths := make([]float64, len(lines))
	var comments, long int
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		width := utf8.RuneCountInString(line)
		lengths[i] = float64(width)
		if width > LongLineThreshold {
			long++
		}
		if isCommentLine(line) {
			comments++
		}
	}

	mean, std := stat.PopMeanStdDev(lengths, nil)
	total := float64(len(lines))
	return &model.LineStats{
		TotalLines:       len(lines),
		AvgLineLength:    mean,
		LineLengthStdDev: std,
		CommentRatio:     float64(comments) / total,
		LongLineRatio:    float64(long) / total,
	}
}

func isCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, p := range commentPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}
