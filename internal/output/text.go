// Package output renders scoring results as plain text, share links, report
// documents, Markdown, JSON and msgpack.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dsablic/codecheck/internal/model"
)

const (
	ResultHeader = "Code AI Checker – Analysis Result"
	ReportTitle  = "Code AI Checker – Analysis Report"
)

// DetectionLine formats the classification line.
func DetectionLine(r model.ScoringResult) string {
	return "Detection: " + r.Classification.Label()
}

// ConfidenceLine formats the confidence line.
func ConfidenceLine(r model.ScoringResult) string {
	return fmt.Sprintf("Confidence: %d%% AI generated", r.Confidence)
}

// OriginalityLine formats the originality line, or "" when the result has none.
func OriginalityLine(r model.ScoringResult) string {
	if r.OriginalityScore == nil {
		return ""
	}
	return fmt.Sprintf("Originality: %d%%", *r.OriginalityScore)
}

// PlainText renders the result the way it is copied to the clipboard.
func PlainText(r model.ScoringResult) string {
	lines := []string{
		ResultHeader,
		strings.Repeat("-", 34),
		DetectionLine(r),
		ConfidenceLine(r),
	}
	if o := OriginalityLine(r); o != "" {
		lines = append(lines, o)
	}

	if r.Explanation != "" {
		lines = append(lines, "", "Explanation:", r.Explanation)
	}

	if len(r.Indicators) > 0 {
		lines = append(lines, "", "Key Indicators:")
		for _, item := range r.Indicators {
			lines = append(lines, "- "+item)
		}
	}

	return strings.Join(lines, "\n")
}

// WritePlainText writes PlainText(r) followed by a newline.
func WritePlainText(w io.Writer, r model.ScoringResult) error {
	_, err := fmt.Fprintln(w, PlainText(r))
	return err
}

// ParseConfidence recovers the confidence percentage from PlainText output.
func ParseConfidence(text string) (int, error) {
	for _, line := range strings.Split(text, "\n") {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), "Confidence:")
		if !ok {
			continue
		}
		num, _, ok := strings.Cut(strings.TrimSpace(rest), "%")
		if !ok {
			return 0, fmt.Errorf("malformed confidence line %q", line)
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			return 0, fmt.Errorf("parse confidence: %w", err)
		}
		return n, nil
	}
	return 0, fmt.Errorf("no confidence line found")
}
