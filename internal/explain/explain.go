// Package explain renders the human-readable rationale and indicator list for
// a scored snippet, and computes the independent originality score.
package explain

import (
	"fmt"
	"math"

	"github.com/dsablic/codecheck/internal/model"
	"github.com/dsablic/codecheck/internal/scoring"
)

const (
	AIExplanation    = "Repetitive structure, low comment usage, and uniform formatting lean towards AI-generated code."
	HumanExplanation = "Natural formatting, comment usage, and varied structure lean towards human-written code."
)

const (
	MinOriginality = 10
	MaxOriginality = 99
)

// Explain returns the explanation for classification and the indicators for fs.
// The first four indicators are always length, comments, wording and
// indentation, in that order; extended statistics follow when present.
func Explain(fs model.FeatureSet, classification model.Classification) (string, []string) {
	explanation := HumanExplanation
	if classification.IsAI() {
		explanation = AIExplanation
	}

	indicators := []string{
		fmt.Sprintf("Code length factor: %.0f%%", math.Round(fs.LengthScore*100)),
		pick(fs.HasComments, "Comments detected in code.", "No or very few comments detected."),
		pick(fs.RepetitiveMarkers,
			"Contains words commonly associated with generated or copied code.",
			"No explicit AI- or copy-related wording detected."),
		pick(fs.UniformIndentation, "Consistent indentation across lines.", "Indentation varies between blocks."),
	}

	if s := fs.Stats; s != nil {
		indicators = append(indicators,
			fmt.Sprintf("Total lines: %d", s.TotalLines),
			fmt.Sprintf("Average line length: %.1f characters", s.AvgLineLength),
			fmt.Sprintf("Comment lines: %.0f%% of all lines", math.Round(s.CommentRatio*100)),
			fmt.Sprintf("Long lines (over 100 characters): %.0f%%", math.Round(s.LongLineRatio*100)),
		)
	}

	return explanation, indicators
}

// Originality estimates how original the snippet is. Longer snippets,
// copy/generation wording and missing comments all lower the score.
func Originality(fs model.FeatureSet) int {
	base := 96 - fs.LengthScore*20
	if fs.RepetitiveMarkers {
		base -= 10
	}
	if !fs.HasComments {
		base -= 4
	}
	return scoring.Clamp(base, MinOriginality, MaxOriginality)
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
