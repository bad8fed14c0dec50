// Package scoring turns a FeatureSet into a confidence percentage and a
// classification using a fixed additive rule table.
package scoring

import (
	"fortio.org/safecast"
	"github.com/dsablic/codecheck/internal/model"
)

const (
	BaseConfidence = 48
	MinConfidence  = 3
	MaxConfidence  = 97

	// AIThreshold is the confidence at or above which a snippet is AI_GENERATED.
	AIThreshold = 58
)

// Rule is one weighted predicate of the scoring table.
type Rule struct {
	Name    string
	Applies func(model.FeatureSet) bool
	Weight  int
}

// Rules is evaluated in order; every rule that applies adds its weight.
var Rules = []Rule{
	{Name: "length>0.5", Weight: 6, Applies: func(fs model.FeatureSet) bool { return fs.LengthScore > 0.5 }},
	{Name: "length>0.9", Weight: 4, Applies: func(fs model.FeatureSet) bool { return fs.LengthScore > 0.9 }},
	{Name: "no-comments", Weight: 12, Applies: func(fs model.FeatureSet) bool { return !fs.HasComments }},
	{Name: "repetition", Weight: 10, Applies: func(fs model.FeatureSet) bool { return fs.RepetitiveMarkers }},
	{Name: "indentation", Weight: 6, Applies: func(fs model.FeatureSet) bool { return fs.UniformIndentation }},
}

// Verdict is the scoring outcome for one FeatureSet.
type Verdict struct {
	Classification model.Classification
	Confidence     int
	Contributions  []model.Contribution
}

// Scorer produces a Verdict from extracted features.
type Scorer interface {
	Score(fs model.FeatureSet) Verdict
}

// Heuristic scores with the additive rule table.
type Heuristic struct{}

// Score implements Scorer.
func (Heuristic) Score(fs model.FeatureSet) Verdict {
	total := float64(BaseConfidence)
	var contributions []model.Contribution
	for _, r := range Rules {
		if !r.Applies(fs) {
			continue
		}
		total += float64(r.Weight)
		contributions = append(contributions, model.Contribution{Rule: r.Name, Weight: r.Weight})
	}

	confidence := Clamp(total, MinConfidence, MaxConfidence)
	return Verdict{
		Classification: Classify(confidence),
		Confidence:     confidence,
		Contributions:  contributions,
	}
}

// Score runs the Heuristic scorer.
func Score(fs model.FeatureSet) Verdict {
	return Heuristic{}.Score(fs)
}

// Classify maps a confidence to its classification.
func Classify(confidence int) model.Classification {
	if confidence >= AIThreshold {
		return model.AIGenerated
	}
	return model.HumanWritten
}

// Clamp rounds v to the nearest integer and bounds it to [lo, hi].
func Clamp(v float64, lo, hi int) int {
	r, err := safecast.Round[int](v)
	if err != nil {
		if v < 0 {
			return lo
		}
		return hi
	}
	return max(lo, min(hi, r))
}
