package scoring_test

import (
	"testing"

	"github.com/dsablic/codecheck/internal/model"
	"github.com/dsablic/codecheck/internal/scoring"
)

func TestRulesIndividually(t *testing.T) {
	// Comments present, nothing else: the base score.
	neutral := model.FeatureSet{HasComments: true}

	tests := []struct {
		name     string
		mutate   func(*model.FeatureSet)
		expected int
	}{
		{"base", func(fs *model.FeatureSet) {}, 48},
		{"length above half", func(fs *model.FeatureSet) { fs.LengthScore = 0.6 }, 54},
		{"length exactly half", func(fs *model.FeatureSet) { fs.LengthScore = 0.5 }, 48},
		{"length above 0.9", func(fs *model.FeatureSet) { fs.LengthScore = 0.95 }, 58},
		{"no comments", func(fs *model.FeatureSet) { fs.HasComments = false }, 60},
		{"repetition", func(fs *model.FeatureSet) { fs.RepetitiveMarkers = true }, 58},
		{"indentation", func(fs *model.FeatureSet) { fs.UniformIndentation = true }, 54},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := neutral
			tt.mutate(&fs)
			v := scoring.Score(fs)
			if v.Confidence != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, v.Confidence)
			}
		})
	}
}

func TestAllSignals(t *testing.T) {
	v := scoring.Score(model.FeatureSet{
		LengthScore:        1,
		RepetitiveMarkers:  true,
		UniformIndentation: true,
	})
	if v.Confidence != 86 {
		t.Errorf("expected 86, got %d", v.Confidence)
	}
	if v.Classification != model.AIGenerated {
		t.Errorf("expected AI_GENERATED, got %s", v.Classification)
	}
	if len(v.Contributions) != len(scoring.Rules) {
		t.Errorf("expected %d contributions, got %d", len(scoring.Rules), len(v.Contributions))
	}
	if v.Contributions[0].Rule != "length>0.5" {
		t.Errorf("expected contributions in rule order, got %s first", v.Contributions[0].Rule)
	}
}

func TestClassifyThreshold(t *testing.T) {
	for c := scoring.MinConfidence; c <= scoring.MaxConfidence; c++ {
		got := scoring.Classify(c)
		want := model.HumanWritten
		if c >= 58 {
			want = model.AIGenerated
		}
		if got != want {
			t.Errorf("confidence %d: expected %s, got %s", c, want, got)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v        float64
		expected int
	}{
		{-10, 3},
		{2.4, 3},
		{48, 48},
		{57.5, 58},
		{97.4, 97},
		{150, 97},
		{1e300, 97},
		{-1e300, 3},
	}

	for _, tt := range tests {
		if got := scoring.Clamp(tt.v, scoring.MinConfidence, scoring.MaxConfidence); got != tt.expected {
			t.Errorf("Clamp(%f): expected %d, got %d", tt.v, tt.expected, got)
		}
	}
}

func TestConfidenceAlwaysInRange(t *testing.T) {
	for mask := 0; mask < 32; mask++ {
		fs := model.FeatureSet{
			HasComments:        mask&1 != 0,
			RepetitiveMarkers:  mask&2 != 0,
			UniformIndentation: mask&4 != 0,
		}
		if mask&8 != 0 {
			fs.LengthScore = 0.7
		}
		if mask&16 != 0 {
			fs.LengthScore = 1
		}
		v := scoring.Score(fs)
		if v.Confidence < scoring.MinConfidence || v.Confidence > scoring.MaxConfidence {
			t.Errorf("mask %d: confidence %d out of range", mask, v.Confidence)
		}
	}
}

func TestBandBoundaries(t *testing.T) {
	tests := []struct {
		confidence int
		expected   string
	}{
		{97, scoring.BandHigh},
		{70, scoring.BandHigh},
		{69, scoring.BandMedium},
		{40, scoring.BandMedium},
		{39, scoring.BandLow},
		{3, scoring.BandLow},
	}

	for _, tt := range tests {
		if got := scoring.Band(tt.confidence); got != tt.expected {
			t.Errorf("Band(%d): expected %s, got %s", tt.confidence, tt.expected, got)
		}
	}
}
