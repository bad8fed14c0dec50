// internal/model/model.go
package model

// Classification is the verdict for an analyzed snippet.
type Classification string

const (
	AIGenerated  Classification = "AI_GENERATED"
	HumanWritten Classification = "HUMAN_WRITTEN"
)

// Label returns the human-readable detection label.
func (c Classification) Label() string {
	if c == AIGenerated {
		return "AI Generated"
	}
	return "Human Written"
}

// IsAI reports whether the classification is AI_GENERATED.
func (c Classification) IsAI() bool {
	return c == AIGenerated
}

// LineStats holds the optional descriptive statistics of extended analysis.
type LineStats struct {
	TotalLines       int     `json:"total_lines" msgpack:"total_lines"`
	AvgLineLength    float64 `json:"avg_line_length" msgpack:"avg_line_length"`
	LineLengthStdDev float64 `json:"line_length_stddev" msgpack:"line_length_stddev"`
	CommentRatio     float64 `json:"comment_ratio" msgpack:"comment_ratio"`
	LongLineRatio    float64 `json:"long_line_ratio" msgpack:"long_line_ratio"`
}

// LanguageStats holds scc line counts for a snippet in a known language.
type LanguageStats struct {
	Name       string `json:"name" msgpack:"name"`
	Lines      int64  `json:"lines" msgpack:"lines"`
	Code       int64  `json:"code" msgpack:"code"`
	Comments   int64  `json:"comments" msgpack:"comments"`
	Blanks     int64  `json:"blanks" msgpack:"blanks"`
	Complexity int64  `json:"complexity" msgpack:"complexity"`
}

// FeatureSet is the fixed-shape record of signals extracted from a snippet.
// Stats is nil unless extended analysis was requested.
type FeatureSet struct {
	Length             int        `json:"length" msgpack:"length"`
	LengthScore        float64    `json:"length_score" msgpack:"length_score"`
	HasComments        bool       `json:"has_comments" msgpack:"has_comments"`
	RepetitiveMarkers  bool       `json:"repetitive_markers" msgpack:"repetitive_markers"`
	UniformIndentation bool       `json:"uniform_indentation" msgpack:"uniform_indentation"`
	Stats              *LineStats `json:"stats,omitempty" msgpack:"stats,omitempty"`
}

// Contribution records a scoring rule that fired.
type Contribution struct {
	Rule   string `json:"rule" msgpack:"rule"`
	Weight int    `json:"weight" msgpack:"weight"`
}

// ScoringResult is the output of one analysis call.
type ScoringResult struct {
	Classification   Classification `json:"classification" msgpack:"classification"`
	Confidence       int            `json:"confidence" msgpack:"confidence"`
	Band             string         `json:"band" msgpack:"band"`
	Explanation      string         `json:"explanation" msgpack:"explanation"`
	Indicators       []string       `json:"indicators" msgpack:"indicators"`
	OriginalityScore *int           `json:"originality_score,omitempty" msgpack:"originality_score,omitempty"`
	Language         string         `json:"language,omitempty" msgpack:"language,omitempty"`
	Characters       int            `json:"characters" msgpack:"characters"`
	Features         FeatureSet     `json:"features" msgpack:"features"`
	Contributions    []Contribution `json:"contributions,omitempty" msgpack:"contributions,omitempty"`
	Breakdown        *LanguageStats `json:"breakdown,omitempty" msgpack:"breakdown,omitempty"`
	License          string         `json:"license,omitempty" msgpack:"license,omitempty"`
	CreatedAt        string         `json:"created_at" msgpack:"created_at"`
}

// SectionKind identifies a section of a report document.
type SectionKind string

const (
	SectionTitle       SectionKind = "title"
	SectionMeta        SectionKind = "meta"
	SectionDetection   SectionKind = "detection"
	SectionConfidence  SectionKind = "confidence"
	SectionOriginality SectionKind = "originality"
	SectionExplanation SectionKind = "explanation"
	SectionIndicators  SectionKind = "indicators"
	SectionCode        SectionKind = "code"
)

// Section is one typed block of a report. Items holds list entries for
// indicator sections; Text holds everything else.
type Section struct {
	Kind    SectionKind `json:"kind" msgpack:"kind"`
	Heading string      `json:"heading,omitempty" msgpack:"heading,omitempty"`
	Text    string      `json:"text,omitempty" msgpack:"text,omitempty"`
	Items   []string    `json:"items,omitempty" msgpack:"items,omitempty"`
}

// ReportDocument is the ordered, write-once content of an exported report.
type ReportDocument struct {
	ID          string        `json:"id" msgpack:"id"`
	GeneratedAt string        `json:"generated_at" msgpack:"generated_at"`
	Result      ScoringResult `json:"result" msgpack:"result"`
	Sections    []Section     `json:"sections" msgpack:"sections"`
}
