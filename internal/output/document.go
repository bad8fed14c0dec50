package output

import (
	"encoding/json"
	"time"

	"github.com/dsablic/codecheck/internal/model"
	"github.com/google/uuid"
)

// ReportFileBase is the file name, without extension, of exported reports.
const ReportFileBase = "code-ai-checker-report"

// GeneratedLayout formats the report generation timestamp.
const GeneratedLayout = "2006-01-02 15:04:05 MST"

var reportNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://codeaichecker.com/report"))

// BuildDocument assembles the report sections for r. Code, when non-empty,
// becomes the final section. The document ID is derived from the content,
// so identical input always yields an identical document.
func BuildDocument(r model.ScoringResult, code string, generatedAt time.Time) model.ReportDocument {
	generated := generatedAt.UTC().Format(time.RFC3339)

	sections := []model.Section{
		{Kind: model.SectionTitle, Text: ReportTitle},
		{Kind: model.SectionMeta, Text: "Generated on: " + generatedAt.UTC().Format(GeneratedLayout)},
		{Kind: model.SectionDetection, Text: DetectionLine(r)},
		{Kind: model.SectionConfidence, Text: ConfidenceLine(r)},
	}
	if o := OriginalityLine(r); o != "" {
		sections = append(sections, model.Section{Kind: model.SectionOriginality, Text: o})
	}
	if r.Explanation != "" {
		sections = append(sections, model.Section{Kind: model.SectionExplanation, Heading: "Explanation", Text: r.Explanation})
	}
	if len(r.Indicators) > 0 {
		sections = append(sections, model.Section{Kind: model.SectionIndicators, Heading: "Key Indicators", Items: r.Indicators})
	}
	if code != "" {
		sections = append(sections, model.Section{Kind: model.SectionCode, Heading: "Analyzed Code Snippet", Text: code})
	}

	return model.ReportDocument{
		ID:          documentID(r, code, generated),
		GeneratedAt: generated,
		Result:      r,
		Sections:    sections,
	}
}

func documentID(r model.ScoringResult, code, generated string) string {
	data, err := json.Marshal(struct {
		Result    model.ScoringResult `json:"result"`
		Code      string              `json:"code"`
		Generated string              `json:"generated"`
	}{r, code, generated})
	if err != nil {
		return uuid.NewSHA1(reportNamespace, []byte(code+generated)).String()
	}
	return uuid.NewSHA1(reportNamespace, data).String()
}
