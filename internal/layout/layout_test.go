package layout_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dsablic/codecheck/internal/layout"
	"github.com/dsablic/codecheck/internal/model"
)

// tenPerLine fits exactly ten characters on a ContentWidth line at any size.
type tenPerLine struct{}

func (tenPerLine) Width(font layout.Font, text string) float64 {
	return float64(len([]rune(text))) * layout.ContentWidth / 10
}

func summaryDoc(code string) model.ReportDocument {
	sections := []model.Section{
		{Kind: model.SectionTitle, Text: "Title"},
		{Kind: model.SectionMeta, Text: "Generated"},
		{Kind: model.SectionDetection, Text: "Detection: AI Generated"},
		{Kind: model.SectionConfidence, Text: "Confidence: 76% AI generated"},
		{Kind: model.SectionOriginality, Text: "Originality: 72%"},
		{Kind: model.SectionExplanation, Heading: "Explanation", Text: "short"},
		{Kind: model.SectionIndicators, Heading: "Key Indicators", Items: []string{"one", "two"}},
	}
	if code != "" {
		sections = append(sections, model.Section{Kind: model.SectionCode, Heading: "Analyzed Code Snippet", Text: code})
	}
	return model.ReportDocument{Sections: sections}
}

func TestPaginateSummaryPositions(t *testing.T) {
	pages := layout.Paginate(summaryDoc(""), layout.Courier)

	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}

	ops := pages[0].Ops
	wantY := []float64{40, 66, 96, 114, 132, 158, 176, 200, 218, 232}
	if len(ops) != len(wantY) {
		t.Fatalf("expected %d ops, got %d", len(wantY), len(ops))
	}
	for i, y := range wantY {
		if ops[i].Y != y {
			t.Errorf("op %d (%q): expected y %.0f, got %.0f", i, ops[i].Text, y, ops[i].Y)
		}
		if ops[i].X != layout.Margin {
			t.Errorf("op %d: expected x %d, got %.0f", i, layout.Margin, ops[i].X)
		}
	}

	if ops[0].Font != layout.TitleFont {
		t.Errorf("expected title font, got %+v", ops[0].Font)
	}
	if ops[1].Gray != layout.MetaGray {
		t.Errorf("expected grey meta line, got %d", ops[1].Gray)
	}
	if ops[8].Text != "• one" {
		t.Errorf("expected bulleted indicator, got %q", ops[8].Text)
	}
}

func TestPaginateCodeStartsNewPage(t *testing.T) {
	pages := layout.Paginate(summaryDoc("print(1)"), layout.Courier)

	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	code := pages[1].Ops
	if code[0].Text != "Analyzed Code Snippet" || code[0].Y != layout.Margin {
		t.Errorf("unexpected code heading %+v", code[0])
	}
	if code[1].Font != layout.CodeFont || code[1].Y != 62 {
		t.Errorf("unexpected first code line %+v", code[1])
	}
}

func TestPaginateCodeBreaksPages(t *testing.T) {
	var lines []string
	for i := 0; i < 130; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	pages := layout.Paginate(summaryDoc(strings.Join(lines, "\n")), layout.Courier)

	// 62..770 fits 60 lines on the first code page, 40..772 fits 62 after.
	if len(pages) != 4 {
		t.Fatalf("expected 4 pages, got %d", len(pages))
	}
	if n := len(pages[1].Ops) - 1; n != 60 {
		t.Errorf("expected 60 code lines on the first code page, got %d", n)
	}
	if n := len(pages[2].Ops); n != 62 {
		t.Errorf("expected 62 code lines on the second code page, got %d", n)
	}
	for _, p := range pages[1:] {
		for _, op := range p.Ops {
			if op.Y > layout.BreakY {
				t.Errorf("op %q placed below the break line at %.0f", op.Text, op.Y)
			}
		}
	}
	if pages[2].Ops[0].Y != layout.Margin {
		t.Errorf("continuation page should start at the margin, got %.0f", pages[2].Ops[0].Y)
	}
}

func TestPaginateIndicatorsWithoutExplanation(t *testing.T) {
	doc := model.ReportDocument{Sections: []model.Section{
		{Kind: model.SectionDetection, Text: "Detection: Human Written"},
		{Kind: model.SectionConfidence, Text: "Confidence: 48% AI generated"},
		{Kind: model.SectionIndicators, Heading: "Key Indicators", Items: []string{"x"}},
	}}
	ops := layout.Paginate(doc, layout.Courier)[0].Ops

	if ops[2].Y <= ops[1].Y {
		t.Errorf("indicator heading overlaps the confidence line: %.0f <= %.0f", ops[2].Y, ops[1].Y)
	}
}

func TestWrapWords(t *testing.T) {
	got := layout.Wrap("aaaa bbbb cccc", layout.BodyFont, layout.ContentWidth, tenPerLine{})
	want := []string{"aaaa bbbb", "cccc"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestWrapBreaksLongWords(t *testing.T) {
	got := layout.Wrap("abcdefghijklmnopqrstuvwxy", layout.BodyFont, layout.ContentWidth, tenPerLine{})
	want := []string{"abcdefghij", "klmnopqrst", "uvwxy"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestWrapKeepsIndentationAndBlankLines(t *testing.T) {
	got := layout.Wrap("if x {\n\n    y()\n}", layout.CodeFont, layout.ContentWidth, tenPerLine{})
	want := []string{"if x {", "", "    y()", "}"}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestCellMeasurerWideRunes(t *testing.T) {
	font := layout.Font{Size: 10}
	if w := layout.Courier.Width(font, "ab"); w != 12 {
		t.Errorf("expected 12, got %f", w)
	}
	if w := layout.Courier.Width(font, "漢"); w != 12 {
		t.Errorf("expected a wide rune to take two cells, got %f", w)
	}
}
