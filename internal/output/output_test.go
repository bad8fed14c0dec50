// internal/output/output_test.go
package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dsablic/codecheck/internal/model"
	"github.com/dsablic/codecheck/internal/output"
	"github.com/vmihailenco/msgpack/v5"
)

var sampleTime = time.Date(2026, 2, 18, 12, 0, 0, 0, time.UTC)

func sampleResult() model.ScoringResult {
	orig := 72
	return model.ScoringResult{
		Classification:   model.AIGenerated,
		Confidence:       76,
		Band:             "high",
		Explanation:      "Repetitive structure, low comment usage, and uniform formatting lean towards AI-generated code.",
		Indicators:       []string{"Code length factor: 25%", "No or very few comments detected."},
		OriginalityScore: &orig,
		CreatedAt:        "2026-02-18T12:00:00Z",
	}
}

func TestPlainText(t *testing.T) {
	text := output.PlainText(sampleResult())

	expected := strings.Join([]string{
		"Code AI Checker – Analysis Result",
		"----------------------------------",
		"Detection: AI Generated",
		"Confidence: 76% AI generated",
		"Originality: 72%",
		"",
		"Explanation:",
		"Repetitive structure, low comment usage, and uniform formatting lean towards AI-generated code.",
		"",
		"Key Indicators:",
		"- Code length factor: 25%",
		"- No or very few comments detected.",
	}, "\n")

	if text != expected {
		t.Errorf("unexpected plain text:\n%s", text)
	}
}

func TestPlainTextWithoutOptionalParts(t *testing.T) {
	r := model.ScoringResult{Classification: model.HumanWritten, Confidence: 48}
	text := output.PlainText(r)

	if !strings.Contains(text, "Detection:") || !strings.Contains(text, "Confidence:") {
		t.Error("plain text should always contain detection and confidence")
	}
	if strings.Contains(text, "Originality") {
		t.Error("plain text should not contain originality when absent")
	}
	if strings.Contains(text, "Key Indicators") {
		t.Error("plain text should not contain indicators when absent")
	}
}

func TestParseConfidenceRoundTrip(t *testing.T) {
	for _, c := range []int{3, 48, 58, 97} {
		r := sampleResult()
		r.Confidence = c
		got, err := output.ParseConfidence(output.PlainText(r))
		if err != nil {
			t.Fatalf("ParseConfidence: %v", err)
		}
		if got != c {
			t.Errorf("expected %d, got %d", c, got)
		}
	}
}

func TestParseConfidenceMissing(t *testing.T) {
	if _, err := output.ParseConfidence("Detection: AI Generated"); err == nil {
		t.Error("expected error for text without confidence line")
	}
}

func TestShareLink(t *testing.T) {
	link := output.ShareLink(sampleResult(), "https://example.com", sampleTime)

	if !strings.HasPrefix(link, "https://example.com/share?") {
		t.Errorf("unexpected link prefix: %s", link)
	}
	if !strings.Contains(link, "result=") {
		t.Error("link should contain result= query key")
	}

	payload, err := output.DecodeShareToken(link)
	if err != nil {
		t.Fatalf("DecodeShareToken: %v", err)
	}
	if payload.Detection != "AI" {
		t.Errorf("expected detection AI, got %s", payload.Detection)
	}
	if payload.Confidence != 76 {
		t.Errorf("expected confidence 76, got %d", payload.Confidence)
	}
	if payload.Originality == nil || *payload.Originality != 72 {
		t.Errorf("expected originality 72, got %v", payload.Originality)
	}
	if payload.CreatedAt != "2026-02-18T12:00:00.000Z" {
		t.Errorf("unexpected createdAt %s", payload.CreatedAt)
	}
}

func TestShareLinkFallbackOrigin(t *testing.T) {
	link := output.ShareLink(sampleResult(), "", sampleTime)
	if !strings.HasPrefix(link, output.FallbackOrigin+"/share?result=") {
		t.Errorf("expected fallback origin, got %s", link)
	}
}

func TestShareLinkTrailingSlash(t *testing.T) {
	link := output.ShareLink(sampleResult(), "http://localhost:5173/", sampleTime)
	if !strings.HasPrefix(link, "http://localhost:5173/share?result=") {
		t.Errorf("unexpected link %s", link)
	}
}

func TestShareLinkInvalidOriginIsEmpty(t *testing.T) {
	for _, origin := range []string{"not a url", "://missing-scheme", "/relative", "https://x.com?a=1", "https://x.com#top", "https://x.com?"} {
		if link := output.ShareLink(sampleResult(), origin, sampleTime); link != "" {
			t.Errorf("origin %q: expected empty link, got %s", origin, link)
		}
	}
}

func TestShareTokenIsEscaped(t *testing.T) {
	token := output.ShareToken(sampleResult(), sampleTime)
	if strings.ContainsAny(token, "+/=") {
		t.Errorf("token should be percent-escaped, got %s", token)
	}
	if _, err := output.DecodeShareToken(token); err != nil {
		t.Errorf("escaped token should decode: %v", err)
	}
}

func TestShareTokenOmitsMissingOriginality(t *testing.T) {
	r := sampleResult()
	r.OriginalityScore = nil
	payload, err := output.DecodeShareToken(output.ShareToken(r, sampleTime))
	if err != nil {
		t.Fatalf("DecodeShareToken: %v", err)
	}
	if payload.Originality != nil {
		t.Errorf("expected no originality, got %d", *payload.Originality)
	}
}

func TestBuildDocumentSections(t *testing.T) {
	doc := output.BuildDocument(sampleResult(), "print(1)", sampleTime)

	kinds := []model.SectionKind{
		model.SectionTitle,
		model.SectionMeta,
		model.SectionDetection,
		model.SectionConfidence,
		model.SectionOriginality,
		model.SectionExplanation,
		model.SectionIndicators,
		model.SectionCode,
	}
	if len(doc.Sections) != len(kinds) {
		t.Fatalf("expected %d sections, got %d", len(kinds), len(doc.Sections))
	}
	for i, k := range kinds {
		if doc.Sections[i].Kind != k {
			t.Errorf("section %d: expected %s, got %s", i, k, doc.Sections[i].Kind)
		}
	}
	if doc.Sections[1].Text != "Generated on: 2026-02-18 12:00:00 UTC" {
		t.Errorf("unexpected meta line %q", doc.Sections[1].Text)
	}
}

func TestBuildDocumentWithoutCode(t *testing.T) {
	r := sampleResult()
	r.OriginalityScore = nil
	doc := output.BuildDocument(r, "", sampleTime)

	for _, s := range doc.Sections {
		if s.Kind == model.SectionCode {
			t.Error("expected no code section")
		}
		if s.Kind == model.SectionOriginality {
			t.Error("expected no originality section")
		}
	}
}

func TestBuildDocumentIDIsStable(t *testing.T) {
	a := output.BuildDocument(sampleResult(), "x", sampleTime)
	b := output.BuildDocument(sampleResult(), "x", sampleTime)
	c := output.BuildDocument(sampleResult(), "y", sampleTime)

	if a.ID != b.ID {
		t.Errorf("expected identical IDs, got %s and %s", a.ID, b.ID)
	}
	if a.ID == c.ID {
		t.Error("expected different IDs for different code")
	}
}

func TestWriteMarkdown(t *testing.T) {
	r := sampleResult()
	r.Language = "Python"
	doc := output.BuildDocument(r, "print(1)\n", sampleTime)

	var buf bytes.Buffer
	if err := output.WriteMarkdown(&buf, doc); err != nil {
		t.Fatalf("failed to write markdown: %v", err)
	}

	md := buf.String()
	if !strings.Contains(md, "# Code AI Checker – Analysis Report") {
		t.Error("markdown should contain the report title")
	}
	if !strings.Contains(md, "**Confidence:** 76% AI generated") {
		t.Error("markdown should contain the confidence line")
	}
	if !strings.Contains(md, "- No or very few comments detected.") {
		t.Error("markdown should list indicators")
	}
	if !strings.Contains(md, "```python\nprint(1)\n```") {
		t.Error("markdown should contain the fenced code")
	}
	if !strings.Contains(md, doc.ID) {
		t.Error("markdown should contain the report ID")
	}
}

func TestWriteMarkdownFenceEscapes(t *testing.T) {
	doc := output.BuildDocument(sampleResult(), "a\n```\nb", sampleTime)

	var buf bytes.Buffer
	if err := output.WriteMarkdown(&buf, doc); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}
	if !strings.Contains(buf.String(), "````\na\n```\nb\n````") {
		t.Errorf("expected a longer fence around code containing backticks:\n%s", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := output.WriteJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("failed to write JSON: %v", err)
	}

	var decoded model.ScoringResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Confidence != 76 {
		t.Errorf("expected confidence 76, got %d", decoded.Confidence)
	}
}

func TestWriteMsgpack(t *testing.T) {
	doc := output.BuildDocument(sampleResult(), "", sampleTime)

	var buf bytes.Buffer
	if err := output.WriteMsgpack(&buf, doc); err != nil {
		t.Fatalf("failed to write msgpack: %v", err)
	}

	var decoded model.ReportDocument
	if err := msgpack.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid msgpack: %v", err)
	}
	if decoded.ID != doc.ID {
		t.Errorf("expected ID %s, got %s", doc.ID, decoded.ID)
	}
}
