package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dsablic/codecheck/internal/model"
)

// WriteMarkdown writes the report document as GitHub-flavored markdown to w.
func WriteMarkdown(w io.Writer, doc model.ReportDocument) error {
	for _, s := range doc.Sections {
		switch s.Kind {
		case model.SectionTitle:
			fmt.Fprintf(w, "# %s\n\n", s.Text)
		case model.SectionMeta:
			fmt.Fprintf(w, "_%s_\n\n", s.Text)
		case model.SectionDetection, model.SectionConfidence, model.SectionOriginality:
			label, value, _ := strings.Cut(s.Text, ": ")
			fmt.Fprintf(w, "**%s:** %s\n\n", label, value)
		case model.SectionExplanation:
			fmt.Fprintf(w, "## %s\n\n%s\n\n", s.Heading, s.Text)
		case model.SectionIndicators:
			fmt.Fprintf(w, "## %s\n\n", s.Heading)
			for _, item := range s.Items {
				fmt.Fprintf(w, "- %s\n", item)
			}
			fmt.Fprintln(w)
		case model.SectionCode:
			fence := "```"
			for strings.Contains(s.Text, fence) {
				fence += "`"
			}
			fmt.Fprintf(w, "## %s\n\n%s%s\n%s\n%s\n\n", s.Heading, fence, langTag(doc.Result.Language), strings.TrimRight(s.Text, "\n"), fence)
		}
	}
	_, err := fmt.Fprintf(w, "---\n\nReport ID: `%s`\n", doc.ID)
	return err
}

func langTag(language string) string {
	return strings.ToLower(strings.ReplaceAll(language, " ", "-"))
}
