// Package report exports report documents to files in a chosen format.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsablic/codecheck/internal/model"
	"github.com/dsablic/codecheck/internal/output"
	"github.com/dsablic/codecheck/internal/pdf"
)

// Format is an export format; its value is the file extension.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
	FormatMsgpack  Format = "msgpack"
)

// Formats lists the supported formats.
var Formats = []Format{FormatPDF, FormatMarkdown, FormatJSON, FormatMsgpack}

// ParseFormat accepts a format name or common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pdf":
		return FormatPDF, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("unsupported report format: %s (use pdf, md, json or msgpack)", s)
	}
}

// Filename returns the fixed report file name for f.
func Filename(f Format) string {
	return output.ReportFileBase + "." + string(f)
}

// ContentType returns the MIME type for f.
func ContentType(f Format) string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatJSON:
		return "application/json"
	default:
		return "application/msgpack"
	}
}

// Export writes doc to w in format f.
func Export(w io.Writer, doc model.ReportDocument, f Format) error {
	switch f {
	case FormatPDF:
		return pdf.Write(w, doc)
	case FormatMarkdown:
		return output.WriteMarkdown(w, doc)
	case FormatJSON:
		return output.WriteJSON(w, doc)
	case FormatMsgpack:
		return output.WriteMsgpack(w, doc)
	default:
		return fmt.Errorf("unsupported report format: %s", f)
	}
}

// Save renders doc into dir under the fixed report file name and returns the
// written path. The file is only replaced once rendering succeeded.
func Save(dir string, doc model.ReportDocument, f Format) (string, error) {
	var buf bytes.Buffer
	if err := Export(&buf, doc, f); err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	path := filepath.Join(dir, Filename(f))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
