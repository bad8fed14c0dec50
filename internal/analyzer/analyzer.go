// internal/analyzer/analyzer.go
package analyzer

import (
	"strings"
	"sync"

	"github.com/boyter/scc/v3/processor"
	"github.com/dsablic/codecheck/internal/model"
	"github.com/go-enry/go-enry/v2"
)

var initOnce sync.Once

// Auto is the language hint that asks for content-based detection.
const Auto = "auto"

// Analyzer wraps scc's processor and enry to describe a snippet's language.
type Analyzer struct{}

// New creates a new Analyzer instance. It ensures that scc's ProcessConstants
// is called exactly once, even when multiple goroutines create analyzers concurrently.
func New() *Analyzer {
	initOnce.Do(func() {
		processor.ProcessConstants()
	})
	return &Analyzer{}
}

// ResolveLanguage turns a language hint into an enry language name. An empty
// or "auto" hint is detected from content. Unknown hints resolve to "".
func (a *Analyzer) ResolveLanguage(hint, content string) string {
	hint = strings.TrimSpace(hint)
	if hint == "" || strings.EqualFold(hint, Auto) {
		if strings.TrimSpace(content) == "" {
			return ""
		}
		return enry.GetLanguage("", []byte(content))
	}
	if lang, ok := enry.GetLanguageByAlias(hint); ok {
		return lang
	}
	return ""
}

// Breakdown counts code, comment and blank lines of content in the given
// language. It returns nil when scc does not know the language.
func (a *Analyzer) Breakdown(language, content string) *model.LanguageStats {
	if language == "" || content == "" {
		return nil
	}

	exts := enry.GetLanguageExtensions(language)
	if len(exts) == 0 {
		return nil
	}
	filename := "snippet" + exts[0]

	possibleLanguages, _ := processor.DetectLanguage(filename)
	if len(possibleLanguages) == 0 {
		return nil
	}

	job := &processor.FileJob{
		Filename:          filename,
		Content:           []byte(content),
		Bytes:             int64(len(content)),
		PossibleLanguages: possibleLanguages,
	}

	job.Language = processor.DetermineLanguage(job.Filename, job.Language, job.PossibleLanguages, job.Content)
	if job.Language == "" {
		return nil
	}

	processor.CountStats(job)

	if job.Binary {
		return nil
	}

	return &model.LanguageStats{
		Name:       job.Language,
		Lines:      job.Lines,
		Code:       job.Code,
		Comments:   job.Comment,
		Blanks:     job.Blank,
		Complexity: job.Complexity,
	}
}
