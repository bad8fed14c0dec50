package ui

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/dsablic/codecheck/internal/aiestimate"
	"github.com/dsablic/codecheck/internal/features"
)

// Languages are the hints offered by the input form. "auto" lets the
// analyzer detect the language from content.
var Languages = []string{"auto", "python", "javascript", "cpp", "java", "php", "html", "css", "matlab"}

// Input is the result of the interactive paste form.
type Input struct {
	Language string
	Code     string
}

// ValidateCode rejects blank code with the user-facing empty input message.
func ValidateCode(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New(aiestimate.EmptyInputMessage)
	}
	return nil
}

// CodeCharacterCount formats the length of code in the same units as the
// result footer.
func CodeCharacterCount(code string) string {
	return CharacterCount(features.Length(code))
}

// NewForm builds the language and code form, writing answers into in.
func NewForm(in *Input) *huh.Form {
	if in.Language == "" {
		in.Language = Languages[0]
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Language").
				Options(huh.NewOptions(Languages...)...).
				Value(&in.Language),
			huh.NewText().
				Title("Paste your code").
				DescriptionFunc(func() string {
					return CodeCharacterCount(in.Code)
				}, &in.Code).
				CharLimit(0).
				Lines(12).
				Validate(ValidateCode).
				Value(&in.Code),
		),
	).WithOutput(os.Stderr)
}

// Prompt runs the form and returns what the user entered.
func Prompt(language string) (Input, error) {
	in := Input{Language: language}
	if err := NewForm(&in).Run(); err != nil {
		return Input{}, err
	}
	return in, nil
}
