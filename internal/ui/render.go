package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dsablic/codecheck/internal/model"
	"github.com/dsablic/codecheck/internal/scoring"
	xterm "golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	defaultWidth = 80
	maxWidth     = 100
	barWidth     = 30
)

// PrivacyNotice is printed under every rendered result.
const PrivacyNotice = "Your code was analyzed in memory and was not saved or stored."

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	aiStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	humanStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)

	bandStyles = map[string]lipgloss.Style{
		scoring.BandHigh:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		scoring.BandMedium: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		scoring.BandLow:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
	}
)

var printer = message.NewPrinter(language.English)

// TerminalWidth returns the width of stdout, clamped to a readable range.
func TerminalWidth() int {
	w, _, err := xterm.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return min(w, maxWidth)
}

// CharacterCount formats n the way the input footer shows it.
func CharacterCount(n int) string {
	return printer.Sprintf("%d characters", n)
}

// Render draws a result for the terminal at the given width.
func Render(r model.ScoringResult, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	inner := width - 4

	band := r.Band
	if band == "" {
		band = scoring.Band(r.Confidence)
	}

	detection := humanStyle.Render("Human Written")
	if r.Classification.IsAI() {
		detection = aiStyle.Render("AI Generated")
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render("Analysis Result"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Detection:"), detection)
	fmt.Fprintf(&b, "%s %s %s\n", labelStyle.Render("Confidence:"),
		bandStyles[band].Render(fmt.Sprintf("%d%%", r.Confidence)), mutedStyle.Render("AI generated"))
	b.WriteString(Bar(r.Confidence, barWidth))
	b.WriteString("\n")

	if r.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(headingStyle.Render("Analysis Explanation"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(inner).Render(r.Explanation))
		b.WriteString("\n")
	}

	if len(r.Indicators) > 0 {
		b.WriteString("\n")
		b.WriteString(headingStyle.Render("Key Indicators"))
		b.WriteString("\n")
		item := lipgloss.NewStyle().Width(inner - 2)
		for _, ind := range r.Indicators {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, "• ", item.Render(ind)))
			b.WriteString("\n")
		}
	}

	if r.OriginalityScore != nil {
		b.WriteString("\n")
		b.WriteString(headingStyle.Render("Originality Check"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %d%% Original\n", Bar(*r.OriginalityScore, barWidth), *r.OriginalityScore)
	}

	footer := CharacterCount(r.Characters)
	if r.Language != "" {
		footer += " · " + r.Language
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(footer))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(PrivacyNotice))

	return boxStyle.Width(width - 2).Render(b.String())
}

// Bar renders pct as a fixed-width horizontal bar.
func Bar(pct, width int) string {
	pct = max(0, min(100, pct))
	filled := pct * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
