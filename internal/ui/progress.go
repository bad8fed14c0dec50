// Package ui provides terminal rendering and progress display for analysis.
package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// IsTTY returns true if stderr is a terminal.
func IsTTY() bool {
	return term.IsTerminal(os.Stderr.Fd())
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(os.Stdout.Fd())
}

// IsStdinTTY returns true if stdin is a terminal.
func IsStdinTTY() bool {
	return term.IsTerminal(os.Stdin.Fd())
}

// --- Plain text fallback ---

// PlainProgress prints progress messages to a callback function.
// Used when stderr is not a TTY (e.g., piped output).
type PlainProgress struct {
	print func(string)
}

// NewPlainProgress creates a new PlainProgress with the given print callback.
func NewPlainProgress(print func(string)) *PlainProgress {
	return &PlainProgress{print: print}
}

// Update prints a progress message for a completed snippet.
func (p *PlainProgress) Update(completed, total int, name string) {
	p.print(fmt.Sprintf("[%d/%d] Analyzed %s", completed, total, name))
}

// Done prints a completion message.
func (p *PlainProgress) Done(total int) {
	p.print(fmt.Sprintf("Done! Analyzed %d snippets.", total))
}

// --- TUI spinner ---

// DoneMsg is sent to the bubbletea program when the analysis has finished.
type DoneMsg struct{}

type tuiModel struct {
	spinner   spinner.Model
	title     string
	done      bool
	cancelled bool
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewTUIModel creates a new bubbletea model showing a spinner and title.
func NewTUIModel(title string) tuiModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return tuiModel{spinner: sp, title: title}
}

func (m tuiModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}
	case DoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m tuiModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return "\n  " + m.spinner.View() + " " + titleStyle.Render(m.title) + "\n  " +
		infoStyle.Render("ctrl+c to cancel") + "\n"
}

// Cancelled reports whether the user quit the program before it finished.
func Cancelled(m tea.Model) bool {
	mm, ok := m.(tuiModel)
	return ok && mm.cancelled
}

// RunTUI creates and returns a bubbletea program for the spinner.
// The program outputs to stderr so output on stdout stays clean.
func RunTUI(title string) *tea.Program {
	return tea.NewProgram(NewTUIModel(title), tea.WithOutput(os.Stderr))
}
