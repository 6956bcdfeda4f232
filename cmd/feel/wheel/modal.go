package wheel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"whatfeeling/cmd/feel/ui"
)

const (
	modalTitle       = "Describe your feelings"
	modalWarning     = "WARNING: Perplexity AI will be used to analyze your text and return a result. Please do not share any private information. AI may make mistakes. Please use with discretion."
	modalPlaceholder = "Describe how you're feeling..."
)

// suggestModal is the "Not sure?" dialog: one text field, a submit action
// that is disabled while a request is pending or the input is blank, and
// an inline result or error.
type suggestModal struct {
	input   textarea.Model
	pending bool
	result  string
	err     error

	// seq identifies the latest submission. Closing bumps it so late
	// answers land nowhere.
	seq   int
	width int
}

func newSuggestModal() suggestModal {
	ta := textarea.New()
	ta.Placeholder = modalPlaceholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetHeight(4)
	ta.SetWidth(ui.ModalMaxWidth)
	// Enter submits, Alt+Enter breaks the line.
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))
	return suggestModal{input: ta, width: ui.ModalMaxWidth}
}

// open focuses the field on a cleared dialog.
func (m *suggestModal) open() tea.Cmd {
	m.reset()
	return m.input.Focus()
}

// close clears input, result and error.
func (m *suggestModal) close() {
	m.reset()
	m.input.Blur()
}

func (m *suggestModal) reset() {
	m.input.Reset()
	m.pending = false
	m.result = ""
	m.err = nil
	m.seq++
}

func (m *suggestModal) setWidth(w int) {
	m.width = w
	m.input.SetWidth(w)
}

func (m suggestModal) canSubmit() bool {
	return !m.pending && strings.TrimSpace(m.input.Value()) != ""
}

// submit marks a request in flight and returns its text and sequence.
func (m *suggestModal) submit() (string, int) {
	m.pending = true
	m.result = ""
	m.err = nil
	m.seq++
	return m.input.Value(), m.seq
}

// resolve applies an answer if it belongs to the latest submission.
func (m *suggestModal) resolve(msg suggestionMsg) bool {
	if msg.seq != m.seq || !m.pending {
		return false
	}
	m.pending = false
	m.result, m.err = msg.result, msg.err
	return true
}

func (m suggestModal) update(msg tea.Msg) (suggestModal, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m suggestModal) view(s ui.Styles, spinner string) string {
	var sb strings.Builder

	sb.WriteString(s.Title.Render(modalTitle))
	sb.WriteString("\n")
	sb.WriteString(s.Error.Bold(false).Render(wordwrap.String(modalWarning, m.width)))
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")

	switch {
	case m.pending:
		sb.WriteString(spinner + " Analyzing...")
	case m.canSubmit():
		sb.WriteString(s.Button.Render("Submit") + s.Muted.Render("  enter"))
	default:
		sb.WriteString(s.Disabled.Render("Submit"))
	}
	sb.WriteString(s.Muted.Render("   esc close · alt+enter new line"))

	if m.err != nil {
		sb.WriteString("\n\n")
		sb.WriteString(s.Error.Render("Error:"))
		sb.WriteString("\n")
		sb.WriteString(wordwrap.String(m.err.Error(), m.width))
	}
	if m.result != "" {
		sb.WriteString("\n\n")
		sb.WriteString(s.Success.Render(wordwrap.String(fmt.Sprintf("You could be feeling %s", m.result), m.width)))
	}

	return s.Modal.Width(m.width + 4).Render(lipgloss.NewStyle().Width(m.width).Render(sb.String()))
}
