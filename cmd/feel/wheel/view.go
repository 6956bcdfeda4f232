package wheel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"whatfeeling/cmd/feel/ui"
	"whatfeeling/internal/emotion"
	"whatfeeling/internal/ux"
	"whatfeeling/internal/wizard"
)

const (
	promptPrimary   = "How are you feeling now?"
	emptyCandidates = "No emotions available"
	emptyTertiary   = "No tertiary emotions available"

	loadFailedTitle = "Error fetching emotions"
	loadFailedHint  = "Please check your API server and try again."

	conclusionTitle     = "Knowledge Is Powerful"
	conclusionParagraph = "You've taken a powerful step in understanding your emotions. " +
		"This awareness opens doors to personal growth and enhanced well-being. " +
		"Embrace your journey forward with confidence."
	introText = "Select every emotion that fits with space, then press enter to go a ring deeper. " +
		"You can pick more than one at each step."

	specificHeading = "Your Specific Emotions"
	journeyHeading  = "Your Emotional Journey"
)

var stageLabels = [wizard.StageCount]string{"Primary", "Secondary", "Tertiary"}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.load {
	case loadPending:
		return m.styles.Content.Render(m.spinner.View() + " Loading emotions...")
	case loadFailed:
		return m.renderLoadFailed()
	}

	if m.wiz.IsComplete() {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.summary.View(),
			m.renderFooter(),
		)
	}

	if m.modalOpen {
		dialog := m.modal.view(m.styles, m.spinner.View())
		if m.layout.TerminalHeight > 0 {
			return lipgloss.Place(m.layout.TerminalWidth, m.layout.TerminalHeight,
				lipgloss.Center, lipgloss.Center, dialog)
		}
		return dialog
	}

	return m.renderPicker()
}

func (m Model) renderLoadFailed() string {
	width := m.layout.ContentWidth()
	msg := "unknown error"
	if m.loadErr != nil {
		msg = m.loadErr.Error()
	}
	return m.styles.Content.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Error.Render(loadFailedTitle),
		"",
		m.styles.Body.Render(wordwrap.String(msg, width)),
		"",
		m.styles.Muted.Render(wordwrap.String(loadFailedHint, width)),
	))
}

// =============================================================================
// PICKER
// =============================================================================

func (m Model) renderPicker() string {
	width := m.layout.ContentWidth()
	stage := m.wiz.Stage()

	var sections []string
	sections = append(sections, m.renderThemeBand(width))
	sections = append(sections, m.renderNav(width))

	if stage == wizard.StagePrimary {
		sections = append(sections, m.styles.Title.Render(promptPrimary))
		if m.opts.Guidance == ux.DisclosureTutorial {
			sections = append(sections, m.styles.Muted.Render(wordwrap.String(introText, width)))
		}
	} else {
		sections = append(sections, m.styles.Subtitle.Render(
			fmt.Sprintf("Pick your %s emotions", strings.ToLower(stageLabels[stage]))))
	}

	sections = append(sections, m.renderCandidates(width))

	if m.keys.NotSure.Enabled() {
		sections = append(sections, m.styles.Muted.Render("Not sure? press ? to describe how you feel"))
	}

	sections = append(sections, m.renderHierarchy(width))

	if m.status != "" {
		sections = append(sections, m.renderStatus())
	}
	sections = append(sections, m.renderFooter())

	return m.styles.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderThemeBand is a strip in the color of the last toggled emotion.
func (m Model) renderThemeBand(width int) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.wiz.Theme())).
		Width(width).
		Render("")
}

func (m Model) renderNav(width int) string {
	var left, right string
	if m.wiz.CanRetreat() {
		left = m.styles.Muted.Render("← Back")
	}
	if m.wiz.CanAdvance() {
		right = m.styles.ThemeAccent(m.wiz.Theme(), m.wiz.Stage().NextLabel()+" →")
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderCandidates(width int) string {
	nodes, colors := m.pickerNodes()
	if len(nodes) == 0 {
		if m.wiz.Stage() == wizard.StageTertiary {
			return m.styles.Muted.Render(emptyTertiary)
		}
		return m.styles.Muted.Render(emptyCandidates)
	}

	chip := func(i int) string {
		return m.styles.Chip(nodes[i].Name, emotion.ColorValue(colors[i]), ui.ChipState{
			Selected: m.wiz.IsSelected(nodes[i].Name),
			Focused:  i == m.cursor,
		})
	}

	if m.wiz.Stage() != wizard.StageTertiary {
		blocks := make([]string, len(nodes))
		for i := range nodes {
			blocks[i] = chip(i)
		}
		return ui.Flow(blocks, width)
	}

	// One row per color group. pickerNodes already ordered nodes by group,
	// so consecutive indexes with the same color form a row.
	var rows []string
	var blocks []string
	for i := range nodes {
		if i > 0 && colors[i] != colors[i-1] {
			rows = append(rows, ui.Flow(blocks, width))
			blocks = nil
		}
		blocks = append(blocks, chip(i))
	}
	rows = append(rows, ui.Flow(blocks, width))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderHierarchy shows every reached stage, colored with the summary
// strategy, joined by connectors between stages already left behind.
func (m Model) renderHierarchy(width int) string {
	sel := m.wiz.Selections()
	stage := int(m.wiz.Stage())
	inner := ui.PanelContentWidth(width)

	var rows []string
	for i := 0; i < len(sel) && i < wizard.StageCount; i++ {
		label := m.styles.Bold.Render(stageLabels[i])
		if len(sel[i]) == 0 {
			rows = append(rows, label+"  "+m.styles.Muted.Render("nothing selected yet"))
		} else {
			colors := m.summaryColors(i)
			names := make([]string, len(sel[i]))
			for j, n := range sel[i] {
				names[j] = lipgloss.NewStyle().
					Background(lipgloss.Color(emotion.ColorValue(colors[j]))).
					Foreground(ui.ChipText).
					Padding(0, 1).
					Render(n.Name)
			}
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, "  ", ui.Flow(names, inner-lipgloss.Width(label)-2)))
		}
		if i < stage && i < int(wizard.StageTertiary) {
			rows = append(rows, m.styles.Connector.Render("│"))
		}
	}
	return m.styles.Panel.Width(width - ui.PanelBorderWidth*2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderStatus() string {
	if m.statusErr {
		return m.styles.Error.Render(m.status)
	}
	return m.styles.Success.Render(m.status)
}

func (m Model) renderFooter() string {
	if m.opts.Guidance == ux.DisclosureMinimal && !m.help.ShowAll {
		return m.styles.Footer.Render(m.help.ShortHelpView([]key.Binding{m.keys.Help, m.keys.Quit}))
	}
	return m.styles.Footer.Render(m.help.View(m.keys))
}

// =============================================================================
// CONCLUSION
// =============================================================================

// refreshSummary re-renders the conclusion into the viewport. It is a
// no-op until the journey is complete.
func (m *Model) refreshSummary() {
	if m.wiz == nil || !m.wiz.IsComplete() {
		return
	}
	m.summary.SetContent(m.renderConclusion())
}

func (m Model) renderConclusion() string {
	width := m.layout.ContentWidth()
	sel := m.wiz.Selections()

	sections := []string{
		m.styles.Title.Render(conclusionTitle),
		m.renderParagraph(conclusionParagraph, width),
	}

	if len(sel) > int(wizard.StageTertiary) && len(sel[wizard.StageTertiary]) > 0 {
		sections = append(sections,
			m.styles.Bold.Render(specificHeading),
			m.renderSummaryChips(sel[wizard.StageTertiary], m.summaryColors(int(wizard.StageTertiary)), width),
		)
	}

	var journey []string
	for i := int(wizard.StagePrimary); i <= int(wizard.StageSecondary) && i < len(sel); i++ {
		journey = append(journey, m.renderSummaryChips(sel[i], m.summaryColors(i), width))
	}
	sections = append(sections, m.styles.Bold.Render(journeyHeading))
	sections = append(sections, journey...)

	actions := []string{m.styles.Button.Render("Start Over") + m.styles.Muted.Render(" r")}
	if m.opts.Sharer != nil {
		actions = append(actions, m.styles.Button.Render("Share")+m.styles.Muted.Render(" s"))
	}
	if m.opts.Download != nil {
		actions = append(actions, m.styles.Button.Render("Save card")+m.styles.Muted.Render(" d"))
	}
	sections = append(sections, "", strings.Join(actions, "   "))

	switch {
	case m.sharing:
		sections = append(sections, m.spinner.View()+" Preparing your card...")
	case m.status != "":
		sections = append(sections, m.renderStatus())
	}

	return m.styles.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderParagraph(text string, width int) string {
	if m.renderer != nil {
		if out, err := m.renderer.Render(text); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return m.styles.Body.Render(wordwrap.String(text, width))
}

func (m Model) renderSummaryChips(nodes []*emotion.Node, colors []string, width int) string {
	blocks := make([]string, len(nodes))
	for i, n := range nodes {
		c := n.Color
		if i < len(colors) {
			c = colors[i]
		}
		blocks[i] = m.styles.Chip(n.Name, emotion.ColorValue(c), ui.ChipState{})
	}
	return ui.Flow(blocks, width)
}
