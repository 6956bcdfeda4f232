package wheel

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"whatfeeling/cmd/feel/ui"
	"whatfeeling/internal/emotion"
	"whatfeeling/internal/logging"
	"whatfeeling/internal/palette"
	"whatfeeling/internal/share"
	"whatfeeling/internal/wizard"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case taxonomyLoadedMsg:
		m.load = loadReady
		m.wiz = wizard.New(msg.roots)
		m.cursor = 0
		logging.UIDebug("taxonomy ready: %d roots", len(msg.roots))
		m.syncKeys()
		return m, nil

	case taxonomyFailedMsg:
		m.load = loadFailed
		m.loadErr = msg.err
		logging.UIDebug("taxonomy failed: %v", msg.err)
		m.syncKeys()
		return m, nil

	case suggestionMsg:
		if !m.modal.resolve(msg) {
			logging.UIDebug("dropped stale suggestion #%d", msg.seq)
			return m, nil
		}
		m.opts.Audit.Outbound(logging.AuditSuggest, msg.err)
		return m, nil

	case shareDoneMsg:
		m.sharing = false
		m.opts.Audit.Outbound(logging.AuditShare, msg.err)
		switch {
		case errors.Is(msg.err, share.ErrNothingToShare):
			m.setStatus("Nothing to share yet: pick at least one specific emotion", true)
		case msg.err != nil:
			logging.ShareWarn("share failed: %v", msg.err)
			m.setStatus("Error: "+msg.err.Error(), true)
		default:
			logging.Share("%s", msg.outcome.Message())
			m.setStatus(msg.outcome.Message(), false)
		}
		m.syncKeys()
		m.refreshSummary()
		return m, nil

	case journalSavedMsg:
		if msg.err != nil {
			m.setStatus("Journey not saved: "+msg.err.Error(), true)
			m.refreshSummary()
			return m, nil
		}
		m.saved++
		logging.Journal("recorded journey %s", msg.journey.ID)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.modalOpen {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) busy() bool {
	return m.load == loadPending || m.modal.pending || m.sharing
}

func (m *Model) resize(width, height int) {
	m.layout = ui.NewLayoutConfig(width, height)
	m.help.Width = m.layout.ContentWidth()
	m.modal.setWidth(m.layout.ModalWidth())
	m.summary.Width = m.layout.ContentWidth()
	m.summary.Height = m.layout.ContentHeight()
	m.renderer = newRenderer(m.styles, m.layout.ContentWidth())
	m.refreshSummary()
}

// handleKeyMsg routes a key press to the dialog, the picker or the
// conclusion, whichever is in front.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.modalOpen {
		return m.handleModalKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.load != loadReady || m.wiz == nil {
		return m, nil
	}
	if m.wiz.IsComplete() {
		return m.handleConclusionKey(msg)
	}
	return m.handlePickerKey(msg)
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.modal.close()
		m.modalOpen = false
		m.syncKeys()
		return m, nil
	case tea.KeyEnter:
		if msg.Alt {
			break
		}
		if !m.modal.canSubmit() {
			return m, nil
		}
		text, seq := m.modal.submit()
		m.suggestions++
		logging.UIDebug("suggestion #%d submitted", seq)
		return m, tea.Batch(m.spinner.Tick, requestSuggestion(m.ctx, m.opts.Suggester, text, seq))
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.update(msg)
	return m, cmd
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	nodes, _ := m.pickerNodes()

	switch {
	case key.Matches(msg, m.keys.Prev):
		if len(nodes) > 0 {
			m.cursor = (m.cursor - 1 + len(nodes)) % len(nodes)
		}

	case key.Matches(msg, m.keys.Next):
		if len(nodes) > 0 {
			m.cursor = (m.cursor + 1) % len(nodes)
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(nodes) {
			m.wiz.Toggle(nodes[m.cursor])
		}

	case key.Matches(msg, m.keys.Advance):
		if !m.wiz.Advance() {
			return m, nil
		}
		m.cursor = 0
		m.status = ""
		if m.wiz.IsComplete() {
			m.completed++
			m.opts.Audit.JourneyComplete(m.tertiaryNames())
			m.syncKeys()
			m.refreshSummary()
			m.summary.GotoTop()
			if m.opts.Journal != nil {
				return m, recordJourney(m.ctx, m.opts.Journal, m.wiz.Snapshot(), m.opts.Now())
			}
			return m, nil
		}
		m.opts.Audit.Stage(logging.AuditStageAdvance, m.wiz.Stage().String())

	case key.Matches(msg, m.keys.Back):
		if m.wiz.Retreat() {
			m.cursor = 0
			m.opts.Audit.Stage(logging.AuditStageRetreat, m.wiz.Stage().String())
		}

	case key.Matches(msg, m.keys.NotSure):
		m.modalOpen = true
		m.modal.setWidth(m.layout.ModalWidth())
		cmd := m.modal.open()
		m.syncKeys()
		return m, cmd
	}

	m.syncKeys()
	return m, nil
}

func (m Model) handleConclusionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Share):
		return m.startShare(m.opts.Sharer)

	case key.Matches(msg, m.keys.Download):
		return m.startShare(m.opts.Download)

	case key.Matches(msg, m.keys.StartOver):
		m.wiz.Reset()
		m.cursor = 0
		m.status = ""
		m.opts.Audit.Stage(logging.AuditStartOver, m.wiz.Stage().String())
		m.syncKeys()
		return m, nil
	}

	var cmd tea.Cmd
	m.summary, cmd = m.summary.Update(msg)
	return m, cmd
}

func (m Model) startShare(s share.Sharer) (tea.Model, tea.Cmd) {
	if s == nil || m.sharing {
		return m, nil
	}
	m.sharing = true
	m.setStatus("", false)
	m.syncKeys()
	m.refreshSummary()
	return m, tea.Batch(m.spinner.Tick, shareCard(m.ctx, s, m.shareBubbles(), m.opts.Now()))
}

// pickerNodes returns the current candidates in display order with the
// color token each chip is drawn with. The tertiary stage is regrouped by
// color so the cursor walks rows in the order they are drawn.
func (m Model) pickerNodes() ([]*emotion.Node, []string) {
	candidates := m.wiz.Candidates()
	stage := int(m.wiz.Stage())
	if stage == int(wizard.StagePrimary) {
		colors := make([]string, len(candidates))
		for i, n := range candidates {
			colors[i] = n.Color
		}
		return candidates, colors
	}

	colors := m.opts.PickerColoring.Colors(candidates, m.wiz.Selections(), stage)
	if m.wiz.Stage() != wizard.StageTertiary {
		return candidates, colors
	}

	nodes := make([]*emotion.Node, 0, len(candidates))
	ordered := make([]string, 0, len(candidates))
	for _, g := range palette.GroupByColor(candidates, colors) {
		for _, n := range g.Nodes {
			nodes = append(nodes, n)
			ordered = append(ordered, g.Color)
		}
	}
	return nodes, ordered
}

// summaryColors resolves a stage's selection with the summary strategy.
func (m Model) summaryColors(stage int) []string {
	sel := m.wiz.Selections()
	if stage >= len(sel) {
		return nil
	}
	return m.opts.SummaryColoring.Colors(sel[stage], sel, stage)
}

func (m Model) tertiaryNames() []string {
	sel := m.wiz.Selections()
	if len(sel) <= int(wizard.StageTertiary) {
		return nil
	}
	names := make([]string, len(sel[wizard.StageTertiary]))
	for i, n := range sel[wizard.StageTertiary] {
		names[i] = n.Name
	}
	return names
}

func (m Model) shareBubbles() []share.Bubble {
	sel := m.wiz.Selections()
	if len(sel) <= int(wizard.StageTertiary) {
		return nil
	}
	return share.BubblesFor(sel[wizard.StageTertiary], m.summaryColors(int(wizard.StageTertiary)))
}
