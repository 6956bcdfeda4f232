// Package wheel is the interactive emotion wheel: a Bubble Tea program that
// loads the taxonomy, walks the user through primary, secondary and
// tertiary emotions, and ends on a summary that can be shared.
package wheel

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"whatfeeling/cmd/feel/ui"
	"whatfeeling/internal/logging"
	"whatfeeling/internal/palette"
	"whatfeeling/internal/share"
	"whatfeeling/internal/taxonomy"
	"whatfeeling/internal/ux"
	"whatfeeling/internal/wizard"
)

// Options wires the wheel to its collaborators. Loader is required; the
// rest are optional.
type Options struct {
	Context context.Context
	Loader  *taxonomy.Loader

	// Suggester backs the "Not sure?" dialog. Nil hides it.
	Suggester Suggester

	// Sharer handles the share key; Download handles the save key.
	Sharer   share.Sharer
	Download share.Sharer

	// Journal records completed journeys. Nil disables recording.
	Journal Recorder

	// Audit receives stage transitions and outbound results. Nil is silent.
	Audit *logging.AuditLogger

	PickerColoring  palette.Strategy
	SummaryColoring palette.Strategy

	// Guidance sets how much help is shown. The zero value is minimal.
	Guidance ux.DisclosureLevel

	Styles *ui.Styles
	Now    func() time.Time
}

type loadState int

const (
	loadPending loadState = iota
	loadReady
	loadFailed
)

// Model is the Bubble Tea model for the wheel.
type Model struct {
	opts Options
	ctx  context.Context

	// UI Components
	styles   ui.Styles
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	summary  viewport.Model
	renderer *glamour.TermRenderer
	layout   ui.LayoutConfig

	// Taxonomy
	load    loadState
	loadErr error

	// Wizard
	wiz    *wizard.Wizard
	cursor int

	// Suggestion dialog
	modal     suggestModal
	modalOpen bool

	// Share and journal feedback
	sharing   bool
	status    string
	statusErr bool

	// Session counters
	saved       int
	completed   int
	suggestions int

	quitting bool
}

// New creates the wheel model.
func New(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.PickerColoring == nil {
		opts.PickerColoring = palette.Positional{}
	}
	if opts.SummaryColoring == nil {
		opts.SummaryColoring = palette.Ancestry{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	var styles ui.Styles
	if opts.Styles != nil {
		styles = *opts.Styles
	} else {
		styles = ui.DefaultStyles()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	h := help.New()
	h.Width = ui.DefaultWidth
	h.ShowAll = opts.Guidance == ux.DisclosureTutorial

	m := Model{
		opts:    opts,
		ctx:     opts.Context,
		styles:  styles,
		keys:    defaultKeyMap(),
		help:    h,
		spinner: sp,
		summary: viewport.New(ui.DefaultWidth, 20),
		layout:  ui.NewLayoutConfig(ui.DefaultWidth, 0),
		modal:   newSuggestModal(),
	}
	m.renderer = newRenderer(styles, m.layout.ContentWidth())
	m.syncKeys()
	return m
}

func newRenderer(styles ui.Styles, width int) *glamour.TermRenderer {
	style := "light"
	if styles.Theme.IsDark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logging.UIDebug("markdown renderer unavailable: %v", err)
		return nil
	}
	return r
}

// Init starts the taxonomy fetch.
func (m Model) Init() tea.Cmd {
	logging.UIDebug("wheel starting")
	return tea.Batch(m.spinner.Tick, loadTaxonomy(m.ctx, m.opts.Loader))
}

// State exposes the wizard snapshot, for callers that inspect the final
// model after the program exits.
func (m Model) State() (wizard.State, bool) {
	if m.wiz == nil {
		return wizard.State{}, false
	}
	return m.wiz.Snapshot(), true
}

// Saved is the number of journeys recorded this session.
func (m Model) Saved() int { return m.saved }

// Completed is the number of journeys concluded this session, recorded or
// not.
func (m Model) Completed() int { return m.completed }

// Suggestions is the number of suggestion requests sent this session.
func (m Model) Suggestions() int { return m.suggestions }

// syncKeys enables exactly the bindings that act in the current view.
func (m *Model) syncKeys() {
	ready := m.load == loadReady && m.wiz != nil && !m.modalOpen
	picking := ready && !m.wiz.IsComplete()
	concluded := ready && m.wiz.IsComplete()

	m.keys.Prev.SetEnabled(picking)
	m.keys.Next.SetEnabled(picking)
	m.keys.Toggle.SetEnabled(picking)
	m.keys.Advance.SetEnabled(picking && m.wiz.CanAdvance())
	m.keys.Back.SetEnabled(picking && m.wiz.CanRetreat())
	m.keys.NotSure.SetEnabled(picking && m.wiz.Stage() == wizard.StagePrimary && m.opts.Suggester != nil)
	m.keys.Share.SetEnabled(concluded && m.opts.Sharer != nil && !m.sharing)
	m.keys.Download.SetEnabled(concluded && m.opts.Download != nil && !m.sharing)
	m.keys.StartOver.SetEnabled(concluded)
	m.keys.Help.SetEnabled(!m.modalOpen)
	m.keys.Quit.SetEnabled(!m.modalOpen)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status, m.statusErr = text, isErr
}
