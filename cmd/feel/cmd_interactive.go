package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"whatfeeling/cmd/feel/ui"
	"whatfeeling/cmd/feel/wheel"
	"whatfeeling/internal/config"
	"whatfeeling/internal/logging"
	"whatfeeling/internal/palette"
	"whatfeeling/internal/ux"
)

// runInteractive starts the wheel.
func runInteractive(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errors.New("the wheel needs an interactive terminal; try `feel list` or `feel suggest`")
	}

	ws, err := resolveWorkspace()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(ws)
	if err != nil {
		return err
	}

	if err := logging.Initialize(ws, cfg.Logging.Settings()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logging.CloseAll()
	logging.Boot("feel %s starting in %s", version, ws)
	if err := logging.InitAudit(); err != nil {
		logging.BootError("audit disabled: %v", err)
	}
	defer logging.CloseAudit()
	audit := logging.AuditWithSession(uuid.NewString())
	audit.SessionStart()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	picker, err := palette.ByName(cfg.UX.PickerColoring)
	if err != nil {
		return err
	}
	summary, err := palette.ByName(cfg.UX.SummaryColoring)
	if err != nil {
		return err
	}

	prefs := ux.NewManager(filepath.Join(ws, config.DirName))
	if err := prefs.Load(); err != nil {
		logging.BootError("preferences reset: %v", err)
	}
	prefs.RecordSession()
	guidance := prefs.Disclosure()
	if level, ok := ux.ParseDisclosure(cfg.UX.Guidance); ok {
		guidance = level
	}
	logging.Boot("user state %s, guidance %s", prefs.State(), guidance)

	styles := ui.NewStyles(ui.ThemeFor(cfg.UX.Theme))
	sharer, download := newSharers(ws, cfg)
	opts := wheel.Options{
		Context:         ctx,
		Loader:          newLoader(ws, cfg),
		Sharer:          sharer,
		Download:        download,
		PickerColoring:  picker,
		SummaryColoring: summary,
		Guidance:        guidance,
		Audit:           audit,
		Styles:          &styles,
	}
	if cfg.Suggest.Enabled {
		opts.Suggester = newSuggestClient(cfg)
	}
	if cfg.Journal.Enabled {
		store, err := openJournal(ws, cfg)
		if err != nil {
			// The wheel works without history.
			logging.JournalError("journal unavailable: %v", err)
		} else {
			defer store.Close()
			opts.Journal = store
		}
	}

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UX.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(wheel.New(opts), progOpts...).Run()
	cancel()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("wheel exited: %w", err)
	}

	if m, ok := final.(wheel.Model); ok {
		audit.SessionEnd(m.Completed())
		prefs.RecordJourneys(m.Completed())
		prefs.RecordSuggestions(m.Suggestions())
		if m.Saved() > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d journey(s) to your journal. Run `feel journal` to look back.\n", m.Saved())
		}
	}
	if err := prefs.Save(); err != nil {
		logging.BootError("preferences not saved: %v", err)
	}
	if logging.IsDebugMode() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Debug logs are in %s\n", filepath.Join(ws, config.DirName, "logs"))
	}
	logging.Boot("feel exiting")
	return nil
}
