package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whatfeeling/cmd/feel/ui"
	"whatfeeling/internal/journal"
)

var (
	journalLimit int
	journalJSON  bool
)

// journalCmd lists recorded journeys.
var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show recently completed journeys",
	Args:  cobra.NoArgs,
	RunE:  runJournal,
}

func init() {
	journalCmd.Flags().IntVarP(&journalLimit, "limit", "n", journal.DefaultListLimit, "Number of journeys to show")
	journalCmd.Flags().BoolVar(&journalJSON, "json", false, "Print journeys as JSON")
}

func runJournal(cmd *cobra.Command, args []string) error {
	ws, err := resolveWorkspace()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(ws)
	if err != nil {
		return err
	}
	if !cfg.Journal.Enabled {
		return errors.New("the journal is disabled (journal.enabled: false)")
	}

	store, err := openJournal(ws, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	journeys, err := store.List(cmd.Context(), journalLimit)
	if err != nil {
		return err
	}
	logger.Debug("Listed journeys", zap.String("db", store.Path()), zap.Int("count", len(journeys)))

	out := cmd.OutOrStdout()
	if journalJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if journeys == nil {
			journeys = []journal.Journey{}
		}
		return enc.Encode(journeys)
	}

	if len(journeys) == 0 {
		_, err := fmt.Fprintln(out, "No journeys yet. Run `feel` to start one.")
		return err
	}

	table := ui.NewSimpleTable("Recent journeys", []string{"When", "Primary", "Secondary", "Tertiary"})
	for _, j := range journeys {
		table.AddRow(
			j.CreatedAt.Local().Format("2006-01-02 15:04"),
			strings.Join(j.Primary, ", "),
			strings.Join(j.Secondary, ", "),
			strings.Join(j.Tertiary, ", "),
		)
	}
	if _, err := fmt.Fprint(out, table.View(cliStyles(cfg))); err != nil {
		return err
	}

	total, err := store.Count(cmd.Context())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Showing %d of %d journeys\n", len(journeys), total)
	return err
}
