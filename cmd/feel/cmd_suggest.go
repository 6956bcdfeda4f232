package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// suggestCmd asks the suggestion service for an emotion.
var suggestCmd = &cobra.Command{
	Use:   "suggest [text]",
	Short: "Describe how you feel and get a suggested emotion",
	Long: `Sends the text to the suggestion service and prints the emotion it
suggests. The text is analyzed by a third-party AI service; do not include
private information.

Example:
  feel suggest "long day, everything went sideways"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

func runSuggest(cmd *cobra.Command, args []string) error {
	ws, err := resolveWorkspace()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(ws)
	if err != nil {
		return err
	}
	if !cfg.Suggest.Enabled {
		return errors.New("suggestions are disabled (suggest.enabled: false)")
	}

	text := strings.Join(args, " ")
	logger.Info("Requesting suggestion", zap.Int("chars", len(text)))

	result, err := newSuggestClient(cfg).Suggest(cmd.Context(), text)
	if err != nil {
		return err
	}
	logger.Debug("Suggestion received", zap.String("result", result))

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "You could be feeling %s\n", result)
	return err
}
