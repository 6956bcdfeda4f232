package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"whatfeeling/cmd/feel/ui"
	"whatfeeling/internal/config"
	"whatfeeling/internal/journal"
	"whatfeeling/internal/share"
	"whatfeeling/internal/suggest"
	"whatfeeling/internal/taxonomy"
)

// resolveWorkspace returns the --workspace flag or the user's home.
func resolveWorkspace() (string, error) {
	if workspace != "" {
		return workspace, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine workspace: %w", err)
	}
	return home, nil
}

func resolveConfigPath(ws string) string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath(ws)
}

// loadConfig reads the config file and layers flags on top of it.
func loadConfig(ws string) (*config.Config, error) {
	cfg, err := config.Load(resolveConfigPath(ws))
	if err != nil {
		return nil, err
	}

	if baseURL != "" {
		cfg.Service.BaseURL = baseURL
		cfg.Suggest.BaseURL = baseURL
	}
	if taxonomyFile != "" {
		cfg.Service.TaxonomyFile = taxonomyFile
	}
	if pickerColoring != "" {
		cfg.UX.PickerColoring = pickerColoring
	}
	if summaryColoring != "" {
		cfg.UX.SummaryColoring = summaryColoring
	}
	if themeName != "" {
		cfg.UX.Theme = themeName
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLoader(ws string, cfg *config.Config) *taxonomy.Loader {
	if cfg.Service.TaxonomyFile != "" {
		return taxonomy.NewLoader(taxonomy.FileSource{Path: config.Resolve(ws, cfg.Service.TaxonomyFile)})
	}
	return taxonomy.NewLoader(taxonomy.NewHTTPSource(cfg.Service.BaseURL, cfg.GetServiceTimeout()))
}

func newSuggestClient(cfg *config.Config) *suggest.Client {
	return suggest.NewClient(cfg.Suggest.BaseURL, cfg.GetSuggestTimeout())
}

// newSharers returns the share-key sharer and the save-key sharer.
func newSharers(ws string, cfg *config.Config) (share.Sharer, share.Sharer) {
	download := share.DownloadSharer{Dir: config.Resolve(ws, cfg.Share.DownloadDir)}
	if !cfg.Share.Clipboard {
		return download, download
	}
	return share.Fallback{Primary: share.ClipboardSharer{Dir: download.Dir}, Secondary: download}, download
}

func openJournal(ws string, cfg *config.Config) (*journal.Store, error) {
	return journal.NewStore(config.Resolve(ws, cfg.Journal.DatabasePath))
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// cliStyles styles one-shot output. Piped output gets the light theme
// without probing the terminal.
func cliStyles(cfg *config.Config) ui.Styles {
	if !isTerminal(os.Stdout) {
		return ui.NewStyles(ui.LightTheme())
	}
	return ui.NewStyles(ui.ThemeFor(cfg.UX.Theme))
}
