// Command feel is a terminal emotion wheel. Run without arguments it starts
// the interactive wizard; subcommands expose the taxonomy, the suggestion
// service and the local journal to scripts.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// Global flags
	verbose         bool
	workspace       string
	configPath      string
	baseURL         string
	taxonomyFile    string
	pickerColoring  string
	summaryColoring string
	themeName       string

	// Logger
	logger *zap.Logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "feel",
	Short: "Name what you feel, one ring of the emotion wheel at a time",
	Long: `feel walks you from a broad feeling to a specific one.

Pick one or more primary emotions, narrow them to secondary and then
tertiary emotions, and finish with a summary you can share as an image.

Run without arguments to start the interactive wheel.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The wheel logs to files; zap is for the one-shot commands.
		if cmd == cmd.Root() {
			return nil
		}

		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runInteractive,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the feel version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "feel %s\n", version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVarP(&workspace, "workspace", "w", "", "Directory holding .feel/ (default: your home directory)")
	pf.StringVar(&configPath, "config", "", "Config file (default: <workspace>/.feel/config.yaml)")
	pf.StringVar(&baseURL, "base-url", "", "Emotions service base URL")
	pf.StringVar(&taxonomyFile, "taxonomy", "", "Read the taxonomy from a JSON or YAML file instead of the service")
	pf.StringVar(&pickerColoring, "picker-coloring", "", "Coloring strategy for candidate chips (positional, ancestry)")
	pf.StringVar(&summaryColoring, "summary-coloring", "", "Coloring strategy for the summary (positional, ancestry)")
	pf.StringVar(&themeName, "theme", "", "Color theme (auto, light, dark)")

	rootCmd.AddCommand(
		listCmd,
		suggestCmd,
		journalCmd,
		configCmd,
		versionCmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
