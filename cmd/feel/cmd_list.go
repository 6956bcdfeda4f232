package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whatfeeling/cmd/feel/ui"
	"whatfeeling/internal/emotion"
)

var listJSON bool

// listCmd prints the taxonomy.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the emotion taxonomy",
	Long: `Fetches the taxonomy the wheel would use and prints it as a tree.

With --json the output is the service wire format, so a saved copy can be
passed back with --taxonomy for offline use.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print the service wire format")
}

func runList(cmd *cobra.Command, args []string) error {
	ws, err := resolveWorkspace()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(ws)
	if err != nil {
		return err
	}

	logger.Debug("Loading taxonomy",
		zap.String("base_url", cfg.Service.BaseURL),
		zap.String("file", cfg.Service.TaxonomyFile))

	roots, err := newLoader(ws, cfg).Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("error fetching emotions: %w", err)
	}
	logger.Info("Taxonomy loaded", zap.Int("nodes", emotion.Count(roots)))

	out := cmd.OutOrStdout()
	if listJSON {
		data, err := emotion.MarshalTaxonomy(roots)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	styles := cliStyles(cfg)
	return printTree(out, styles, roots)
}

// printTree draws roots as an indented tree with a color swatch per node.
func printTree(w io.Writer, styles ui.Styles, roots []*emotion.Node) error {
	var sb strings.Builder
	for _, root := range roots {
		sb.WriteString(ui.Swatch(emotion.ColorValue(root.Color)))
		sb.WriteString(" ")
		sb.WriteString(styles.Bold.Render(root.Name))
		sb.WriteString(styles.Muted.Render(" (" + root.Color + ")"))
		sb.WriteString("\n")
		writeBranch(&sb, styles, root.Children, "")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeBranch(sb *strings.Builder, styles ui.Styles, nodes []*emotion.Node, prefix string) {
	for i, n := range nodes {
		last := i == len(nodes)-1
		branch, next := "├── ", "│   "
		if last {
			branch, next = "└── ", "    "
		}
		sb.WriteString(styles.Connector.Render(prefix + branch))
		sb.WriteString(n.Name)
		sb.WriteString("\n")
		writeBranch(sb, styles, n.Children, prefix+next)
	}
}
