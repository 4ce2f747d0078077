// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/report"
)

const (
	defaultWrap = 100

	styleAuto  = "auto"
	styleNoTTY = "notty"
)

var showCmd = &cobra.Command{
	Use:   "show [report.md]",
	Short: "Render a report in the terminal",
	Long: `Show renders a Markdown report with terminal styling. Without an argument it
shows the report for the configured category and today's date (or --date).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().String("date", "", "report date YYYY-MM-DD (default today)")
	showCmd.Flags().Int("width", defaultWrap, "word wrap width")
	showCmd.Flags().Bool("raw", false, "print the Markdown source without styling")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	path, err := showPath(cmd, args)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading report: %w", err)
	}

	raw, _ := cmd.Flags().GetBool("raw")
	if raw {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	width, _ := cmd.Flags().GetInt("width")
	w := cmd.OutOrStdout()
	out, err := renderMarkdown(string(data), width, styleFor(w))
	if err != nil {
		return err
	}
	fmt.Fprint(w, out)
	return nil
}

// styleFor picks terminal styling for a TTY and plain text otherwise.
func styleFor(w io.Writer) string {
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return styleAuto
	}
	return styleNoTTY
}

// showPath resolves the report to display: the explicit argument, or the
// dated report in the configured output directory.
func showPath(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	cfg, err := resolveConfig(conf, loadedSecrets)
	if err != nil {
		return "", err
	}
	dateFlag, _ := cmd.Flags().GetString("date")
	now, err := reportClock(dateFlag)
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg.OutputDir, report.FileName(cfg.Feed.Category, now())), nil
}

func renderMarkdown(md string, width int, style string) (string, error) {
	if width <= 0 {
		width = defaultWrap
	}
	opts := []glamour.TermRendererOption{
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	}
	if style == styleNoTTY {
		opts = append(opts, glamour.WithColorProfile(termenv.Ascii))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return out, nil
}
