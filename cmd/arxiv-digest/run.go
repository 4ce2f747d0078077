// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/digest"
	"github.com/pdiddy/arxiv-digest/internal/feed"
	"github.com/pdiddy/arxiv-digest/internal/translate"
)

const dateLayout = "2006-01-02"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch new papers, translate them, and write today's report",
	Long: `Run queries arXiv for the most recent submissions in the configured category,
skips papers already listed in the ledger, translates each new title and
abstract, and writes <output-dir>/<category>_<date>.md. Each paper is appended
to the ledger as soon as it is rendered. Papers that fail are left out of the
ledger and retried on the next run. When nothing is new, no report is written.`,
	RunE: runDigest,
}

func init() {
	runCmd.Flags().String("category", "", "arXiv category to follow (default quant-ph)")
	runCmd.Flags().Int("max-results", 0, "maximum number of recent papers to fetch (default 50)")
	runCmd.Flags().String("output-dir", "", "directory for reports (default reports)")
	runCmd.Flags().String("ledger", "", "processed-ID ledger file (default processed_ids.txt)")
	runCmd.Flags().Bool("require-translation", false, "treat placeholder translations as failures so the paper is retried")
	runCmd.Flags().String("date", "", "report date YYYY-MM-DD (default today)")

	conf.BindPFlag("feed.category", runCmd.Flags().Lookup("category"))
	conf.BindPFlag("feed.max_results", runCmd.Flags().Lookup("max-results"))
	conf.BindPFlag("output.dir", runCmd.Flags().Lookup("output-dir"))
	conf.BindPFlag("ledger.file", runCmd.Flags().Lookup("ledger"))
	conf.BindPFlag("translation.require", runCmd.Flags().Lookup("require-translation"))

	rootCmd.AddCommand(runCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(conf, loadedSecrets)
	if err != nil {
		return err
	}

	dateFlag, _ := cmd.Flags().GetString("date")
	now, err := reportClock(dateFlag)
	if err != nil {
		return err
	}

	translator, err := translate.NewTencent(cfg.Translation)
	if err != nil {
		return err
	}
	if !cfg.Translation.HasCredentials() {
		logger.Warn("translation credentials not configured, titles and abstracts will carry placeholders")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := &digest.Runner{
		Feed:       feed.NewArxivClient(cfg.Feed),
		Translator: translator,
		Log:        logger,
		Now:        now,
	}

	summary, err := runner.Run(ctx, cfg)
	if err != nil {
		return err
	}
	logSummary(logger, summary)
	return nil
}

// logSummary reports the outcome of a run. Failed papers are not fatal;
// they are retried on the next run.
func logSummary(log logrus.FieldLogger, summary digest.Summary) {
	if summary.NothingNew {
		return
	}
	entry := log.WithFields(logrus.Fields{
		"fetched":      summary.Fetched,
		"already_seen": summary.AlreadySeen,
		"processed":    summary.Processed,
		"degraded":     summary.Degraded,
		"failed":       summary.Failed,
	})
	if summary.HasFailures() {
		entry.Warn("run complete with failures, failed papers will be retried")
		return
	}
	entry.Info("run complete")
}

// reportClock returns the clock used to date the report: time.Now, or a
// fixed date when value is set.
func reportClock(value string) (func() time.Time, error) {
	if value == "" {
		return time.Now, nil
	}
	d, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --date %q (want YYYY-MM-DD): %w", value, err)
	}
	return func() time.Time { return d }, nil
}
