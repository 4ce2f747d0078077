// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest runs the fetch-and-report pipeline: it lists the newest
// papers of a category, skips those already in the ledger, translates the
// rest oldest first, and writes the dated report. Each item that completes
// is appended to the ledger immediately, so a failed or interrupted run
// never re-processes it.
package digest

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/arxiv-digest/internal/feed"
	"github.com/pdiddy/arxiv-digest/internal/ledger"
	"github.com/pdiddy/arxiv-digest/internal/pacer"
	"github.com/pdiddy/arxiv-digest/internal/report"
	"github.com/pdiddy/arxiv-digest/internal/translate"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// DefaultMaxChars is the abstract length ceiling applied before translation.
const DefaultMaxChars = 2000

var (
	// ErrIncompleteItem marks a feed item without an identifier or title.
	ErrIncompleteItem = errors.New("feed item is missing an identifier or title")

	// ErrDegradedTranslation marks an item rejected because a field fell
	// back to a placeholder while translation is required.
	ErrDegradedTranslation = errors.New("translation degraded to a placeholder")
)

// ItemStatus is the outcome of processing one feed item.
type ItemStatus int

const (
	// ItemProcessed means the item was rendered and recorded in the ledger.
	ItemProcessed ItemStatus = iota
	// ItemDegraded means the item was rendered and recorded, but at least
	// one field carries a placeholder translation.
	ItemDegraded
	// ItemFailed means the item was left out of the report and the ledger.
	ItemFailed
)

func (s ItemStatus) String() string {
	switch s {
	case ItemProcessed:
		return "processed"
	case ItemDegraded:
		return "degraded"
	case ItemFailed:
		return "failed"
	default:
		return fmt.Sprintf("item-status(%d)", int(s))
	}
}

// ItemResult records what happened to one feed item.
type ItemResult struct {
	ID     string
	Title  string
	Status ItemStatus
	Err    error
}

// Summary holds the counts and outcomes of a run.
type Summary struct {
	Fetched     int
	AlreadySeen int
	Processed   int
	Degraded    int
	Failed      int

	// NothingNew is set when every fetched item was already in the ledger.
	// No report is written in that case.
	NothingNew bool

	// ReportPath is the written report, empty when none was written.
	ReportPath string

	Results []ItemResult
}

// HasFailures reports whether any item failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Runner wires the pipeline's collaborators.
type Runner struct {
	Feed       feed.Source
	Translator translate.Translator
	Log        logrus.FieldLogger

	// Now returns the run date. Defaults to time.Now.
	Now func() time.Time
}

// Run executes one digest run with cfg.
//
// A feed error aborts before the ledger is touched. Failures of single
// items are recorded in the Summary and do not stop the batch. Ledger and
// report write errors abort the run. If ctx is cancelled mid-batch the
// ledger keeps the entries written so far and no report is written.
func (r *Runner) Run(ctx context.Context, cfg types.DigestConfig) (Summary, error) {
	log := r.logger()
	var summary Summary

	led, err := ledger.Open(cfg.LedgerFile)
	if err != nil {
		return summary, err
	}
	log.WithFields(logrus.Fields{"path": led.Path(), "count": led.Len()}).Debug("loaded ledger")

	log.WithFields(logrus.Fields{
		"category":    cfg.Feed.Category,
		"max_results": cfg.Feed.MaxResults,
	}).Info("fetching recent papers")

	items, err := r.Feed.Recent(ctx, cfg.Feed)
	if err != nil {
		return summary, fmt.Errorf("querying feed: %w", err)
	}
	summary.Fetched = len(items)

	pending := selectNew(items, led)
	summary.AlreadySeen = summary.Fetched - len(pending)

	if len(pending) == 0 {
		log.WithField("fetched", summary.Fetched).Info("no new papers")
		summary.NothingNew = true
		return summary, nil
	}

	slices.Reverse(pending)
	log.WithField("count", len(pending)).Info("found new papers")

	doc := report.New(cfg.Feed.Category, r.now(), report.LabelsFor(cfg.Translation.Target))
	pace := pacer.New(cfg.Translation.Pacing)

	for _, item := range pending {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		itemLog := log.WithField("id", item.ID)
		itemLog.WithField("title", item.Title).Info("processing paper")

		section, result := r.processItem(ctx, item, cfg.Translation, pace, itemLog)
		summary.Results = append(summary.Results, result)

		if result.Status == ItemFailed {
			summary.Failed++
			itemLog.WithError(result.Err).Error("paper skipped, will retry next run")
			if ctxErr := ctx.Err(); ctxErr != nil {
				return summary, ctxErr
			}
			continue
		}

		doc.Add(section)
		if err := led.Append(item.ID); err != nil {
			return summary, fmt.Errorf("recording %s in ledger: %w", item.ID, err)
		}

		summary.Processed++
		if result.Status == ItemDegraded {
			summary.Degraded++
		}
	}

	path, err := doc.Write(cfg.OutputDir)
	if err != nil {
		return summary, err
	}
	summary.ReportPath = path

	log.WithFields(logrus.Fields{
		"path":      path,
		"sections":  doc.Len(),
		"processed": summary.Processed,
		"degraded":  summary.Degraded,
		"failed":    summary.Failed,
	}).Info("report written")
	return summary, nil
}

// processItem translates and renders one item. It never returns an error;
// failures are carried in the ItemResult.
func (r *Runner) processItem(ctx context.Context, item types.FeedItem, cfg types.TranslationConfig, pace *pacer.Pacer, log logrus.FieldLogger) (report.Section, ItemResult) {
	result := ItemResult{ID: item.ID, Title: item.Title}
	fail := func(err error) (report.Section, ItemResult) {
		result.Status = ItemFailed
		result.Err = err
		return report.Section{}, result
	}

	if strings.TrimSpace(item.ID) == "" || strings.TrimSpace(item.Title) == "" {
		return fail(ErrIncompleteItem)
	}

	title, err := r.translate(ctx, pace, item.Title, cfg)
	if err != nil {
		return fail(fmt.Errorf("translating title: %w", err))
	}

	maxChars := cfg.MaxChars
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	abstract, err := r.translate(ctx, pace, NormalizeAbstract(item.Abstract, maxChars), cfg)
	if err != nil {
		return fail(fmt.Errorf("translating abstract: %w", err))
	}

	var degraded []error
	fields := []struct {
		name string
		res  translate.Result
	}{{"title", title}, {"abstract", abstract}}
	for _, f := range fields {
		if f.res.Degraded() {
			log.WithFields(logrus.Fields{"field": f.name, "status": f.res.Status.String()}).
				WithError(f.res.Err).Warn("using placeholder translation")
			degraded = append(degraded, fmt.Errorf("%s: %w", f.name, f.res.Err))
		}
	}

	if len(degraded) > 0 {
		if cfg.Require {
			return fail(fmt.Errorf("%w: %w", ErrDegradedTranslation, errors.Join(degraded...)))
		}
		result.Status = ItemDegraded
		result.Err = errors.Join(degraded...)
	}

	section := report.Section{Item: item, Title: title.Text, Abstract: abstract.Text}
	return section, result
}

// translate paces and resolves one translation call.
func (r *Runner) translate(ctx context.Context, pace *pacer.Pacer, text string, cfg types.TranslationConfig) (translate.Result, error) {
	if err := pace.Wait(ctx); err != nil {
		return translate.Result{}, err
	}
	return translate.Resolve(ctx, r.Translator, text, cfg.Source, cfg.Target)
}

func (r *Runner) logger() logrus.FieldLogger {
	if r.Log == nil {
		return logrus.StandardLogger()
	}
	return r.Log
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// NormalizeAbstract replaces line breaks with spaces and truncates the
// result to at most maxChars characters. A non-positive maxChars disables
// truncation.
func NormalizeAbstract(abstract string, maxChars int) string {
	s := strings.ReplaceAll(abstract, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	if maxChars <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}

// selectNew returns items whose identifiers are not in the ledger,
// preserving order and dropping repeated identifiers.
func selectNew(items []types.FeedItem, led *ledger.Ledger) []types.FeedItem {
	seen := make(map[string]struct{}, len(items))
	var pending []types.FeedItem
	for _, item := range items {
		if led.Contains(item.ID) {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		pending = append(pending, item)
	}
	return pending
}
