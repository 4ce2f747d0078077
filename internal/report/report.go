// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders the dated Markdown digest of newly processed papers.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const (
	dateLayout = "2006-01-02"
	blockSep   = "\n\n"
	divider    = "\n---\n"
)

// Labels holds the target-language strings used in a report.
type Labels struct {
	// Digest follows the date and category in the top-level heading.
	Digest string
	// Abstract heads the translated abstract.
	Abstract string
}

// LabelsFor returns the labels for a target language code.
func LabelsFor(target string) Labels {
	switch strings.ToLower(target) {
	case "zh", "zh-tw":
		return Labels{Digest: "论文速递", Abstract: "摘要"}
	default:
		return Labels{Digest: "Paper Digest", Abstract: "Translated Abstract"}
	}
}

// Section is one rendered paper: the feed item plus its translated fields.
type Section struct {
	Item     types.FeedItem
	Title    string
	Abstract string
}

// Builder accumulates sections for one run date. The zero value is not
// usable; call New.
type Builder struct {
	category string
	date     time.Time
	labels   Labels
	blocks   []string
	sections int
}

// New starts a report for category dated date.
func New(category string, date time.Time, labels Labels) *Builder {
	b := &Builder{category: category, date: date, labels: labels}
	b.blocks = append(b.blocks, fmt.Sprintf("# %s · %s %s\n", date.Format(dateLayout), category, labels.Digest))
	return b
}

// Add appends a rendered section. Sections appear in the order added.
func (b *Builder) Add(s Section) {
	b.blocks = append(b.blocks, renderSection(s, b.labels))
	b.sections++
}

// Len returns the number of sections added.
func (b *Builder) Len() int { return b.sections }

// FileName returns "<category>_<YYYY-MM-DD>.md".
func (b *Builder) FileName() string {
	return FileName(b.category, b.date)
}

// String renders the whole document.
func (b *Builder) String() string {
	return strings.Join(b.blocks, blockSep)
}

// Write renders the document into dir, creating dir if needed, and returns
// the file path. An existing report for the same date is replaced.
func (b *Builder) Write(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, b.FileName())

	tmp, err := os.CreateTemp(dir, ".report-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.WriteString(b.String())
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing report: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("setting report permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return path, nil
}

// FileName returns the report file name for category on date.
func FileName(category string, date time.Time) string {
	return fmt.Sprintf("%s_%s.md", category, date.Format(dateLayout))
}

func renderSection(s Section, labels Labels) string {
	submitted := ""
	if !s.Item.Submitted.IsZero() {
		submitted = s.Item.Submitted.Format(dateLayout)
	}

	lines := []string{
		"## " + s.Title,
		"**Original Title:** " + s.Item.Title,
		"**Authors:** " + strings.Join(s.Item.Authors, ", "),
		"**Link:** " + s.Item.Link,
		"**PDF:** " + s.Item.PDFLink,
		"**Submitted:** " + submitted,
		"\n### " + labels.Abstract,
		s.Abstract,
		"\n### Abstract",
		s.Item.Abstract,
		divider,
	}
	return strings.Join(lines, blockSep)
}
