// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

var runDate = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

func sampleSection() Section {
	return Section{
		Item: types.FeedItem{
			ID:        "2410.12345v1",
			Title:     "Quantum Error Correction",
			Abstract:  "Line one.\nLine two.",
			Authors:   []string{"Alice", "Bob"},
			Submitted: time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC),
			Link:      "http://arxiv.org/abs/2410.12345v1",
			PDFLink:   "http://arxiv.org/pdf/2410.12345v1",
		},
		Title:    "量子纠错",
		Abstract: "第一行。第二行。",
	}
}

func TestLabelsFor(t *testing.T) {
	assert.Equal(t, "论文速递", LabelsFor("zh").Digest)
	assert.Equal(t, "摘要", LabelsFor("ZH").Abstract)
	assert.Equal(t, "Paper Digest", LabelsFor("fr").Digest)
}

func TestFileName(t *testing.T) {
	b := New("quant-ph", runDate, LabelsFor("zh"))
	assert.Equal(t, "quant-ph_2026-10-17.md", b.FileName())
	assert.Equal(t, "cs.AI_2026-01-02.md", FileName("cs.AI", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)))
}

func TestString_HeadingOnly(t *testing.T) {
	b := New("quant-ph", runDate, LabelsFor("zh"))
	assert.Equal(t, "# 2026-10-17 · quant-ph 论文速递\n", b.String())
	assert.Equal(t, 0, b.Len())
}

func TestString_Section(t *testing.T) {
	b := New("quant-ph", runDate, LabelsFor("zh"))
	b.Add(sampleSection())

	want := "# 2026-10-17 · quant-ph 论文速递\n" +
		"\n\n## 量子纠错" +
		"\n\n**Original Title:** Quantum Error Correction" +
		"\n\n**Authors:** Alice, Bob" +
		"\n\n**Link:** http://arxiv.org/abs/2410.12345v1" +
		"\n\n**PDF:** http://arxiv.org/pdf/2410.12345v1" +
		"\n\n**Submitted:** 2026-10-15" +
		"\n\n\n### 摘要" +
		"\n\n第一行。第二行。" +
		"\n\n\n### Abstract" +
		"\n\nLine one.\nLine two." +
		"\n\n\n---\n"
	assert.Equal(t, want, b.String())
	assert.Equal(t, 1, b.Len())
}

func TestString_SectionsInInsertionOrder(t *testing.T) {
	b := New("quant-ph", runDate, LabelsFor("en"))
	first := sampleSection()
	first.Title = "First"
	second := sampleSection()
	second.Title = "Second"
	b.Add(first)
	b.Add(second)

	out := b.String()
	assert.Less(t, strings.Index(out, "## First"), strings.Index(out, "## Second"))
	assert.Equal(t, 2, strings.Count(out, "\n---\n"))
	assert.Contains(t, out, "### Translated Abstract")
}

func TestString_ZeroSubmittedDate(t *testing.T) {
	b := New("quant-ph", runDate, LabelsFor("zh"))
	s := sampleSection()
	s.Item.Submitted = time.Time{}
	b.Add(s)

	assert.Contains(t, b.String(), "**Submitted:** \n")
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	b := New("quant-ph", runDate, LabelsFor("zh"))
	b.Add(sampleSection())

	path, err := b.Write(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "quant-ph_2026-10-17.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, b.String(), string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed away")
}

func TestWrite_ReplacesExistingReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quant-ph_2026-10-17.md")
	require.NoError(t, os.WriteFile(path, []byte("old content"), 0o644))

	b := New("quant-ph", runDate, LabelsFor("zh"))
	_, err := b.Write(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# 2026-10-17 · quant-ph 论文速递\n", string(data))
}

func TestWrite_UnwritableDirectory(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	b := New("quant-ph", runDate, LabelsFor("zh"))
	_, err := b.Write(filepath.Join(blocker, "reports"))
	assert.Error(t, err)
}
