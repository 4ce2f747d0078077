// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed retrieves the most recent submissions in an arXiv category.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed/atom"

	"github.com/pdiddy/arxiv-digest/internal/pacer"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// DefaultBaseURL is the arXiv API query endpoint.
const DefaultBaseURL = "https://export.arxiv.org/api/query"

const (
	defaultMaxResults = 50
	defaultPageSize   = 100
	absPrefix         = "arxiv.org/abs/"
	apiErrorMarker    = "arxiv.org/api/errors"
)

// Source lists recent feed items, newest first.
type Source interface {
	Recent(ctx context.Context, cfg types.FeedConfig) ([]types.FeedItem, error)
}

// ArxivClient queries the arXiv Atom API.
type ArxivClient struct {
	Client *http.Client

	// Pacer spaces out page requests. Nil means no pacing.
	Pacer *pacer.Pacer
}

// NewArxivClient builds a client with the timeout and page delay from cfg.
func NewArxivClient(cfg types.FeedConfig) *ArxivClient {
	return &ArxivClient{
		Client: &http.Client{Timeout: cfg.Timeout},
		Pacer:  pacer.New(cfg.PageDelay),
	}
}

// Recent returns up to cfg.MaxResults entries of cfg.Category sorted by
// submission date, newest first. Pages are requested until the cap is
// reached or the API returns a short page.
func (c *ArxivClient) Recent(ctx context.Context, cfg types.FeedConfig) ([]types.FeedItem, error) {
	if cfg.Category == "" {
		return nil, fmt.Errorf("empty arXiv category")
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	var items []types.FeedItem
	for start := 0; start < maxResults; {
		want := min(pageSize, maxResults-start)

		if err := c.Pacer.Wait(ctx); err != nil {
			return nil, err
		}
		page, err := c.fetchPage(ctx, cfg, start, want)
		if err != nil {
			return nil, fmt.Errorf("fetching entries %d-%d: %w", start, start+want, err)
		}
		if len(page) > want {
			page = page[:want]
		}
		items = append(items, page...)

		if len(page) < want {
			break
		}
		start += len(page)
	}
	return items, nil
}

func (c *ArxivClient) fetchPage(ctx context.Context, cfg types.FeedConfig, start, count int) ([]types.FeedItem, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	params := url.Values{}
	params.Set("search_query", cfg.Query())
	params.Set("start", strconv.Itoa(start))
	params.Set("max_results", strconv.Itoa(count))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	parser := &atom.Parser{}
	doc, err := parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	items := make([]types.FeedItem, 0, len(doc.Entries))
	for _, entry := range doc.Entries {
		if strings.Contains(entry.ID, apiErrorMarker) {
			return nil, fmt.Errorf("arXiv API error: %s", strings.TrimSpace(entry.Summary))
		}
		items = append(items, toFeedItem(entry))
	}
	return items, nil
}

func toFeedItem(entry *atom.Entry) types.FeedItem {
	item := types.FeedItem{
		ID:       ShortID(entry.ID),
		Title:    strings.Join(strings.Fields(entry.Title), " "),
		Abstract: strings.TrimSpace(entry.Summary),
		Link:     strings.TrimSpace(entry.ID),
	}

	for _, a := range entry.Authors {
		if a == nil {
			continue
		}
		if name := strings.TrimSpace(a.Name); name != "" {
			item.Authors = append(item.Authors, name)
		}
	}

	for _, l := range entry.Links {
		if l != nil && l.Title == "pdf" {
			item.PDFLink = l.Href
			break
		}
	}

	if entry.PublishedParsed != nil {
		item.Submitted = entry.PublishedParsed.UTC()
	}
	return item
}

// ShortID returns the part of an entry URI after "arxiv.org/abs/",
// keeping the version suffix
// (e.g. "http://arxiv.org/abs/2410.12345v1" → "2410.12345v1").
// URIs without that prefix are returned trimmed but otherwise unchanged.
func ShortID(entryID string) string {
	entryID = strings.TrimSpace(entryID)
	if idx := strings.LastIndex(entryID, absPrefix); idx >= 0 {
		return entryID[idx+len(absPrefix):]
	}
	return entryID
}
