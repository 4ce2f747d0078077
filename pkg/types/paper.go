// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-digest pipeline:
// the fetched FeedItem and the DigestConfig run parameters.
package types

import "time"

// FeedItem holds the metadata of one entry from the arXiv listing.
// Items are built by the feed client and never modified afterwards.
type FeedItem struct {
	// ID is the short form of the entry URI, version included (e.g. "2410.12345v1").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title with internal whitespace collapsed.
	Title string `json:"title" yaml:"title"`

	// Abstract is the summary as returned by the feed. It may contain line breaks.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Submitted is the submission timestamp of the first version.
	Submitted time.Time `json:"submitted" yaml:"submitted"`

	// Link is the canonical abstract page (the entry URI).
	Link string `json:"link" yaml:"link"`

	// PDFLink points to the PDF rendition.
	PDFLink string `json:"pdf_link" yaml:"pdf_link"`
}
