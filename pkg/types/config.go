// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by clients that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FeedConfig holds settings for querying the arXiv listing.
type FeedConfig struct {
	HTTPConfig `yaml:",inline"`

	// Category is the arXiv category to follow (e.g. "quant-ph").
	Category string `json:"category" yaml:"category"`

	// MaxResults caps the number of most recent entries fetched per run (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// PageSize is the number of entries requested per API call (default 100).
	PageSize int `json:"page_size" yaml:"page_size"`

	// PageDelay is the pause between consecutive page requests (default 3s).
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`

	// BaseURL is the arXiv API query endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// Query returns the arXiv search_query value for the configured category.
func (c FeedConfig) Query() string {
	return "cat:" + c.Category
}

// TranslationConfig holds settings for the translation service.
type TranslationConfig struct {
	// Source and Target are language codes (e.g. "en" → "zh").
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`

	// Region and Endpoint locate the Tencent Machine Translation service.
	Region   string `json:"region" yaml:"region"`
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// ProjectID is the Tencent Cloud project the requests are billed to.
	ProjectID int64 `json:"project_id" yaml:"project_id"`

	// SecretID and SecretKey are the service credentials. Empty values
	// degrade every translation to a placeholder.
	SecretID  string `json:"-" yaml:"-"`
	SecretKey string `json:"-" yaml:"-"`

	// Pacing is the fixed interval between translation calls (default 500ms).
	Pacing time.Duration `json:"pacing" yaml:"pacing"`

	// MaxChars is the abstract length ceiling, in characters, applied
	// before translation (default 2000).
	MaxChars int `json:"max_chars" yaml:"max_chars"`

	// Require marks items with a placeholder translation as failed so
	// they are retried on the next run.
	Require bool `json:"require" yaml:"require"`
}

// HasCredentials reports whether both halves of the credential pair are set.
func (c TranslationConfig) HasCredentials() bool {
	return c.SecretID != "" && c.SecretKey != ""
}

// LogConfig controls the process logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`

	// Format is "text" or "json" (default text).
	Format string `json:"format" yaml:"format"`
}

// DigestConfig groups every run parameter. It is resolved once at process
// start and passed by value to the pipeline.
type DigestConfig struct {
	Feed        FeedConfig        `json:"feed" yaml:"feed"`
	Translation TranslationConfig `json:"translation" yaml:"translation"`
	Log         LogConfig         `json:"log" yaml:"log"`

	// OutputDir is the directory that receives the dated reports.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// LedgerFile is the path of the processed-ID ledger.
	LedgerFile string `json:"ledger_file" yaml:"ledger_file"`
}
