// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-digest/internal/digest"
	"github.com/pdiddy/arxiv-digest/internal/feed"
	"github.com/pdiddy/arxiv-digest/internal/secrets"
	"github.com/pdiddy/arxiv-digest/internal/translate"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const defaultUserAgent = "arxiv-digest/0.1"

// newViper returns a viper instance with every default set and
// ARXIV_DIGEST_* environment overrides enabled (e.g. ARXIV_DIGEST_FEED_CATEGORY).
func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("feed.category", "quant-ph")
	v.SetDefault("feed.max_results", 50)
	v.SetDefault("feed.page_size", 100)
	v.SetDefault("feed.page_delay", 3*time.Second)
	v.SetDefault("feed.base_url", feed.DefaultBaseURL)
	v.SetDefault("feed.timeout", 60*time.Second)
	v.SetDefault("feed.user_agent", defaultUserAgent)

	v.SetDefault("translation.source", "en")
	v.SetDefault("translation.target", "zh")
	v.SetDefault("translation.region", translate.DefaultRegion)
	v.SetDefault("translation.endpoint", translate.DefaultEndpoint)
	v.SetDefault("translation.project_id", 0)
	v.SetDefault("translation.pacing", 500*time.Millisecond)
	v.SetDefault("translation.max_chars", digest.DefaultMaxChars)
	v.SetDefault("translation.require", false)

	v.SetDefault("output.dir", "reports")
	v.SetDefault("ledger.file", "processed_ids.txt")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix("ARXIV_DIGEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func resolveLogConfig(v *viper.Viper) types.LogConfig {
	return types.LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
}

// resolveConfig builds the immutable run configuration from v and the
// loaded secrets, and validates it.
func resolveConfig(v *viper.Viper, s secrets.Store) (types.DigestConfig, error) {
	cfg := types.DigestConfig{
		Feed: types.FeedConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("feed.timeout"),
				UserAgent: v.GetString("feed.user_agent"),
			},
			Category:   strings.TrimSpace(v.GetString("feed.category")),
			MaxResults: v.GetInt("feed.max_results"),
			PageSize:   v.GetInt("feed.page_size"),
			PageDelay:  v.GetDuration("feed.page_delay"),
			BaseURL:    v.GetString("feed.base_url"),
		},
		Translation: types.TranslationConfig{
			Source:    v.GetString("translation.source"),
			Target:    v.GetString("translation.target"),
			Region:    v.GetString("translation.region"),
			Endpoint:  v.GetString("translation.endpoint"),
			ProjectID: v.GetInt64("translation.project_id"),
			SecretID:  s.Resolve(secrets.TencentSecretID, secrets.EnvTencentSecretID),
			SecretKey: s.Resolve(secrets.TencentSecretKey, secrets.EnvTencentSecretKey),
			Pacing:    v.GetDuration("translation.pacing"),
			MaxChars:  v.GetInt("translation.max_chars"),
			Require:   v.GetBool("translation.require"),
		},
		Log:        resolveLogConfig(v),
		OutputDir:  v.GetString("output.dir"),
		LedgerFile: v.GetString("ledger.file"),
	}

	switch {
	case cfg.Feed.Category == "":
		return cfg, fmt.Errorf("feed.category must not be empty")
	case cfg.Feed.MaxResults <= 0:
		return cfg, fmt.Errorf("feed.max_results must be positive, got %d", cfg.Feed.MaxResults)
	case cfg.Translation.MaxChars <= 0:
		return cfg, fmt.Errorf("translation.max_chars must be positive, got %d", cfg.Translation.MaxChars)
	case cfg.Translation.Source == "" || cfg.Translation.Target == "":
		return cfg, fmt.Errorf("translation.source and translation.target must be set")
	case cfg.OutputDir == "":
		return cfg, fmt.Errorf("output.dir must not be empty")
	case cfg.LedgerFile == "":
		return cfg, fmt.Errorf("ledger.file must not be empty")
	}
	return cfg, nil
}

// configView is the printable form of the configuration. Credentials are
// reported as present or missing, never printed.
type configView struct {
	types.DigestConfig `yaml:",inline"`
	Credentials        string `yaml:"credentials"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(conf, loadedSecrets)
		if err != nil {
			return err
		}
		view := configView{DigestConfig: cfg, Credentials: "missing"}
		if cfg.Translation.HasCredentials() {
			view.Credentials = "configured"
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
