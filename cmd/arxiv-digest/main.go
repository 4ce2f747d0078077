// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-digest CLI.
package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/internal/logging"
	"github.com/pdiddy/arxiv-digest/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// conf holds configuration from file, environment, and flags.
	conf = newViper()

	// loadedSecrets holds credentials loaded from .secrets/ at startup.
	loadedSecrets secrets.Store

	// logger is configured in PersistentPreRunE.
	logger = logrus.StandardLogger()
)

// rootCmd is the base command for the arxiv-digest CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-digest",
	Short: "Translated daily digest of new arXiv papers",
	Long: `arxiv-digest fetches the newest submissions in an arXiv category, translates
titles and abstracts through Tencent Machine Translation, and writes a dated
Markdown report. Papers already reported are recorded in a ledger file and are
never processed twice.

Credentials come from TENCENT_SECRET_ID and TENCENT_SECRET_KEY (a .env file in
the working directory is honored) or from .secrets/tencent-secret-id and
.secrets/tencent-secret-key. Without credentials translations are replaced by
placeholders and the run still completes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is loaded first so its log settings reach the logger.
		envErr := loadDotEnv()

		l, err := logging.New(resolveLogConfig(conf), os.Stdout)
		if err != nil {
			return err
		}
		logger = l
		if envErr != nil {
			logger.WithError(envErr).Warn("could not load .env file")
		}
		if used := conf.ConfigFileUsed(); used != "" {
			logger.WithField("path", used).Debug("using config file")
		}

		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.WithField("keys", s.Keys()).Debug("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-digest.yaml or ~/.config/arxiv-digest/arxiv-digest.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")

	conf.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	conf.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		conf.SetConfigFile(cfgFile)
	} else {
		conf.SetConfigName("arxiv-digest")
		conf.SetConfigType("yaml")
		conf.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			conf.AddConfigPath(filepath.Join(home, ".config", "arxiv-digest"))
		}
	}

	if err := conf.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			logger.WithError(err).Warn("could not read config file")
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.WithError(err).Error("arxiv-digest failed")
		os.Exit(1)
	}
}

// loadDotEnv loads .env from the working directory. A missing file is not
// an error.
func loadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
