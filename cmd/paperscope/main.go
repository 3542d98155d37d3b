// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paperscope CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperscope/internal/logging"
	"github.com/pdiddy/paperscope/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured in PersistentPreRunE before any subcommand runs.
var logger zerolog.Logger

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if set, then the secret value for key,
// then the empty string.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the paperscope CLI.
var rootCmd = &cobra.Command{
	Use:   "paperscope",
	Short: "Find PubMed papers with pharma and biotech company authors",
	Long: `paperscope searches PubMed for papers matching a query, classifies each
author affiliation as academic or non-academic, and writes a CSV report of
papers with at least the usual publication fields plus company-affiliated
authors, their companies, and a corresponding email.

Use fetch for the search-to-CSV pipeline and archive to browse runs saved
to the local archive database.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		level := viper.GetString("log.level")
		if debug {
			level = "debug"
		}
		logger = logging.New(logging.Config{
			Level:  level,
			Format: viper.GetString("log.format"),
		}, cmd.ErrOrStderr())

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug().Strs("keys", keys).Msg("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paperscope.yaml or ~/.config/paperscope/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paperscope")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paperscope"))
		}
	}

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")

	viper.SetEnvPrefix("PAPERSCOPE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
