// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the search-collector CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/search-collector/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// reportedError marks an error whose diagnostics the command already printed.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// rootCmd is the base command for the search-collector CLI.
var rootCmd = &cobra.Command{
	Use:   "search-collector",
	Short: "Collect ranked web search results for a query and location",
	Long: `search-collector pages through the Google Custom Search JSON API to collect
the top results for a query in a location, prints them, and saves them as a
JSON (or YAML) document. Runs can optionally be recorded in a SQLite history
database and re-rendered later.

Credentials come from GOOGLE_API_KEY and GOOGLE_SEARCH_ENGINE_ID, a .env file,
the config file, or .secrets/google-api-key and .secrets/google-search-engine-id.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(viper.GetString("log.level"))

		if loaded, err := secrets.LoadEnvFile(".env"); err != nil {
			return err
		} else if loaded {
			slog.Info("loaded environment from .env")
		}

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
			slog.Info("loaded secrets", "keys", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./search-collector.yaml or ~/.config/search-collector/config.yaml)")
	rootCmd.PersistentFlags().String("history", "", "SQLite run history database (empty disables history)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	viper.BindPFlag("history.db", rootCmd.PersistentFlags().Lookup("history"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("search-collector")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "search-collector"))
		}
	}

	configureViper(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// configureViper sets defaults and environment bindings on v.
func configureViper(v *viper.Viper) {
	setDefaults(v)

	v.SetEnvPrefix("SEARCH_COLLECTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("google.api_key", "GOOGLE_API_KEY")
	v.BindEnv("google.search_engine_id", "GOOGLE_SEARCH_ENGINE_ID")
}

// setupLogging installs a text slog handler on stderr at the named level.
// Unknown or empty levels fall back to warn.
func setupLogging(level string) {
	lvl := slog.LevelWarn
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			lvl = slog.LevelWarn
		}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var re reportedError
		if !errors.As(err, &re) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}
