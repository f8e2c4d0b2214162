// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pitch-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pitch-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "pitch-engine",
	Short: "Field extraction for startup pitch decks",
	Long: `pitch-engine scans startup pitch deck PDFs and extracts structured
investment fields: company name, funding sought, valuation, founders, and
market size. Extracted records are stored in a local SQLite database with
full-text search over companies and founders.

Each pipeline stage is a subcommand: scan extracts fields from PDFs,
store indexes the records, retrieve queries them, and export writes the
database to YAML, JSON, CSV, or XLSX.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pitch-engine.yaml or ~/.config/pitch-engine/config.yaml)")
	rootCmd.PersistentFlags().String("decks-dir", "decks", "base directory for decks (contains raw/, records/, index/)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pitch-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pitch-engine"))
		}
	}

	viper.SetEnvPrefix("PITCH_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setting resolves a string option: an explicitly set flag wins, then the
// config file or environment, then the flag default.
func setting(cmd *cobra.Command, flag, key string) string {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

func decksDir(cmd *cobra.Command) string {
	if !cmd.Flags().Changed("decks-dir") && viper.IsSet("decks_dir") {
		return viper.GetString("decks_dir")
	}
	v, _ := cmd.Flags().GetString("decks-dir")
	return v
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
