// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the catechism-press CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwhitmore/catechism-press/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API tokens loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if set, the stored secret for key otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the catechism-press CLI.
var rootCmd = &cobra.Command{
	Use:   "catechism-press",
	Short: "Pipeline for typesetting a scanned catechism as LaTeX",
	Long: `catechism-press turns a scanned early-modern catechism into a typeset
LaTeX publication. Each pipeline stage is a subcommand: extract rasterizes
the source PDF into page images, ocr transcribes them with a vision model,
compose splits the transcripts into question/answer records, generate
renders the records into the final LaTeX document, and catalog indexes
the records for full-text search during proofreading.

Stages communicate through the filesystem (pages/, text/, src/, output/),
so each can be run, inspected, and re-run independently.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
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
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./catechism-press.yaml or ~/.config/catechism-press/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("catechism-press")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "catechism-press"))
		}
	}

	viper.SetEnvPrefix("CATECHISM_PRESS")
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
