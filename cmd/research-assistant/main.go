// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-assistant CLI.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/config"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg is the loaded configuration, available to all subcommands.
var cfg types.Config

// logger writes structured logs to stderr so stdout stays clean for
// command output.
var logger *slog.Logger

// rootCmd is the base command for the research-assistant CLI.
var rootCmd = &cobra.Command{
	Use:   "research-assistant",
	Short: "Multi-source academic research assistant",
	Long: `research-assistant searches academic sources (arXiv, Semantic Scholar,
CrossRef, and optionally Google Scholar via Serper.dev), deduplicates and
ranks the results, extracts tables and captions from paper PDFs, and uses
an LLM to synthesize a research report.

Use "search" for ranked results only, "ask" for a full analyzed report in
the terminal, or "serve" for the web UI with live progress streaming.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		level := slog.LevelInfo
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-assistant.yaml or ~/.config/research-assistant/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
