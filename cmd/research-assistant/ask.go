// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/agent"
	"github.com/pdiddy/research-assistant/internal/config"
	"github.com/pdiddy/research-assistant/internal/history"
	"github.com/pdiddy/research-assistant/pkg/types"
)

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Run a full research query and print the report",
	Long: `Ask runs the complete pipeline: query analysis, multi-source search,
PDF visual extraction, LLM analysis, and synthesis. Step progress is
printed to stderr; the final Markdown report goes to stdout.

Requires OPENROUTER_API_KEY. The conversation is saved so short
follow-up questions ("tell me more") reuse recent context.`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().Bool("no-history", false, "do not read or write conversation history")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("query required: research-assistant ask \"your question\"")
	}
	query := strings.Join(args, " ")

	if err := config.Validate(cfg, true); err != nil {
		return err
	}

	var store *history.Store
	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		s, err := history.NewStore(cfg.History)
		if err != nil {
			return fmt.Errorf("opening history store: %w", err)
		}
		defer s.Close()
		store = s
	}

	a := agent.New(cfg, store, logger)

	var report string
	for ev := range a.Run(context.Background(), query) {
		if ev.Final {
			report = ev.Report
			continue
		}
		switch ev.Status {
		case types.StepRunning:
			fmt.Fprintf(os.Stderr, "-> %s\n", ev.Name)
		case types.StepCompleted:
			fmt.Fprintf(os.Stderr, "   %s (%dms)\n", ev.Detail, ev.ElapsedMS)
		case types.StepFailed:
			fmt.Fprintf(os.Stderr, "   failed: %s\n", ev.Detail)
		}
	}

	fmt.Println(report)
	return nil
}
