// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/config"
	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search academic sources for papers",
	Long: `Search queries the enabled academic sources, deduplicates near-identical
results across them, ranks by relevance to the query, and prints the top
results. No LLM key is needed.

Results can be saved to a YAML file with --save and reloaded later with
--load, which reformats without re-querying the APIs.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("max-results", 0, "maximum number of results (default from config)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("csl", false, "output results as CSL-YAML for citation managers")
	searchCmd.Flags().String("save", "", "save query and results to a YAML file")
	searchCmd.Flags().String("load", "", "load results from a previously saved YAML file")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	loadPath, _ := cmd.Flags().GetString("load")

	var out search.Output
	var query string

	if loadPath != "" {
		qf, err := search.ReadQueryFile(loadPath)
		if err != nil {
			return err
		}
		query = qf.Query
		out = qf.Output()
	} else {
		if len(args) == 0 {
			return fmt.Errorf("query required: research-assistant search \"your question\"")
		}
		query = strings.Join(args, " ")

		if err := config.Validate(cfg, false); err != nil {
			return err
		}
		if n, _ := cmd.Flags().GetInt("max-results"); n > 0 {
			cfg.Search.TotalLimit = n
		}

		client := httputil.NewClient(cfg.Search.Timeout)
		clients := search.NewClients(cfg.Search, client)

		var err error
		out, err = search.Aggregate(context.Background(), query, clients, cfg.Search, logger)
		if err != nil {
			return err
		}

		if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
			if err := search.WriteQueryFile(savePath, query, cfg.Search, out); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Saved results to %s\n", savePath)
		}
	}

	for _, ce := range out.ClientErrors {
		fmt.Fprintf(os.Stderr, "warning: %s\n", ce)
	}

	switch {
	case mustBool(cmd, "json"):
		return search.FormatJSON(out, os.Stdout)
	case mustBool(cmd, "csl"):
		return search.FormatCSL(out, os.Stdout)
	default:
		search.FormatTable(out, os.Stdout)
		return nil
	}
}

func mustBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}
