// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past research conversations",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of conversations to show")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(cfg.History)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	convs, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	if mustBool(cmd, "json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(convs)
	}

	if len(convs) == 0 {
		fmt.Println("No conversations yet.")
		return nil
	}
	for _, c := range convs {
		fmt.Printf("%s  %-10s  %s\n", c.CreatedAt.Format("2006-01-02 15:04"), c.Intent, c.Query)
	}
	return nil
}
