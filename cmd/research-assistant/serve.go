// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/agent"
	"github.com/pdiddy/research-assistant/internal/config"
	"github.com/pdiddy/research-assistant/internal/history"
	"github.com/pdiddy/research-assistant/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI with live progress streaming",
	Long: `Serve starts an HTTP server with a small web UI. Queries stream their
pipeline progress over a WebSocket; /api/query offers a blocking JSON
variant and /api/history lists past conversations.

Requires OPENROUTER_API_KEY.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg, true); err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer store.Close()

	a := agent.New(cfg, store, logger)
	srv := server.New(a, store, cfg.Server, logger)
	return srv.Run()
}
