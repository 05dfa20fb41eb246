package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carbonrobotics/arena-mcp-server/internal/app"
	"github.com/carbonrobotics/arena-mcp-server/internal/config"
	"github.com/carbonrobotics/arena-mcp-server/internal/credentials"
	"github.com/carbonrobotics/arena-mcp-server/internal/logging"
	"github.com/carbonrobotics/arena-mcp-server/internal/tools"
	"github.com/carbonrobotics/arena-mcp-server/internal/version"
)

var callArgs string

var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Invoke a single tool from the command line",
	Long: `Invoke one of the registered tools directly, without an MCP client.
Arguments are passed as a JSON object. The output is exactly the text
an MCP client would receive, including the "Error: ..." form on
failure.

Examples:
  arena-mcp call search_items --args '{"name": "motor", "limit": 5}'
  arena-mcp call get_item_bom --args '{"guid": "ABC123DEF456"}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var toolArgs map[string]any
		if err := json.Unmarshal([]byte(callArgs), &toolArgs); err != nil {
			return fmt.Errorf("parse --args: %w", err)
		}

		cfg := config.Load()
		creds, _, err := credentials.Load("")
		if err != nil {
			return err
		}
		logger, cleanup, err := logging.New("arena-mcp-call", cfg.LogLevel)
		if err != nil {
			return err
		}
		defer cleanup()

		client := app.NewArenaClient(cfg, creds, logger)
		defer func() { _ = client.Logout(context.Background()) }()

		srv := tools.NewServer(client, logger, version.Get().Version)
		fmt.Println(srv.DispatchText(cmd.Context(), args[0], toolArgs))
		return nil
	},
}

func init() {
	callCmd.Flags().StringVar(&callArgs, "args", "{}", "tool arguments as a JSON object")
	rootCmd.AddCommand(callCmd)
}
