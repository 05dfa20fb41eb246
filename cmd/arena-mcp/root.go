package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/carbonrobotics/arena-mcp-server/internal/version"
)

var (
	flagHTTP      string
	flagTransport string
)

// rootCmd serves MCP when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "arena-mcp",
	Short: "MCP server exposing read-only Arena PLM catalog tools",
	Long: `arena-mcp serves Model Context Protocol tools backed by the Arena PLM
REST API. Conversational clients get eight read-only catalog tools:
item search, item details, BOMs, where-used, revisions, files,
sourcing, and categories. Every result renders as plain text carrying
the GUIDs needed for follow-up calls.

Configuration comes from the environment (or a .env file):
  ARENA_EMAIL / ARENA_PASSWORD   Arena account used for logins
  ARENA_WORKSPACE_ID             optional workspace selector
  ARENA_API_URL                  Arena endpoint override
  MCP_HOST / MCP_PORT            HTTP listen address (default 0.0.0.0:8080)
  MCP_TRANSPORT                  "http" or "stdio" (default http)
  MCP_AUTH_TOKEN                 bearer token for the HTTP endpoint
  MCP_AUTH_ALLOWLIST             comma-separated CIDRs allowed to connect
  DISABLE_AUTH                   "true" to skip auth (local development)
  MCP_LOG_LEVEL                  log verbosity (default info)`,
	Version: version.Get().String(),
	RunE:    runServe,
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&flagHTTP, "http", "", "listen address override, e.g. :8080")
	rootCmd.Flags().StringVar(&flagTransport, "transport", "", `transport override: "http" or "stdio"`)
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
