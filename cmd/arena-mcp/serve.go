package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/carbonrobotics/arena-mcp-server/internal/app"
	"github.com/carbonrobotics/arena-mcp-server/internal/config"
	"github.com/carbonrobotics/arena-mcp-server/internal/credentials"
	"github.com/carbonrobotics/arena-mcp-server/internal/logging"
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	applyServeFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	creds, source, err := credentials.Load("")
	if err != nil {
		return err
	}
	if !creds.Complete() {
		return fmt.Errorf("missing Arena credentials: set ARENA_EMAIL and ARENA_PASSWORD, or run `arena-mcp creds set`")
	}

	logger, cleanup, err := logging.New("arena-mcp", cfg.LogLevel)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Infof("starting arena-mcp (transport=%s, credentials from %s)", cfg.Transport, source)

	srv := app.NewToolServer(cfg, creds, logger)
	if cfg.Transport == config.TransportStdio {
		// No banner here: stdout belongs to the MCP framing.
		return app.RunStdio(cmd.Context(), srv, logger)
	}

	authStatus := "enabled"
	if cfg.DisableAuth {
		authStatus = "DISABLED"
	}
	fmt.Printf("Starting Arena MCP server on http://%s\n", cfg.Addr())
	fmt.Printf("Transport: %s, Auth: %s\n", cfg.Transport, authStatus)
	fmt.Printf("Arena account: %s\n", creds.Email)

	return app.RunHTTP(srv, cfg, logger)
}

// applyServeFlags lets command-line flags override what came from the
// environment, matching how operators expect precedence to work.
func applyServeFlags(cfg *config.Config) {
	if flagHTTP != "" {
		if host, port, err := net.SplitHostPort(flagHTTP); err == nil {
			if host != "" {
				cfg.Host = host
			}
			cfg.Port = port
		}
	}
	if flagTransport != "" {
		cfg.Transport = flagTransport
	}
}
