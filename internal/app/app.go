package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carbonrobotics/arena-mcp-server/internal/arena"
	"github.com/carbonrobotics/arena-mcp-server/internal/config"
	"github.com/carbonrobotics/arena-mcp-server/internal/credentials"
	"github.com/carbonrobotics/arena-mcp-server/internal/server"
	"github.com/carbonrobotics/arena-mcp-server/internal/tools"
	"github.com/carbonrobotics/arena-mcp-server/internal/version"
)

// NewArenaClient builds the shared Arena API client.
func NewArenaClient(cfg config.Config, creds credentials.Credentials, logger *logrus.Entry) *arena.Client {
	return arena.NewClient(arena.Config{
		BaseURL:     cfg.BaseURL,
		Credentials: creds,
		Logger:      logger,
	})
}

// NewToolServer wires the Arena client into an MCP server with all catalog
// tools registered.
func NewToolServer(cfg config.Config, creds credentials.Credentials, logger *logrus.Entry) *tools.Server {
	return tools.NewServer(NewArenaClient(cfg, creds, logger), logger, version.Get().Version)
}

// RunHTTP starts the MCP server over streamable HTTP.
func RunHTTP(srv *tools.Server, cfg config.Config, logger *logrus.Entry) error {
	return server.RunHTTP(srv, cfg, logger)
}

// RunStdio starts the MCP server over stdin/stdout.
func RunStdio(ctx context.Context, srv *tools.Server, logger *logrus.Entry) error {
	return server.RunStdio(ctx, srv, logger)
}
