package server

import (
	"context"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/carbonrobotics/arena-mcp-server/internal/config"
	"github.com/carbonrobotics/arena-mcp-server/internal/tools"
	"github.com/carbonrobotics/arena-mcp-server/internal/version"
)

// NewHandler assembles the HTTP surface: the streamable MCP endpoint at the
// root plus health and version probes. The probes skip auth so load
// balancers and monitors can reach them.
func NewHandler(srv *tools.Server, cfg config.Config, logger *logrus.Entry) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		RespondOK(w, http.StatusOK, version.Get())
	})

	var endpoint http.Handler = mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return srv.MCPServer()
	}, nil)
	if cfg.DisableAuth {
		logger.Warn("authentication is DISABLED; use only for local development")
	} else {
		endpoint = NewAuthMiddleware(cfg.AuthToken, cfg.AuthAllowlist)(endpoint)
	}
	mux.Handle("/", endpoint)
	return mux
}

// RunHTTP serves MCP over streamable HTTP until the listener fails.
func RunHTTP(srv *tools.Server, cfg config.Config, logger *logrus.Entry) error {
	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewHandler(srv, cfg, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Infof("MCP server listening on %s", cfg.Addr())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// RunStdio serves MCP over stdin/stdout until the client disconnects.
func RunStdio(ctx context.Context, srv *tools.Server, logger *logrus.Entry) error {
	logger.Info("MCP server on stdio")
	return srv.MCPServer().Run(ctx, &mcp.StdioTransport{})
}
