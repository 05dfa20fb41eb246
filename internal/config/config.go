package config

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/carbonrobotics/arena-mcp-server/internal/arena"
)

// Transport names accepted by MCP_TRANSPORT.
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config captures server settings resolved from the environment. Values are
// read once at startup; a .env file loaded by the caller counts as
// environment.
type Config struct {
	Host          string // MCP_HOST
	Port          string // MCP_PORT
	Transport     string // MCP_TRANSPORT: "http" or "stdio"
	BaseURL       string // ARENA_API_URL
	DisableAuth   bool   // DISABLE_AUTH
	AuthToken     string // MCP_AUTH_TOKEN
	AuthAllowlist string // MCP_AUTH_ALLOWLIST, comma-separated CIDRs
	LogLevel      string // MCP_LOG_LEVEL
}

// Load reads the configuration from the environment, applying defaults.
func Load() Config {
	return Config{
		Host:          envOr("MCP_HOST", "0.0.0.0"),
		Port:          envOr("MCP_PORT", "8080"),
		Transport:     envOr("MCP_TRANSPORT", TransportHTTP),
		BaseURL:       envOr("ARENA_API_URL", arena.DefaultBaseURL),
		DisableAuth:   envBool("DISABLE_AUTH"),
		AuthToken:     envOr("MCP_AUTH_TOKEN", ""),
		AuthAllowlist: envOr("MCP_AUTH_ALLOWLIST", ""),
		LogLevel:      envOr("MCP_LOG_LEVEL", "info"),
	}
}

// Validate rejects combinations the server cannot start with.
func (c Config) Validate() error {
	switch c.Transport {
	case TransportHTTP, TransportStdio:
	default:
		return fmt.Errorf("unknown MCP_TRANSPORT %q (want %q or %q)", c.Transport, TransportHTTP, TransportStdio)
	}
	if c.Transport == TransportHTTP && !c.DisableAuth && c.AuthToken == "" {
		return fmt.Errorf("MCP_AUTH_TOKEN is required unless DISABLE_AUTH=true")
	}
	return nil
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Allowlist splits the configured CIDR list, dropping empty entries.
func (c Config) Allowlist() []string {
	var out []string
	for _, part := range strings.Split(c.AuthAllowlist, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes":
		return true
	}
	return false
}
