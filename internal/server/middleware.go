package server

import (
	"net"
	"net/http"
	"strings"
)

// NewAuthMiddleware guards the MCP endpoint with a shared bearer token and a
// source-IP allowlist. Loopback callers skip the IP check but still need the
// token; malformed allowlist entries are ignored.
func NewAuthMiddleware(token, allowlist string) func(http.Handler) http.Handler {
	guard := &authMiddleware{token: token, allowed: parseAllowlist(allowlist)}
	return guard.wrap
}

type authMiddleware struct {
	token   string
	allowed []*net.IPNet
}

func (m *authMiddleware) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.token == "" {
			RespondError(w, http.StatusInternalServerError, "AUTH_TOKEN_MISSING", "auth token not configured")
			return
		}

		ip := parseRemoteIP(r.RemoteAddr)
		if !m.isAllowed(ip) {
			RespondError(w, http.StatusForbidden, "FORBIDDEN_IP", "request IP not allowed")
			return
		}

		const bearerPrefix = "Bearer "
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, bearerPrefix) {
			RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid bearer token")
			return
		}

		provided := strings.TrimSpace(strings.TrimPrefix(auth, bearerPrefix))
		if provided != m.token {
			RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid bearer token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *authMiddleware) isAllowed(ip net.IP) bool {
	if ip == nil {
		return false
	}

	if ip.IsLoopback() {
		return true
	}

	for _, network := range m.allowed {
		if network.Contains(ip) {
			return true
		}
	}

	return false
}

func parseRemoteIP(remoteAddr string) net.IP {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err == nil {
		return net.ParseIP(host)
	}

	return net.ParseIP(remoteAddr)
}

func parseAllowlist(raw string) []*net.IPNet {
	var networks []*net.IPNet

	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		_, network, err := net.ParseCIDR(entry)
		if err != nil {
			continue
		}
		networks = append(networks, network)
	}

	return networks
}
