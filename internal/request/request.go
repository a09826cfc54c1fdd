package request

import (
	"net"
	"net/http"
	"strings"
)

// UnknownClient is the rate-limit key used when no client address can be derived.
const UnknownClient = "unknown"

// ClientIP derives the rate-limit client identifier for a request: the
// connection's source address, falling back to the first X-Forwarded-For hop,
// falling back to UnknownClient.
func ClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	return UnknownClient
}
