package remote

import (
	"net/http"
	"net/url"
	"strings"
)

func originFromRequest(r *http.Request) string {
	if origin := r.Header.Get("Origin"); origin != "" {
		return normalizeOrigin(origin)
	}

	if referer := r.Header.Get("Referer"); referer != "" {
		if u, err := url.Parse(referer); err == nil {
			return normalizeOrigin(u.Scheme + "://" + u.Host)
		}
	}

	return ""
}

func normalizeOrigin(origin string) string {
	origin = strings.ToLower(origin)
	origin = strings.TrimSuffix(origin, "/")
	return origin
}

func isLocalhost(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}

func allowedOrigins(origins []string) map[string]bool {
	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		if origin != "" {
			allowed[normalizeOrigin(origin)] = true
		}
	}
	return allowed
}

// checkOrigin accepts requests without an origin (non-browser clients),
// same-host and localhost pages, and the configured origins.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := originFromRequest(r)
	if origin == "" || isLocalhost(origin) || s.allowed[origin] {
		return true
	}
	if u, err := url.Parse(origin); err == nil && strings.EqualFold(u.Host, r.Host) {
		return true
	}
	s.logger.Warn("rejected websocket origin", "origin", origin)
	return false
}
