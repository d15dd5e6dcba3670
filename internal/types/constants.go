package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// AllowedOrigins builds the origin allowlist shared by CORS and WebSocket
// upgrades: the local dev clients plus anything configured through
// CLIENT_URL or the comma-separated ALLOWED_ORIGINS.
func AllowedOrigins() []string {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}

// OriginAllowed reports whether origin may open a WebSocket connection.
func OriginAllowed(origin string) bool {
	for _, allowed := range AllowedOrigins() {
		if origin == allowed {
			return true
		}
	}
	return false
}
