package metadata

import (
	"net/http"
	"strings"

	"devicegate/pkg/requestcontext"
)

// countryHeader is set by the Cloudflare edge in front of this service.
const countryHeader = "CF-IPCountry"

// ClientMetadata extracts the caller IP and edge-resolved country from the
// request and adds them to the context for handlers and services.
// Apply early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = requestcontext.WithClientIP(ctx, ClientIPFromRequest(r))
		ctx = requestcontext.WithCountry(ctx, CountryFromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CountryFromRequest returns the 2-letter country code resolved by the edge,
// or empty when the header is absent or carries a Cloudflare placeholder.
func CountryFromRequest(r *http.Request) string {
	cc := strings.ToUpper(strings.TrimSpace(r.Header.Get(countryHeader)))
	// XX (unknown) and T1 (Tor) are placeholders, not ISO country codes.
	if len(cc) != 2 || cc == "XX" || cc == "T1" {
		return ""
	}
	return cc
}

// ClientIPFromRequest extracts the real client IP from the request, handling
// proxies and load balancers.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs (client, proxy1, proxy2, ...)
	// Take the first IP which is the original client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	// X-Real-IP is used by nginx and other proxies.
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fall back to RemoteAddr (direct connection), stripping the port.
	// IPv6 is in [::1]:port form, IPv4 in 127.0.0.1:port form.
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return strings.Trim(addr[:idx], "[]")
		}
		return addr
	}

	return ""
}
