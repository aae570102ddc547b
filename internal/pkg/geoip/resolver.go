package geoip

import (
	"net/http"
	"strings"
)

// Resolver maps a request to an ISO country code, or "" when unknown.
type Resolver interface {
	Country(r *http.Request) string
}

// HeaderResolver trusts the country header set by an edge proxy such as
// Cloudflare (CF-IPCountry).
type HeaderResolver struct {
	Header string
}

func NewHeaderResolver() *HeaderResolver {
	return &HeaderResolver{Header: "CF-IPCountry"}
}

func (h *HeaderResolver) Country(r *http.Request) string {
	code := strings.ToUpper(strings.TrimSpace(r.Header.Get(h.Header)))
	// XX and T1 are Cloudflare's unknown and Tor markers.
	if len(code) != 2 || code == "XX" || code == "T1" {
		return ""
	}
	return code
}
