package tracking

import (
	"net/http"
	"strings"
	"time"

	"linkhub/internal/pkg/geoip"
	"linkhub/internal/pkg/parser"
)

const (
	KindClick = "click"
	KindView  = "view"
)

// Visitor is what the tracking endpoints learn about the caller.
type Visitor struct {
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
	Referrer  string `json:"referrer"`
	Country   string `json:"country,omitempty"`
	OS        string `json:"os"`
	Browser   string `json:"browser"`
}

type ClickEvent struct {
	ID        string    `json:"id"`
	LinkID    string    `json:"link_id"`
	UserID    string    `json:"user_id"`
	Visitor   Visitor   `json:"visitor"`
	ClickedAt time.Time `json:"clicked_at"`
}

type ViewEvent struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Visitor  Visitor   `json:"visitor"`
	ViewedAt time.Time `json:"viewed_at"`
}

// VisitorFromRequest prefers the first X-Forwarded-For hop, then X-Real-IP.
func VisitorFromRequest(r *http.Request, geo geoip.Resolver) Visitor {
	ua := r.Header.Get("User-Agent")
	os, browser := parser.ParseUserAgent(ua)

	v := Visitor{
		IP:        ClientIP(r),
		UserAgent: ua,
		Referrer:  r.Header.Get("Referer"),
		OS:        os,
		Browser:   browser,
	}
	if geo != nil {
		v.Country = geo.Country(r)
	}
	return v
}

func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if ip := strings.TrimSpace(strings.Split(fwd, ",")[0]); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return "unknown"
}
