package parser

import "strings"

type match struct {
	needle string
	name   string
}

// Order matters: Android UAs mention Linux and iOS UAs mention Mac OS X.
var osMatches = []match{
	{"android", "Android"},
	{"iphone", "iOS"},
	{"ipad", "iOS"},
	{"windows", "Windows"},
	{"mac os", "macOS"},
	{"cros", "ChromeOS"},
	{"linux", "Linux"},
}

// Edge and Opera UAs also carry "chrome"; Chrome UAs also carry "safari".
var browserMatches = []match{
	{"edg", "Edge"},
	{"opr/", "Opera"},
	{"firefox", "Firefox"},
	{"chrome", "Chrome"},
	{"crios", "Chrome"},
	{"safari", "Safari"},
}

func ParseUserAgent(ua string) (os, browser string) {
	uaLower := strings.ToLower(ua)
	return firstMatch(uaLower, osMatches), firstMatch(uaLower, browserMatches)
}

// DeviceType classifies a UA as mobile, tablet or desktop.
func DeviceType(ua string) string {
	uaLower := strings.ToLower(ua)
	if strings.Contains(uaLower, "ipad") || strings.Contains(uaLower, "tablet") {
		return "tablet"
	}
	if strings.Contains(uaLower, "mobile") || strings.Contains(uaLower, "android") || strings.Contains(uaLower, "iphone") {
		return "mobile"
	}
	return "desktop"
}

func firstMatch(ua string, matches []match) string {
	for _, m := range matches {
		if strings.Contains(ua, m.needle) {
			return m.name
		}
	}
	return "Unknown"
}
