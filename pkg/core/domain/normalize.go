package domain

import "strings"

const (
	HandleMinLen = 3
	HandleMaxLen = 30
)

// NormalizeURL prepends https:// when the URL has no http(s) scheme.
// Reachability and host syntax are never checked.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	lower := strings.ToLower(u)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return u
	}
	return "https://" + u
}

// NormalizeHandle lowercases and trims a handle for storage and lookup.
func NormalizeHandle(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ValidHandle reports whether h (already normalized) is an acceptable handle.
func ValidHandle(h string) bool {
	if len(h) < HandleMinLen || len(h) > HandleMaxLen {
		return false
	}
	for _, r := range h {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// HandleFromDisplayName derives a signup handle: lowercase with everything but [a-z0-9] removed.
func HandleFromDisplayName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	h := b.String()
	if len(h) > HandleMaxLen {
		h = h[:HandleMaxLen]
	}
	return h
}
