package models

import (
	"regexp"
	"strings"
)

// AnalyzeRequest is the payload for POST /api/v1/analyze.
type AnalyzeRequest struct {
	// URL is the page to analyze. Required. A bare host ("example.com")
	// is accepted and normalized to https.
	URL string `json:"url" binding:"required"`
}

// bareHost matches "host.tld" style URLs given without a scheme.
var bareHost = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?)+(:\d+)?(/.*)?$`)

// ValidateURL reports whether raw is a syntactically plausible target:
// either scheme+host or a bare host+TLD pattern.
func ValidateURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		rest := strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
		return bareHost.MatchString(rest)
	}
	return bareHost.MatchString(raw)
}
