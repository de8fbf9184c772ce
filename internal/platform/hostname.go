package platform

import (
	"regexp"
	"strings"
)

var (
	schemePrefix   = regexp.MustCompile(`^(?i)https?://`)
	labelSanitizer = regexp.MustCompile(`[^a-z0-9-]`)
)

// NormalizeDomain lowercases a domain, strips an http/https scheme prefix,
// and cuts everything after the first slash.
func NormalizeDomain(value string) string {
	cleaned := strings.ToLower(strings.TrimSpace(value))
	cleaned = schemePrefix.ReplaceAllString(cleaned, "")
	if idx := strings.Index(cleaned, "/"); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	return cleaned
}

// NormalizeLabel lowercases a DNS label, converts spaces to hyphens, and
// drops every character outside [a-z0-9-].
func NormalizeLabel(value string) string {
	cleaned := strings.ToLower(strings.TrimSpace(value))
	cleaned = strings.ReplaceAll(cleaned, " ", "-")
	return labelSanitizer.ReplaceAllString(cleaned, "")
}

// JoinHost combines a label and a base domain into a hostname.
// An empty label means the apex.
func JoinHost(label, baseDomain string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return baseDomain
	}
	if baseDomain == "" {
		return label
	}
	return label + "." + baseDomain
}

// HostURL returns the https URL for a hostname, or "" for an empty host.
func HostURL(host string) string {
	if host == "" {
		return ""
	}
	return "https://" + host
}
