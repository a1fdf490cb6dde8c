package domain

import (
	"net/url"
	"regexp"
	"strings"
)

var httpSchemePattern = regexp.MustCompile(`(?i)^https?://`)

// IsRealLink reports whether a URL handed back by the aggregator is directly
// dereferenceable: an http(s) URL with no unresolved placeholder markers.
// Unrendered templates like "https://x/#{trackingNo}" must never reach the
// end user.
func IsRealLink(link string) bool {
	trimmed := strings.TrimSpace(link)
	if trimmed == "" {
		return false
	}
	if !httpSchemePattern.MatchString(trimmed) {
		return false
	}
	if strings.Contains(trimmed, "#{") || strings.Contains(trimmed, "${") {
		return false
	}
	if strings.Contains(strings.ToLower(trimmed), "{trackingno") {
		return false
	}
	return true
}

// placeholderAliases covers the token names aggregators use for the tracking
// number slot in templated query links.
const placeholderAliases = `tracking_number|trackingnumber|tracking_no|trackingno|tracking_num|trackingnum|tracking_id|trackingid|tracking_code|trackingcode|awb|waybill|consignment|parcel|parcel_id|parcelid`

// The same alias set across the three bracket styles seen in the wild.
// All three are applied so mixed-style templates fully resolve.
var placeholderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)#\{\s*(?:` + placeholderAliases + `)\s*\}`),
	regexp.MustCompile(`(?i)\$\{\s*(?:` + placeholderAliases + `)\s*\}`),
	regexp.MustCompile(`(?i)\{\s*(?:` + placeholderAliases + `)\s*\}`),
}

// ResolveTemplate substitutes the percent-encoded tracking number for every
// placeholder occurrence in rawURL. When either input is empty, rawURL is
// returned unchanged.
func ResolveTemplate(rawURL, trackingNumber string) string {
	if rawURL == "" || trackingNumber == "" {
		return rawURL
	}
	encoded := url.QueryEscape(trackingNumber)
	resolved := rawURL
	for _, pattern := range placeholderPatterns {
		resolved = pattern.ReplaceAllString(resolved, encoded)
	}
	return resolved
}
