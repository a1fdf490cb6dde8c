package domain

import "strings"

// ExtractTrailingSegment returns the last segment of a slash-delimited opaque
// identifier (e.g. the numeric tail of "gid://shopify/Order/6100987433").
// Returns "" for empty input or a trailing slash. No validation is performed
// on the segment itself.
func ExtractTrailingSegment(compositeID string) string {
	if compositeID == "" {
		return ""
	}
	parts := strings.Split(compositeID, "/")
	return parts[len(parts)-1]
}
