package domain

import "net/url"

// universalSearchBase is the aggregator-agnostic search page used as the
// always-available secondary link.
const universalSearchBase = "https://parcelsapp.com/en/tracking/"

// UniversalSearchURL returns the universal parcel search page for a tracking
// number, or "" when the number is empty.
func UniversalSearchURL(trackingNumber string) string {
	if trackingNumber == "" {
		return ""
	}
	return universalSearchBase + url.QueryEscape(trackingNumber)
}

// ResolveLinks picks the single best publicly-browsable tracking URL for one
// shipment from the bag of signals the upstreams provided. It is pure and
// never fails: absent or malformed signals degrade to empty fields, because
// incomplete tracking data is the common case, not an exceptional one.
//
// The returned LinkSource names the producer that won, for observability.
func ResolveLinks(s TrackingSignals, policy TemplatePolicy) (ResolvedLinks, LinkSource) {
	// The order system's number is authoritative; the aggregator's last-mile
	// number beats its generic one.
	tn := firstNonEmpty(s.OrderTrackingNumber, s.LastMileTrackingNumber, s.TrackingNumber)

	effective := s
	effective.TrackingNumber = tn

	primary, source := resolvePrimary(effective, tn, policy)

	return ResolvedLinks{
		TrackingNumber: tn,
		PrimaryLink:    primary,
		SecondaryLink:  UniversalSearchURL(tn),
	}, source
}

// resolvePrimary walks the strict fallback chain; the first producer that
// yields a usable link wins.
func resolvePrimary(s TrackingSignals, tn string, policy TemplatePolicy) (string, LinkSource) {
	if u := BuildCarrierURL(s); u != "" {
		return u, SourceCarrierTable
	}

	if guess := GuessCarrier(tn); guess != "" {
		if u := CarrierURL(guess, tn); u != "" {
			return u, SourceShapeGuess
		}
	}

	if u := usableQueryLink(s.CourierQueryLink, tn, policy); u != "" {
		return u, SourceCourierQueryLink
	}
	if u := usableQueryLink(s.LastMileQueryLink, tn, policy); u != "" {
		return u, SourceLastMileQueryLink
	}

	if IsRealLink(s.BrandedTrackingLink) {
		return s.BrandedTrackingLink, SourceBrandedLink
	}
	if IsRealLink(s.CourierHomePage) {
		return s.CourierHomePage, SourceHomePage
	}
	return "", SourceNone
}

// usableQueryLink vets an aggregator query link. Under TemplateResolveFirst
// the placeholder-resolved form is preferred when it validates; the raw value
// is tried either way, so a link that was already real still passes.
func usableQueryLink(raw, tn string, policy TemplatePolicy) string {
	if raw == "" {
		return ""
	}
	if policy == TemplateResolveFirst {
		if resolved := ResolveTemplate(raw, tn); IsRealLink(resolved) {
			return resolved
		}
	}
	if IsRealLink(raw) {
		return raw
	}
	return ""
}
