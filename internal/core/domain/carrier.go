package domain

import (
	"net/url"
	"regexp"
	"strings"
)

// Carrier identifies a carrier the service knows a canonical tracking page
// for.
type Carrier string

const (
	CarrierUSPS         Carrier = "usps"
	CarrierUPS          Carrier = "ups"
	CarrierFedEx        Carrier = "fedex"
	CarrierDHLExpress   Carrier = "dhl_express"
	CarrierDHLEcommerce Carrier = "dhl_ecommerce"
	CarrierCanadaPost   Carrier = "canada_post"
	CarrierRoyalMail    Carrier = "royal_mail"
	CarrierAusPost      Carrier = "auspost"
	CarrierYunExpress   Carrier = "yunexpress"
)

// carrierTemplates maps each carrier to its tracking page; the percent-encoded
// tracking number is appended to the template.
var carrierTemplates = map[Carrier]string{
	CarrierUSPS:         "https://tools.usps.com/go/TrackConfirmAction?qtc_tLabels1=",
	CarrierUPS:          "https://www.ups.com/track?loc=en_US&tracknum=",
	CarrierFedEx:        "https://www.fedex.com/fedextrack/?trknbr=",
	CarrierDHLExpress:   "https://www.dhl.com/global-en/home/tracking/tracking-express.html?submit=1&tracking-id=",
	CarrierDHLEcommerce: "https://www.dhl.com/us-en/home/tracking/tracking-ecommerce.html?tracking-id=",
	CarrierCanadaPost:   "https://www.canadapost-postescanada.ca/track-reperage/en#/search?searchFor=",
	CarrierRoyalMail:    "https://www.royalmail.com/track-your-item#/tracking-results/",
	CarrierAusPost:      "https://auspost.com.au/mypost/track/#/details/",
	CarrierYunExpress:   "https://www.yuntrack.com/Track/Detail/",
}

// carrierRules is the ordered recognizer table. Carrier names can
// cross-contain each other (a DHL eCommerce name also loosely matches the
// DHL Express rule), so rules are evaluated top to bottom and the first match
// wins. The order is load-bearing; do not sort.
var carrierRules = []struct {
	carrier Carrier
	match   func(code, name string) bool
}{
	{CarrierUSPS, func(code, name string) bool {
		return strings.Contains(code, "usps") || strings.Contains(name, "usps") ||
			strings.Contains(name, "unitedstatespostalservice")
	}},
	{CarrierUPS, func(code, name string) bool {
		return code == "ups" || strings.Contains(name, "ups")
	}},
	{CarrierFedEx, func(code, name string) bool {
		return strings.Contains(code, "fedex") || strings.Contains(name, "fedex")
	}},
	{CarrierDHLExpress, func(code, name string) bool {
		return code == "dhl" || code == "dhlexpress" || strings.Contains(name, "dhlexpress")
	}},
	{CarrierDHLEcommerce, func(code, name string) bool {
		return strings.Contains(code, "dhlecommerce") || strings.Contains(name, "dhlecommerce")
	}},
	{CarrierCanadaPost, func(code, name string) bool {
		return strings.Contains(code, "canadapost") || strings.Contains(name, "canadapost") ||
			strings.Contains(name, "postescanada")
	}},
	{CarrierRoyalMail, func(code, name string) bool {
		return strings.Contains(code, "royalmail") || strings.Contains(name, "royalmail")
	}},
	{CarrierAusPost, func(code, name string) bool {
		return strings.Contains(code, "auspost") || strings.Contains(code, "australiapost") ||
			strings.Contains(name, "auspost") || strings.Contains(name, "australiapost")
	}},
	{CarrierYunExpress, func(code, name string) bool {
		return strings.Contains(code, "yunexpress") || strings.Contains(name, "yunexpress")
	}},
}

// NormalizeCarrierKey reduces a carrier code or name to a lowercase
// alphanumeric matching key. Idempotent: normalizing a normalized key is a
// no-op.
func NormalizeCarrierKey(v string) string {
	var b strings.Builder
	b.Grow(len(v))
	for _, r := range strings.ToLower(v) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CarrierURL returns the canonical tracking page for a known carrier, or ""
// when the carrier is unknown or the tracking number is empty.
func CarrierURL(c Carrier, trackingNumber string) string {
	if trackingNumber == "" {
		return ""
	}
	tmpl, ok := carrierTemplates[c]
	if !ok {
		return ""
	}
	return tmpl + url.QueryEscape(trackingNumber)
}

// BuildCarrierURL maps the carrier fields of one shipment to that carrier's
// canonical tracking page. Last-mile values take priority over the long-haul
// courier because the final-leg carrier is what customers track against.
// Returns "" when no tracking number is available or no rule matches.
func BuildCarrierURL(s TrackingSignals) string {
	code := NormalizeCarrierKey(firstNonEmpty(s.LastMileProviderCode, s.CourierCode))
	name := NormalizeCarrierKey(firstNonEmpty(s.LastMileProviderName, s.CourierName))

	tn := firstNonEmpty(s.LastMileTrackingNumber, s.TrackingNumber)
	if tn == "" {
		return ""
	}

	for _, rule := range carrierRules {
		if rule.match(code, name) {
			return CarrierURL(rule.carrier, tn)
		}
	}
	return ""
}

var (
	// USPS IMpb: 20-24 digits starting 92-95, or S10 ending US.
	uspsNumericPattern = regexp.MustCompile(`^(92|93|94|95)\d{18,22}$`)
	uspsS10Pattern     = regexp.MustCompile(`^[A-Z]{2}\d{9}US$`)
	// Australia Post S10.
	auspostS10Pattern = regexp.MustCompile(`^[A-Z]{2}\d{9}AU$`)
)

// GuessCarrier infers a carrier from the lexical shape of a tracking number.
// This is a deliberately narrow last-resort heuristic covering only the two
// shapes that are unambiguous in practice; everything else returns "".
func GuessCarrier(trackingNumber string) Carrier {
	tn := strings.ToUpper(strings.TrimSpace(trackingNumber))
	if tn == "" {
		return ""
	}
	if uspsNumericPattern.MatchString(tn) || uspsS10Pattern.MatchString(tn) {
		return CarrierUSPS
	}
	if auspostS10Pattern.MatchString(tn) {
		return CarrierAusPost
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
