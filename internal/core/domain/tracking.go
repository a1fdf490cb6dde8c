package domain

import (
	"errors"
	"fmt"
)

var ErrOrderNotFound = errors.New("order not found")
var ErrNoOrdersForEmail = errors.New("no orders found for this email")

// UpstreamError wraps a failure reported by one of the upstream systems.
// Payload carries the upstream response body verbatim so that callers can
// surface it for diagnosis.
type UpstreamError struct {
	Service string
	Status  int
	Payload string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s: status %d", e.Service, e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// TrackingSignals carries every tracking-related field the two upstream
// systems expose for one shipment. All fields are optional; the empty string
// means the upstream did not supply a value. A value is never mutated after
// construction and nothing here survives the request.
type TrackingSignals struct {
	// OrderTrackingNumber comes from the authoritative order record and is
	// trusted over any aggregator-supplied number.
	OrderTrackingNumber string

	CourierCode            string
	CourierName            string
	LastMileProviderCode   string
	LastMileProviderName   string
	TrackingNumber         string
	LastMileTrackingNumber string
	CourierQueryLink       string
	LastMileQueryLink      string
	BrandedTrackingLink    string
	CourierHomePage        string
}

// ResolvedLinks is the outcome of one resolution pass. PrimaryLink, when
// non-empty, always satisfies IsRealLink. SecondaryLink is the universal
// search URL and is non-empty exactly when TrackingNumber is.
type ResolvedLinks struct {
	TrackingNumber string
	PrimaryLink    string
	SecondaryLink  string
}

// LinkSource identifies which producer supplied the primary link.
type LinkSource string

const (
	SourceCarrierTable      LinkSource = "carrier_table"
	SourceShapeGuess        LinkSource = "shape_guess"
	SourceCourierQueryLink  LinkSource = "courier_query_link"
	SourceLastMileQueryLink LinkSource = "last_mile_query_link"
	SourceBrandedLink       LinkSource = "branded_link"
	SourceHomePage          LinkSource = "home_page"
	SourceNone              LinkSource = "none"
)

// TemplatePolicy selects how aggregator query links are treated: the two
// production deployments of this logic disagree on whether placeholder
// templates are resolved before validation, so the choice is a deployment
// parameter rather than hard-coded.
type TemplatePolicy string

const (
	// TemplateResolveFirst substitutes the tracking number into placeholder
	// templates and prefers the resolved link when it validates.
	TemplateResolveFirst TemplatePolicy = "resolve_first"
	// ValidateRawFirst only ever considers the link as delivered.
	ValidateRawFirst TemplatePolicy = "validate_raw_first"
)

// ParseTemplatePolicy maps a config string to a TemplatePolicy, defaulting
// to TemplateResolveFirst for empty or unrecognised values.
func ParseTemplatePolicy(s string) TemplatePolicy {
	if s == string(ValidateRawFirst) {
		return ValidateRawFirst
	}
	return TemplateResolveFirst
}

// Order is one order-system record, reduced to the fields link resolution
// needs. CreatedAt is passed through as reported by the upstream.
type Order struct {
	GID            string
	NumericID      string
	Name           string
	TrackingNumber string
	CreatedAt      string
}
