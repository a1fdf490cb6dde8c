package ports

import (
	"context"

	"github.com/nickg-hm/tracking-links/internal/core/domain"
)

// LinksResult is the outcome of resolving one order's tracking links.
// Empty string fields mean "no value"; the handler serializes them as null.
type LinksResult struct {
	OrderNumericID string
	TrackingNumber string
	PrimaryLink    string
	SecondaryLink  string
	Source         domain.LinkSource
}

// EmailOrder is one entry in an email lookup, enriched with the universal
// search link when a tracking number exists.
type EmailOrder struct {
	OrderName      string
	OrderNumericID string
	TrackingNumber string
	CreatedAt      string
	ParcelsLink    string
}

// EmailLookupResult lists a customer's recent orders, newest first.
type EmailLookupResult struct {
	Email  string
	Orders []EmailOrder
}

// LinkService is the application surface consumed by the HTTP handlers.
type LinkService interface {
	ResolveByOrderName(ctx context.Context, orderName string) (*LinksResult, error)
	LookupByEmail(ctx context.Context, email string) (*EmailLookupResult, error)
}
