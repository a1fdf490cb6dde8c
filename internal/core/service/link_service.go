package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nickg-hm/tracking-links/internal/core/domain"
	"github.com/nickg-hm/tracking-links/internal/core/ports"
)

// LinkService orchestrates the two upstream lookups and runs the pure link
// resolution over the combined signals. Upstream failures short-circuit
// before resolution runs; they are never fed into the pipeline as zero-value
// signals.
type LinkService struct {
	orders   ports.OrderLookup
	tracking ports.TrackingProvider
	policy   domain.TemplatePolicy
	logger   zerolog.Logger
}

func NewLinkService(orders ports.OrderLookup, tracking ports.TrackingProvider, policy domain.TemplatePolicy, logger zerolog.Logger) *LinkService {
	return &LinkService{orders: orders, tracking: tracking, policy: policy, logger: logger}
}

// ResolveByOrderName looks an order up by its display name and resolves its
// tracking links. The leading "#" is added when the caller omitted it, so
// "121543" and "#121543" find the same order.
func (s *LinkService) ResolveByOrderName(ctx context.Context, orderName string) (*ports.LinksResult, error) {
	name := strings.TrimSpace(orderName)
	if !strings.HasPrefix(name, "#") {
		name = "#" + name
	}

	order, err := s.orders.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	signals, err := s.tracking.Signals(ctx, order.NumericID)
	if err != nil {
		return nil, err
	}
	signals.OrderTrackingNumber = order.TrackingNumber

	links, source := domain.ResolveLinks(signals, s.policy)

	s.logger.Info().
		Str("order_id", order.NumericID).
		Str("source", string(source)).
		Bool("has_primary", links.PrimaryLink != "").
		Msg("tracking links resolved")

	return &ports.LinksResult{
		OrderNumericID: order.NumericID,
		TrackingNumber: links.TrackingNumber,
		PrimaryLink:    links.PrimaryLink,
		SecondaryLink:  links.SecondaryLink,
		Source:         source,
	}, nil
}

// LookupByEmail returns the customer's recent orders newest first, each
// enriched with its universal search link when a tracking number exists.
func (s *LinkService) LookupByEmail(ctx context.Context, email string) (*ports.EmailLookupResult, error) {
	addr := strings.ToLower(strings.TrimSpace(email))

	orders, err := s.orders.ListByEmail(ctx, addr)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domain.ErrNoOrdersForEmail
	}

	result := &ports.EmailLookupResult{
		Email:  addr,
		Orders: make([]ports.EmailOrder, 0, len(orders)),
	}
	for _, o := range orders {
		result.Orders = append(result.Orders, ports.EmailOrder{
			OrderName:      o.Name,
			OrderNumericID: o.NumericID,
			TrackingNumber: o.TrackingNumber,
			CreatedAt:      o.CreatedAt,
			ParcelsLink:    domain.UniversalSearchURL(o.TrackingNumber),
		})
	}

	s.logger.Info().Int("orders", len(result.Orders)).Msg("email lookup completed")

	return result, nil
}
