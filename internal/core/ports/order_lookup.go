package ports

import (
	"context"

	"github.com/nickg-hm/tracking-links/internal/core/domain"
)

// OrderLookup finds orders in the upstream order system.
type OrderLookup interface {
	// FindByName returns the single order matching an exact order name
	// (e.g. "#121543"), or domain.ErrOrderNotFound.
	FindByName(ctx context.Context, orderName string) (*domain.Order, error)

	// ListByEmail returns the customer's most recent orders, newest first.
	// An empty slice means the customer has no orders.
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
}
