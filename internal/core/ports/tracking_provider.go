package ports

import (
	"context"

	"github.com/nickg-hm/tracking-links/internal/core/domain"
)

// TrackingProvider fetches the multi-carrier aggregator's tracking data for
// one order and flattens it into resolution signals. Absent upstream fields
// become empty strings, never errors.
type TrackingProvider interface {
	Signals(ctx context.Context, orderNumericID string) (domain.TrackingSignals, error)
}
