// Package track123 implements the tracking provider port against the
// Track123 Shopify API.
package track123

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/nickg-hm/tracking-links/internal/api/metrics"
	"github.com/nickg-hm/tracking-links/internal/core/domain"
)

const (
	baseURL        = "https://shp.track123.com/shopify/api/v1"
	defaultTimeout = 15 * time.Second

	// maxResponseSize bounds reads of upstream bodies (1MB).
	maxResponseSize = 1 << 20

	serviceLabel = "track123"
)

// Config captures the credentials for one Track123 account.
type Config struct {
	// UUID is the account's myshopify subdomain, e.g. "mystore".
	UUID    string
	APIKey  string
	Timeout time.Duration
}

// Client implements ports.TrackingProvider.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type courierPayload struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	QueryLink string `json:"query_link"`
	HomePage  string `json:"home_page"`
}

type lastMilePayload struct {
	TrackNo      string `json:"lm_track_no"`
	ProviderCode string `json:"lm_track_no_provider_code"`
	ProviderName string `json:"lm_track_no_provider_name"`
	QueryLink    string `json:"query_link"`
}

type fulfillmentPayload struct {
	TrackingNumber string           `json:"tracking_number"`
	CarrierCode    string           `json:"carrier_code"`
	Courier        *courierPayload  `json:"courier"`
	LastMileInfo   *lastMilePayload `json:"last_mile_info"`
}

type orderPayload struct {
	TrackingLink string               `json:"tracking_link"`
	Fulfillments []fulfillmentPayload `json:"fulfillments"`
}

type trackingResponse struct {
	Order *orderPayload `json:"order"`
}

// Signals fetches the aggregator record for one order and flattens its first
// fulfillment into resolution signals. Any field the aggregator omitted comes
// back as the empty string; the aggregator's data is too inconsistent to
// treat absence as an error.
func (c *Client) Signals(ctx context.Context, orderNumericID string) (domain.TrackingSignals, error) {
	endpoint := fmt.Sprintf("%s/%s/orders/%s.json",
		baseURL, url.PathEscape(c.cfg.UUID), url.PathEscape(orderNumericID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.TrackingSignals{}, fmt.Errorf("track123: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.cfg.APIKey)

	timer := prometheus.NewTimer(metrics.UpstreamRequestDuration.WithLabelValues(serviceLabel))
	resp, err := c.httpClient.Do(req)
	timer.ObserveDuration()
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(serviceLabel, "transport_error").Inc()
		return domain.TrackingSignals{}, &domain.UpstreamError{Service: serviceLabel, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(serviceLabel, "transport_error").Inc()
		return domain.TrackingSignals{}, &domain.UpstreamError{Service: serviceLabel, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequestsTotal.WithLabelValues(serviceLabel, "http_error").Inc()
		c.logger.Error().Int("status", resp.StatusCode).Str("order_id", orderNumericID).Msg("track123 request failed")
		return domain.TrackingSignals{}, &domain.UpstreamError{Service: serviceLabel, Status: resp.StatusCode, Payload: string(body)}
	}

	var tr trackingResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(serviceLabel, "decode_error").Inc()
		return domain.TrackingSignals{}, &domain.UpstreamError{Service: serviceLabel, Status: resp.StatusCode, Payload: string(body), Err: err}
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(serviceLabel, "ok").Inc()

	return flattenSignals(tr.Order), nil
}

// flattenSignals reduces the aggregator payload to the first fulfillment's
// signals. The courier code falls back to the fulfillment-level carrier code,
// and blank query links are dropped so the pipeline never validates
// whitespace.
func flattenSignals(order *orderPayload) domain.TrackingSignals {
	if order == nil {
		return domain.TrackingSignals{}
	}

	signals := domain.TrackingSignals{
		BrandedTrackingLink: order.TrackingLink,
	}
	if len(order.Fulfillments) == 0 {
		return signals
	}

	first := order.Fulfillments[0]
	signals.TrackingNumber = first.TrackingNumber
	signals.CourierCode = first.CarrierCode

	if c := first.Courier; c != nil {
		if c.Code != "" {
			signals.CourierCode = c.Code
		}
		signals.CourierName = c.Name
		signals.CourierQueryLink = strings.TrimSpace(c.QueryLink)
		signals.CourierHomePage = c.HomePage
	}
	if lm := first.LastMileInfo; lm != nil {
		signals.LastMileTrackingNumber = lm.TrackNo
		signals.LastMileProviderCode = lm.ProviderCode
		signals.LastMileProviderName = lm.ProviderName
		signals.LastMileQueryLink = lm.QueryLink
	}
	return signals
}
