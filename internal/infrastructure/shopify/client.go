// Package shopify implements the order lookup port against the Shopify Admin
// GraphQL API.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/nickg-hm/tracking-links/internal/api/metrics"
	"github.com/nickg-hm/tracking-links/internal/core/domain"
)

const (
	apiVersion     = "2024-07"
	defaultTimeout = 15 * time.Second

	// maxResponseSize bounds reads of upstream bodies (1MB).
	maxResponseSize = 1 << 20

	serviceLabel = "shopify"
)

// Config captures the credentials for one store.
type Config struct {
	// StoreDomain is the myshopify domain, e.g. "mystore.myshopify.com".
	StoreDomain string
	// AccessToken is the Admin API access token.
	AccessToken string
	Timeout     time.Duration
}

// Client implements ports.OrderLookup.
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

const orderByNameQuery = `query($search: String!) {
  orders(first: 1, query: $search) {
    edges {
      node {
        id
        name
        createdAt
        fulfillments {
          trackingInfo { number company url }
        }
      }
    }
  }
}`

const ordersByEmailQuery = `query($search: String!) {
  orders(first: 10, query: $search, sortKey: CREATED_AT, reverse: true) {
    edges {
      node {
        id
        name
        createdAt
        fulfillments {
          trackingInfo { number company url }
        }
      }
    }
  }
}`

// FindByName returns the single order matching the given display name.
func (c *Client) FindByName(ctx context.Context, orderName string) (*domain.Order, error) {
	orders, err := c.queryOrders(ctx, orderByNameQuery, "name:"+orderName)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return &orders[0], nil
}

// ListByEmail returns the customer's ten most recent orders, newest first.
func (c *Client) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	return c.queryOrders(ctx, ordersByEmailQuery, "email:"+email)
}

type graphQLRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type trackingInfoPayload struct {
	Number  string `json:"number"`
	Company string `json:"company"`
	URL     string `json:"url"`
}

type fulfillmentPayload struct {
	TrackingInfo []trackingInfoPayload `json:"trackingInfo"`
}

type orderNodePayload struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	CreatedAt    string               `json:"createdAt"`
	Fulfillments []fulfillmentPayload `json:"fulfillments"`
}

type graphQLResponse struct {
	Data struct {
		Orders struct {
			Edges []struct {
				Node orderNodePayload `json:"node"`
			} `json:"edges"`
		} `json:"orders"`
	} `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

func (c *Client) queryOrders(ctx context.Context, query, search string) ([]domain.Order, error) {
	payload, err := json.Marshal(graphQLRequest{
		Query:     query,
		Variables: map[string]string{"search": search},
	})
	if err != nil {
		return nil, fmt.Errorf("shopify: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s/admin/api/%s/graphql.json", c.cfg.StoreDomain, apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("shopify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.cfg.AccessToken)

	timer := prometheus.NewTimer(metrics.UpstreamRequestDuration.WithLabelValues(serviceLabel))
	resp, err := c.httpClient.Do(req)
	timer.ObserveDuration()
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(serviceLabel, "transport_error").Inc()
		return nil, &domain.UpstreamError{Service: serviceLabel, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(serviceLabel, "transport_error").Inc()
		return nil, &domain.UpstreamError{Service: serviceLabel, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequestsTotal.WithLabelValues(serviceLabel, "http_error").Inc()
		c.logger.Error().Int("status", resp.StatusCode).Msg("shopify request failed")
		return nil, &domain.UpstreamError{Service: serviceLabel, Status: resp.StatusCode, Payload: string(body)}
	}

	var gr graphQLResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(serviceLabel, "decode_error").Inc()
		return nil, &domain.UpstreamError{Service: serviceLabel, Status: resp.StatusCode, Payload: string(body), Err: err}
	}
	if len(gr.Errors) > 0 && string(gr.Errors) != "null" {
		metrics.UpstreamRequestsTotal.WithLabelValues(serviceLabel, "http_error").Inc()
		return nil, &domain.UpstreamError{Service: serviceLabel, Status: resp.StatusCode, Payload: string(gr.Errors)}
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(serviceLabel, "ok").Inc()

	orders := make([]domain.Order, 0, len(gr.Data.Orders.Edges))
	for _, edge := range gr.Data.Orders.Edges {
		orders = append(orders, mapOrder(edge.Node))
	}
	return orders, nil
}

// mapOrder flattens a GraphQL order node; the first tracking number of the
// first fulfillment is the one the order system displays to the customer.
func mapOrder(node orderNodePayload) domain.Order {
	order := domain.Order{
		GID:       node.ID,
		NumericID: domain.ExtractTrailingSegment(node.ID),
		Name:      node.Name,
		CreatedAt: node.CreatedAt,
	}
	if len(node.Fulfillments) > 0 && len(node.Fulfillments[0].TrackingInfo) > 0 {
		order.TrackingNumber = node.Fulfillments[0].TrackingInfo[0].Number
	}
	return order
}
