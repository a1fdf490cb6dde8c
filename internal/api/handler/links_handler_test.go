package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nickg-hm/tracking-links/internal/core/domain"
	"github.com/nickg-hm/tracking-links/internal/core/ports"
)

type stubLinkService struct {
	resolveFn func(ctx context.Context, orderName string) (*ports.LinksResult, error)
	lookupFn  func(ctx context.Context, email string) (*ports.EmailLookupResult, error)
}

func (s *stubLinkService) ResolveByOrderName(ctx context.Context, orderName string) (*ports.LinksResult, error) {
	return s.resolveFn(ctx, orderName)
}

func (s *stubLinkService) LookupByEmail(ctx context.Context, email string) (*ports.EmailLookupResult, error) {
	return s.lookupFn(ctx, email)
}

func newLinksContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/api/links", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestResolve_OrderNameSuccess(t *testing.T) {
	svc := &stubLinkService{
		resolveFn: func(_ context.Context, orderName string) (*ports.LinksResult, error) {
			if orderName != "121543" {
				t.Errorf("handler passed orderName %q", orderName)
			}
			return &ports.LinksResult{
				OrderNumericID: "6100987433",
				TrackingNumber: "612345678901",
				PrimaryLink:    "https://www.fedex.com/fedextrack/?trknbr=612345678901",
				SecondaryLink:  "https://parcelsapp.com/en/tracking/612345678901",
				Source:         domain.SourceCarrierTable,
			}, nil
		},
	}
	c, rec := newLinksContext(t, `{"orderName":"121543"}`)

	if err := NewLinksHandler(svc).Resolve(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["orderNumericId"] != "6100987433" {
		t.Errorf("orderNumericId = %v", resp["orderNumericId"])
	}
	if resp["trackingNumber"] != "612345678901" {
		t.Errorf("trackingNumber = %v", resp["trackingNumber"])
	}
	if resp["courierQueryLink"] != "https://www.fedex.com/fedextrack/?trknbr=612345678901" {
		t.Errorf("courierQueryLink = %v", resp["courierQueryLink"])
	}
	if resp["parcelsLink"] != "https://parcelsapp.com/en/tracking/612345678901" {
		t.Errorf("parcelsLink = %v", resp["parcelsLink"])
	}
}

func TestResolve_EmptyLinksSerializeAsNull(t *testing.T) {
	svc := &stubLinkService{
		resolveFn: func(_ context.Context, _ string) (*ports.LinksResult, error) {
			return &ports.LinksResult{OrderNumericID: "10", Source: domain.SourceNone}, nil
		},
	}
	c, rec := newLinksContext(t, `{"orderName":"121543"}`)

	if err := NewLinksHandler(svc).Resolve(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	for _, field := range []string{"trackingNumber", "courierQueryLink", "parcelsLink"} {
		if string(resp[field]) != "null" {
			t.Errorf("%s = %s, want null", field, resp[field])
		}
	}
}

func TestResolve_ValidationFailures(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"both fields", `{"orderName":"121543","email":"jane@example.com"}`},
		{"malformed email", `{"email":"not-an-email"}`},
		{"malformed json", `{"orderName":`},
	}
	svc := &stubLinkService{
		resolveFn: func(_ context.Context, _ string) (*ports.LinksResult, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
		lookupFn: func(_ context.Context, _ string) (*ports.EmailLookupResult, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newLinksContext(t, tc.body)
			err := NewLinksHandler(svc).Resolve(c)

			var he *echo.HTTPError
			if !errors.As(err, &he) {
				t.Fatalf("expected *echo.HTTPError, got %v", err)
			}
			if he.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", he.Code)
			}
		})
	}
}

func TestResolve_ServiceErrorsPassThrough(t *testing.T) {
	svc := &stubLinkService{
		resolveFn: func(_ context.Context, _ string) (*ports.LinksResult, error) {
			return nil, domain.ErrOrderNotFound
		},
	}
	c, _ := newLinksContext(t, `{"orderName":"404404"}`)

	err := NewLinksHandler(svc).Resolve(c)
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound to pass through, got %v", err)
	}
}

func TestResolve_EmailSuccess(t *testing.T) {
	svc := &stubLinkService{
		lookupFn: func(_ context.Context, email string) (*ports.EmailLookupResult, error) {
			if email != "jane@example.com" {
				t.Errorf("handler passed email %q", email)
			}
			return &ports.EmailLookupResult{
				Email: "jane@example.com",
				Orders: []ports.EmailOrder{
					{
						OrderName:      "#2",
						OrderNumericID: "20",
						TrackingNumber: "9400111899223197428490",
						CreatedAt:      "2026-08-20T10:00:00Z",
						ParcelsLink:    "https://parcelsapp.com/en/tracking/9400111899223197428490",
					},
					{OrderName: "#1", OrderNumericID: "10", CreatedAt: "2026-07-01T10:00:00Z"},
				},
			}, nil
		},
	}
	c, rec := newLinksContext(t, `{"email":"jane@example.com"}`)

	if err := NewLinksHandler(svc).Resolve(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Email  string `json:"email"`
		Orders []struct {
			OrderName   string  `json:"orderName"`
			ParcelsLink *string `json:"parcelsLink"`
		} `json:"orders"`
		LatestOrder struct {
			OrderName string `json:"orderName"`
		} `json:"latestOrder"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Orders) != 2 {
		t.Fatalf("orders = %d, want 2", len(resp.Orders))
	}
	if resp.LatestOrder.OrderName != "#2" {
		t.Errorf("latestOrder = %q, want newest order", resp.LatestOrder.OrderName)
	}
	if resp.Orders[1].ParcelsLink != nil {
		t.Errorf("expected null parcelsLink for untracked order, got %q", *resp.Orders[1].ParcelsLink)
	}
}

func TestResolve_EmailNotFound(t *testing.T) {
	svc := &stubLinkService{
		lookupFn: func(_ context.Context, _ string) (*ports.EmailLookupResult, error) {
			return nil, domain.ErrNoOrdersForEmail
		},
	}
	c, rec := newLinksContext(t, `{"email":"ghost@example.com"}`)

	if err := NewLinksHandler(svc).Resolve(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var resp struct {
		Error  string            `json:"error"`
		Orders []json.RawMessage `json:"orders"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected an error message")
	}
	if resp.Orders == nil || len(resp.Orders) != 0 {
		t.Errorf("expected empty orders array, got %v", resp.Orders)
	}
}
