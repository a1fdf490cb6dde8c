package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nickg-hm/tracking-links/internal/api/metrics"
	"github.com/nickg-hm/tracking-links/internal/core/domain"
	"github.com/nickg-hm/tracking-links/internal/core/ports"
)

// LinksHandler handles HTTP requests for tracking link resolution.
type LinksHandler struct {
	service ports.LinkService
}

func NewLinksHandler(service ports.LinkService) *LinksHandler {
	return &LinksHandler{service: service}
}

// Resolve handles POST /api/links.
//
// @Summary      Resolve tracking links for an order
// @Description  Looks the order up by name (or lists a customer's recent orders by email) and returns the best publicly-browsable carrier tracking URL plus a universal search fallback.
// @Tags         links
// @Accept       json
// @Produce      json
// @Param        body  body      linksRequest  true  "Order name (e.g. #121543) or customer email"
// @Success      200   {object}  linksResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/links [post]
func (h *LinksHandler) Resolve(c echo.Context) error {
	var req linksRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Email != "" {
		return h.lookupByEmail(c, req.Email)
	}
	return h.resolveByOrderName(c, req.OrderName)
}

func (h *LinksHandler) resolveByOrderName(c echo.Context, orderName string) error {
	result, err := h.service.ResolveByOrderName(c.Request().Context(), orderName)
	if err != nil {
		return err
	}

	metrics.LinksResolvedTotal.WithLabelValues(string(result.Source)).Inc()

	return c.JSON(http.StatusOK, linksResponse{
		OrderNumericID:   result.OrderNumericID,
		TrackingNumber:   nullable(result.TrackingNumber),
		CourierQueryLink: nullable(result.PrimaryLink),
		ParcelsLink:      nullable(result.SecondaryLink),
	})
}

func (h *LinksHandler) lookupByEmail(c echo.Context, email string) error {
	result, err := h.service.LookupByEmail(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrNoOrdersForEmail) {
			metrics.EmailLookupsTotal.WithLabelValues("empty").Inc()
			return c.JSON(http.StatusNotFound, emailNotFoundResponse{
				Error:  "no orders found for this email",
				Orders: []emailOrderResponse{},
			})
		}
		return err
	}

	metrics.EmailLookupsTotal.WithLabelValues("found").Inc()

	resp := emailLookupResponse{
		Email:  result.Email,
		Orders: make([]emailOrderResponse, 0, len(result.Orders)),
	}
	for _, o := range result.Orders {
		resp.Orders = append(resp.Orders, emailOrderResponse{
			OrderName:      o.OrderName,
			OrderNumericID: o.OrderNumericID,
			TrackingNumber: nullable(o.TrackingNumber),
			CreatedAt:      o.CreatedAt,
			ParcelsLink:    nullable(o.ParcelsLink),
		})
	}
	// Upstream returns orders newest first; the first entry is the latest.
	resp.LatestOrder = resp.Orders[0]

	return c.JSON(http.StatusOK, resp)
}
