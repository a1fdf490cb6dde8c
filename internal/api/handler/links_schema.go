package handler

// linksRequest is the body of POST /api/links. Exactly one of OrderName or
// Email must be provided.
type linksRequest struct {
	OrderName string `json:"orderName" validate:"required_without=Email,excluded_with=Email"`
	Email     string `json:"email"     validate:"required_without=OrderName,omitempty,email"`
}

// linksResponse preserves the wire format the widget already consumes:
// courierQueryLink carries the primary link and parcelsLink the universal
// search fallback. Absent values serialize as null.
type linksResponse struct {
	OrderNumericID   string  `json:"orderNumericId"`
	TrackingNumber   *string `json:"trackingNumber"`
	CourierQueryLink *string `json:"courierQueryLink"`
	ParcelsLink      *string `json:"parcelsLink"`
}

type emailOrderResponse struct {
	OrderName      string  `json:"orderName"`
	OrderNumericID string  `json:"orderNumericId"`
	TrackingNumber *string `json:"trackingNumber"`
	CreatedAt      string  `json:"createdAt"`
	ParcelsLink    *string `json:"parcelsLink"`
}

type emailLookupResponse struct {
	Email       string               `json:"email"`
	Orders      []emailOrderResponse `json:"orders"`
	LatestOrder emailOrderResponse   `json:"latestOrder"`
}

// emailNotFoundResponse keeps the empty orders array the widget expects on a
// miss.
type emailNotFoundResponse struct {
	Error  string               `json:"error"`
	Orders []emailOrderResponse `json:"orders"`
}

// nullable maps the empty string to JSON null.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
