package domain

import "testing"

func TestNormalizeCarrierKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"UPS!!", "ups"},
		{"ups", "ups"},
		{"United States Postal Service", "unitedstatespostalservice"},
		{"DHL-eCommerce (US)", "dhlecommerceus"},
		{"Postes Canada", "postescanada"},
		{"", ""},
		{"  YunExpress  ", "yunexpress"},
	}
	for _, tc := range cases {
		if got := NormalizeCarrierKey(tc.in); got != tc.want {
			t.Errorf("NormalizeCarrierKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeCarrierKey_Idempotent(t *testing.T) {
	inputs := []string{"UPS!!", "DHL eCommerce", "Postes Canada", "fedex-ground", "Aus Post 123"}
	for _, in := range inputs {
		once := NormalizeCarrierKey(in)
		twice := NormalizeCarrierKey(once)
		if once != twice {
			t.Errorf("normalization not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestBuildCarrierURL_NoTrackingNumber(t *testing.T) {
	signals := TrackingSignals{
		CourierCode: "usps",
		CourierName: "United States Postal Service",
	}
	if got := BuildCarrierURL(signals); got != "" {
		t.Errorf("expected no URL without a tracking number, got %q", got)
	}
}

func TestBuildCarrierURL_KnownCarriers(t *testing.T) {
	cases := []struct {
		name    string
		signals TrackingSignals
		want    string
	}{
		{
			"usps by code",
			TrackingSignals{CourierCode: "usps", TrackingNumber: "9400111899223197428490"},
			"https://tools.usps.com/go/TrackConfirmAction?qtc_tLabels1=9400111899223197428490",
		},
		{
			"usps by long name",
			TrackingSignals{CourierName: "United States Postal Service", TrackingNumber: "9400111899223197428490"},
			"https://tools.usps.com/go/TrackConfirmAction?qtc_tLabels1=9400111899223197428490",
		},
		{
			"ups exact code",
			TrackingSignals{CourierCode: "UPS", TrackingNumber: "1Z999AA10123456784"},
			"https://www.ups.com/track?loc=en_US&tracknum=1Z999AA10123456784",
		},
		{
			"fedex",
			TrackingSignals{CourierCode: "fedex", TrackingNumber: "612345678901"},
			"https://www.fedex.com/fedextrack/?trknbr=612345678901",
		},
		{
			"dhl express by bare code",
			TrackingSignals{CourierCode: "DHL", TrackingNumber: "1234567890"},
			"https://www.dhl.com/global-en/home/tracking/tracking-express.html?submit=1&tracking-id=1234567890",
		},
		{
			"dhl ecommerce",
			TrackingSignals{CourierCode: "dhl-ecommerce", TrackingNumber: "9261290100000000000000"},
			"https://www.dhl.com/us-en/home/tracking/tracking-ecommerce.html?tracking-id=9261290100000000000000",
		},
		{
			"canada post french name",
			TrackingSignals{CourierName: "Postes Canada", TrackingNumber: "1234567890123456"},
			"https://www.canadapost-postescanada.ca/track-reperage/en#/search?searchFor=1234567890123456",
		},
		{
			"royal mail",
			TrackingSignals{CourierCode: "royal-mail", TrackingNumber: "AB123456789GB"},
			"https://www.royalmail.com/track-your-item#/tracking-results/AB123456789GB",
		},
		{
			"australia post",
			TrackingSignals{CourierName: "Australia Post", TrackingNumber: "RR123456789AU"},
			"https://auspost.com.au/mypost/track/#/details/RR123456789AU",
		},
		{
			"yunexpress",
			TrackingSignals{CourierCode: "yunexpress", TrackingNumber: "YT2212345678901234"},
			"https://www.yuntrack.com/Track/Detail/YT2212345678901234",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildCarrierURL(tc.signals); got != tc.want {
				t.Errorf("BuildCarrierURL = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBuildCarrierURL_DHLExpressBeatsEcommerce(t *testing.T) {
	// A code matching the express rule wins even when the name would match
	// the ecommerce rule too; the table order is the tie-break.
	signals := TrackingSignals{
		CourierCode:    "dhl",
		CourierName:    "DHL eCommerce",
		TrackingNumber: "1234567890",
	}
	want := "https://www.dhl.com/global-en/home/tracking/tracking-express.html?submit=1&tracking-id=1234567890"
	if got := BuildCarrierURL(signals); got != want {
		t.Errorf("expected express URL, got %q", got)
	}
}

func TestBuildCarrierURL_LastMileTakesPriority(t *testing.T) {
	signals := TrackingSignals{
		CourierCode:            "yunexpress",
		LastMileProviderCode:   "usps",
		TrackingNumber:         "YT2212345678901234",
		LastMileTrackingNumber: "9400111899223197428490",
	}
	want := "https://tools.usps.com/go/TrackConfirmAction?qtc_tLabels1=9400111899223197428490"
	if got := BuildCarrierURL(signals); got != want {
		t.Errorf("expected last-mile carrier and number, got %q", got)
	}
}

func TestBuildCarrierURL_UnknownCarrier(t *testing.T) {
	signals := TrackingSignals{
		CourierCode:    "unknown-courier",
		CourierName:    "Some Regional Carrier",
		TrackingNumber: "ABC123",
	}
	if got := BuildCarrierURL(signals); got != "" {
		t.Errorf("expected no URL for unknown carrier, got %q", got)
	}
}

func TestBuildCarrierURL_EncodesTrackingNumber(t *testing.T) {
	signals := TrackingSignals{
		CourierCode:    "fedex",
		TrackingNumber: "61&2345",
	}
	want := "https://www.fedex.com/fedextrack/?trknbr=61%262345"
	if got := BuildCarrierURL(signals); got != want {
		t.Errorf("expected encoded number, got %q", got)
	}
}

func TestGuessCarrier(t *testing.T) {
	cases := []struct {
		in   string
		want Carrier
	}{
		{"9400111899223197428490", CarrierUSPS},
		{"9205511899223197428490", CarrierUSPS},
		{"  9405511206213186112345  ", CarrierUSPS},
		{"EC123456789US", CarrierUSPS},
		{"ec123456789us", CarrierUSPS}, // uppercased before matching
		{"RR123456789AU", CarrierAusPost},
		{"1Z999AA10123456784", ""},
		{"612345678901", ""},
		{"91001118992231", ""}, // wrong prefix
		{"", ""},
	}
	for _, tc := range cases {
		if got := GuessCarrier(tc.in); got != tc.want {
			t.Errorf("GuessCarrier(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCarrierURL_UnknownCarrier(t *testing.T) {
	if got := CarrierURL(Carrier("pigeon"), "123"); got != "" {
		t.Errorf("expected no URL for unknown carrier, got %q", got)
	}
	if got := CarrierURL(CarrierUSPS, ""); got != "" {
		t.Errorf("expected no URL for empty tracking number, got %q", got)
	}
}
