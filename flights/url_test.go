package flights

import (
	"bytes"
	"encoding/base64"
	"net/url"
	"strings"
	"testing"

	"github.com/go-test/deep"
)

func intPtr(v int) *int { return &v }

func oneWayLAXNRT() SearchRequest {
	return SearchRequest{
		Legs: []FlightLeg{
			{Date: "2026-03-01", FromAirport: "LAX", ToAirport: "NRT"},
		},
		Passengers: DefaultPassengers(),
		Class:      Economy,
		Trip:       OneWay,
	}
}

func tfsToken(t *testing.T, req SearchRequest) string {
	t.Helper()
	params := req.URLParams()
	if len(params) == 0 || params[0].Key != "tfs" {
		t.Fatalf("expected tfs as first param, got %v", params)
	}
	return params[0].Value
}

func TestEncodeOneWayEconomy(t *testing.T) {
	got := tfsToken(t, oneWayLAXNRT())
	want := "GhoSCjIwMjYtMDMtMDFqBRIDTEFYcgUSA05SVEIBAUgBmAEC"
	if got != want {
		t.Fatalf("tfs = %q, want %q", got, want)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	req := oneWayLAXNRT()
	req.Legs = append(req.Legs, FlightLeg{Date: "2026-03-10", FromAirport: "NRT", ToAirport: "LAX"})
	req.Trip = RoundTrip

	got := tfsToken(t, req)
	want := "GhoSCjIwMjYtMDMtMDFqBRIDTEFYcgUSA05SVBoaEgoyMDI2LTAzLTEwagUSA05SVHIFEgNMQVhCAQFIAZgBAQ=="
	if got != want {
		t.Fatalf("tfs = %q, want %q", got, want)
	}
}

// Adding a return leg must leave the first leg's bytes untouched: the second
// leg is appended as another field-3 submessage and only the trailing
// trip-type varint changes.
func TestRoundTripPreservesFirstLegBytes(t *testing.T) {
	oneWay := encode(oneWayLAXNRT())

	req := oneWayLAXNRT()
	req.Legs = append(req.Legs, FlightLeg{Date: "2026-03-10", FromAirport: "NRT", ToAirport: "LAX"})
	req.Trip = RoundTrip
	roundTrip := encode(req)

	// First leg submessage: 2 bytes of tag+length plus 26 payload bytes.
	const firstLeg = 28
	if !bytes.Equal(oneWay[:firstLeg], roundTrip[:firstLeg]) {
		t.Fatalf("first leg bytes changed:\none-way    %x\nround-trip %x", oneWay[:firstLeg], roundTrip[:firstLeg])
	}
	if !bytes.HasSuffix(oneWay, []byte{0x98, 0x01, 0x02}) {
		t.Errorf("one-way should end with trip type 2, got %x", oneWay)
	}
	if !bytes.HasSuffix(roundTrip, []byte{0x98, 0x01, 0x01}) {
		t.Errorf("round-trip should end with trip type 1, got %x", roundTrip)
	}
}

func TestEncodeMultiplePassengers(t *testing.T) {
	req := SearchRequest{
		Legs: []FlightLeg{
			{Date: "2026-03-01", FromAirport: "HEL", ToAirport: "BCN"},
		},
		Passengers: Passengers{Adults: 2, Children: 1, InfantsInSeat: 1},
		Class:      Economy,
		Trip:       OneWay,
	}

	got := tfsToken(t, req)
	want := "GhoSCjIwMjYtMDMtMDFqBRIDSEVMcgUSA0JDTkIEAQECA0gBmAEC"
	if got != want {
		t.Fatalf("tfs = %q, want %q", got, want)
	}
}

func TestEncodeMaxStops(t *testing.T) {
	req := SearchRequest{
		Legs: []FlightLeg{
			{Date: "2026-03-01", FromAirport: "HEL", ToAirport: "BKK", MaxStops: intPtr(1)},
		},
		Passengers: DefaultPassengers(),
		Class:      Business,
		Trip:       OneWay,
	}

	got := tfsToken(t, req)
	want := "GhwSCjIwMjYtMDMtMDEoAWoFEgNIRUxyBRIDQktLQgEBSAOYAQI="
	if got != want {
		t.Fatalf("tfs = %q, want %q", got, want)
	}
}

func TestEncodeAirlineFilter(t *testing.T) {
	req := SearchRequest{
		Legs: []FlightLeg{
			{Date: "2026-03-01", FromAirport: "HEL", ToAirport: "BCN", Airlines: []string{"AY", "IB"}},
		},
		Passengers: DefaultPassengers(),
		Class:      Economy,
		Trip:       OneWay,
	}

	got := tfsToken(t, req)
	want := "GiISCjIwMjYtMDMtMDEyAkFZMgJJQmoFEgNIRUxyBRIDQkNOQgEBSAGYAQI="
	if got != want {
		t.Fatalf("tfs = %q, want %q", got, want)
	}
}

func TestEncodeMultiCity(t *testing.T) {
	req := SearchRequest{
		Legs: []FlightLeg{
			{Date: "2026-03-01", FromAirport: "LAX", ToAirport: "NRT"},
			{Date: "2026-03-05", FromAirport: "NRT", ToAirport: "ICN"},
			{Date: "2026-03-10", FromAirport: "ICN", ToAirport: "LAX"},
		},
		Passengers: Passengers{Adults: 2},
		Class:      PremiumEconomy,
		Trip:       MultiCity,
	}

	got := tfsToken(t, req)
	want := "GhoSCjIwMjYtMDMtMDFqBRIDTEFYcgUSA05SVBoaEgoyMDI2LTAzLTA1agUSA05SVHIFEgNJQ04aGhIKMjAyNi0wMy0xMGoFEgNJQ05yBRIDTEFYQgIBAUgCmAED"
	if got != want {
		t.Fatalf("tfs = %q, want %q", got, want)
	}
}

func TestPassengerCodeExpansion(t *testing.T) {
	got := passengerCodes(Passengers{Adults: 2, Children: 1, InfantsInSeat: 1})
	want := []uint64{1, 1, 2, 3}
	if diff := deep.Equal(got, want); diff != nil {
		t.Fatalf("passenger codes mismatch: %v", diff)
	}
}

func TestURLParamsOrderAndOmission(t *testing.T) {
	req := oneWayLAXNRT()
	req.Lang = "en"
	req.Currency = "USD"

	params := req.URLParams()
	if len(params) != 3 {
		t.Fatalf("expected 3 params, got %v", params)
	}
	if params[0].Key != "tfs" || params[1].Key != "hl" || params[2].Key != "curr" {
		t.Fatalf("wrong param order: %v", params)
	}
	if params[1].Value != "en" || params[2].Value != "USD" {
		t.Fatalf("wrong param values: %v", params)
	}

	req.Lang = ""
	req.Currency = ""
	params = req.URLParams()
	if len(params) != 1 {
		t.Fatalf("empty hl/curr should be omitted entirely, got %v", params)
	}
}

func TestTokenIsPaddedStandardBase64(t *testing.T) {
	req := oneWayLAXNRT()
	req.Legs = append(req.Legs, FlightLeg{Date: "2026-03-10", FromAirport: "NRT", ToAirport: "LAX"})
	req.Trip = RoundTrip

	token := tfsToken(t, req)
	if _, err := base64.StdEncoding.DecodeString(token); err != nil {
		t.Fatalf("token is not padded standard base64: %v", err)
	}
}

func TestBrowserURL(t *testing.T) {
	req := oneWayLAXNRT()
	req.Lang = "en"
	req.Currency = "USD"

	u := req.BrowserURL()
	if !strings.HasPrefix(u, BaseURL+"?tfs=") {
		t.Fatalf("unexpected URL prefix: %s", u)
	}
	if !strings.Contains(u, "&hl=en") || !strings.Contains(u, "&curr=USD") {
		t.Fatalf("URL missing hl/curr params: %s", u)
	}
	if !strings.Contains(u, url.QueryEscape(tfsToken(t, req))) {
		t.Fatalf("tfs token not query-escaped into URL: %s", u)
	}
}
