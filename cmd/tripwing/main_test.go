package main

import (
	"testing"
	"time"

	"github.com/tripwing/tripwing/flights"
)

func defaultOpts() *options {
	return &options{
		seat:     "economy",
		adults:   1,
		timeout:  30 * time.Second,
		maxStops: -1,
	}
}

func TestBuildRequestOneWay(t *testing.T) {
	opts := defaultOpts()
	opts.from = "lax"
	opts.date = "2026-03-01"

	req, err := buildRequest(opts, "NRT", nil)
	if err != nil {
		t.Fatalf("buildRequest: %v", err)
	}
	if req.Trip != flights.OneWay {
		t.Errorf("trip = %v, want one-way", req.Trip)
	}
	if len(req.Legs) != 1 || req.Legs[0].FromAirport != "LAX" || req.Legs[0].ToAirport != "NRT" {
		t.Errorf("unexpected legs %+v", req.Legs)
	}
}

func TestBuildRequestRoundTrip(t *testing.T) {
	opts := defaultOpts()
	opts.from = "LAX"
	opts.date = "2026-03-01"
	opts.returnDate = "2026-03-10"

	req, err := buildRequest(opts, "NRT", nil)
	if err != nil {
		t.Fatalf("buildRequest: %v", err)
	}
	if req.Trip != flights.RoundTrip {
		t.Errorf("trip = %v, want round-trip", req.Trip)
	}
	if len(req.Legs) != 2 || req.Legs[1].FromAirport != "NRT" || req.Legs[1].ToAirport != "LAX" {
		t.Errorf("unexpected legs %+v", req.Legs)
	}
}

func TestBuildRequestMultiCity(t *testing.T) {
	opts := defaultOpts()
	opts.legs = legList{"2026-03-01 LAX NRT", "2026-03-05 nrt icn"}

	req, err := buildRequest(opts, "", nil)
	if err != nil {
		t.Fatalf("buildRequest: %v", err)
	}
	if req.Trip != flights.MultiCity {
		t.Errorf("trip = %v, want multi-city", req.Trip)
	}
	if req.Legs[1].FromAirport != "NRT" || req.Legs[1].ToAirport != "ICN" {
		t.Errorf("unexpected legs %+v", req.Legs)
	}
}

func TestBuildRequestRejectsMixedModes(t *testing.T) {
	opts := defaultOpts()
	opts.legs = legList{"2026-03-01 LAX NRT"}
	opts.from = "LAX"

	if _, err := buildRequest(opts, "", nil); err == nil {
		t.Fatal("expected error when -leg is combined with -from")
	}
}

func TestBuildRequestRejectsMalformedLeg(t *testing.T) {
	opts := defaultOpts()
	opts.legs = legList{"2026-03-01 LAX"}

	if _, err := buildRequest(opts, "", nil); err == nil {
		t.Fatal("expected error for malformed -leg")
	}
}

func TestBuildRequestRejectsBadLocale(t *testing.T) {
	opts := defaultOpts()
	opts.from = "LAX"
	opts.date = "2026-03-01"
	opts.cur = "NOTREAL"

	if _, err := buildRequest(opts, "NRT", nil); err == nil {
		t.Fatal("expected error for unknown currency")
	}
}

func TestBuildRequestAppliesFilters(t *testing.T) {
	opts := defaultOpts()
	opts.from = "LAX"
	opts.date = "2026-03-01"
	opts.maxStops = 0

	req, err := buildRequest(opts, "NRT", []string{"UA", "NH"})
	if err != nil {
		t.Fatalf("buildRequest: %v", err)
	}
	leg := req.Legs[0]
	if leg.MaxStops == nil || *leg.MaxStops != 0 {
		t.Errorf("max stops = %v, want 0", leg.MaxStops)
	}
	if len(leg.Airlines) != 2 || leg.Airlines[0] != "UA" || leg.Airlines[1] != "NH" {
		t.Errorf("airlines = %v", leg.Airlines)
	}
}

func TestExitCodeFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&flights.InvalidAirportError{Code: "xx"}, exitValidation},
		{flights.ErrRateLimited, exitRateLimited},
		{&flights.BlockedError{StatusCode: 403}, exitRateLimited},
		{&flights.StatusError{StatusCode: 500}, exitHTTP},
		{&flights.ParseError{Reason: "bad payload"}, exitParse},
		{flights.ErrScriptNotFound, exitParse},
	}
	for _, tc := range cases {
		if got := exitCodeFor(tc.err); got != tc.want {
			t.Errorf("exitCodeFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestByPriceSortsNilLast(t *testing.T) {
	cheap, dear := int64(100), int64(500)
	result := &flights.SearchResult{Flights: []flights.FlightResult{
		{Price: nil},
		{Price: &dear},
		{Price: &cheap},
	}}
	byPrice(result)

	if result.Flights[0].Price == nil || *result.Flights[0].Price != 100 {
		t.Errorf("first flight should be cheapest, got %+v", result.Flights[0].Price)
	}
	if result.Flights[2].Price != nil {
		t.Errorf("unpriced flight should sort last")
	}
}
