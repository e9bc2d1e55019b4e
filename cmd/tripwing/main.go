// Command tripwing searches Google Flights from the terminal.
//
// One-way:
//
//	tripwing -from LAX -to NRT -date 2026-03-01
//
// Round trip, business class, nonstop only:
//
//	tripwing -from LAX -to NRT -date 2026-03-01 -return 2026-03-10 -seat business -max-stops 0
//
// Multi-city:
//
//	tripwing -leg "2026-03-01 LAX NRT" -leg "2026-03-05 NRT ICN" -leg "2026-03-09 ICN LAX"
//
// Multiple destinations fan out concurrently; region and airline group
// tokens expand before the search:
//
//	tripwing -from HEL -to 'BCN,MAD,LIS' -date 2026-03-01
//	tripwing -from JFK -to REGION:EUROPE -date 2026-03-01 -airlines GROUP:STAR_ALLIANCE
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/browser"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/tripwing/tripwing/flights"
	"github.com/tripwing/tripwing/pkg/buildinfo"
	"github.com/tripwing/tripwing/pkg/logger"
	"github.com/tripwing/tripwing/pkg/macros"
	"github.com/tripwing/tripwing/render"
)

// Exit codes, stable for scripting.
const (
	exitValidation  = 2
	exitNetwork     = 3
	exitRateLimited = 4
	exitHTTP        = 5
	exitParse       = 6
)

type legList []string

func (l *legList) String() string { return strings.Join(*l, "; ") }

func (l *legList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type options struct {
	from       string
	to         string
	date       string
	returnDate string
	legs       legList

	trip     string
	seat     string
	maxStops int
	airlines string

	adults      int
	children    int
	infantsSeat int
	infantsLap  int

	lang     string
	cur      string
	top      int
	compact  bool
	jsonOut  bool
	pretty   bool
	urlOnly  bool
	open     bool
	proxy    string
	timeout  time.Duration
	logLevel string
	version  bool
}

func parseFlags() *options {
	opts := &options{}

	flag.StringVar(&opts.from, "from", "", "origin airport code")
	flag.StringVar(&opts.to, "to", "", "destination airport code, or comma-separated list")
	flag.StringVar(&opts.date, "date", "", "departure date (YYYY-MM-DD)")
	flag.StringVar(&opts.returnDate, "return", "", "return date for a round trip (YYYY-MM-DD)")
	flag.Var(&opts.legs, "leg", "multi-city leg as \"DATE FROM TO\" (repeatable)")

	flag.StringVar(&opts.trip, "trip", "", "trip type: one-way, round-trip or multi-city (default inferred)")
	flag.StringVar(&opts.seat, "seat", "economy", "seat class: economy, premium-economy, business or first")
	flag.IntVar(&opts.maxStops, "max-stops", -1, "maximum stops per leg, 0 for nonstop only")
	flag.StringVar(&opts.airlines, "airlines", "", "comma-separated airline codes to restrict results to")

	flag.IntVar(&opts.adults, "adults", 1, "number of adult passengers")
	flag.IntVar(&opts.children, "children", 0, "number of child passengers")
	flag.IntVar(&opts.infantsSeat, "infants-seat", 0, "number of infants with a seat")
	flag.IntVar(&opts.infantsLap, "infants-lap", 0, "number of infants on lap")

	flag.StringVar(&opts.lang, "lang", "", "interface language code for the results page")
	flag.StringVar(&opts.cur, "currency", "", "ISO 4217 currency code for prices")
	flag.IntVar(&opts.top, "top", 0, "only show the cheapest N flights")
	flag.BoolVar(&opts.compact, "compact", false, "one line per flight")
	flag.BoolVar(&opts.jsonOut, "json", false, "output results as JSON")
	flag.BoolVar(&opts.pretty, "pretty", false, "indent JSON output")
	flag.BoolVar(&opts.urlOnly, "url", false, "print the Google Flights URL instead of searching")
	flag.BoolVar(&opts.open, "open", false, "open the search in a browser instead of searching")
	flag.StringVar(&opts.proxy, "proxy", "", "HTTP or SOCKS proxy URL")
	flag.DurationVar(&opts.timeout, "timeout", 30*time.Second, "per-request timeout")
	flag.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flag.BoolVar(&opts.version, "version", false, "print version and exit")

	flag.Parse()
	return opts
}

func fail(code int, format string, args ...any) {
	fmt.Fprintf(os.Stderr, "tripwing: "+format+"\n", args...)
	os.Exit(code)
}

// buildLegs turns the flag set into legs for one destination.
func buildLegs(opts *options, dest string, airlines []string) ([]flights.FlightLeg, flights.TripType, error) {
	var maxStops *int
	if opts.maxStops >= 0 {
		v := opts.maxStops
		maxStops = &v
	}

	if len(opts.legs) > 0 {
		if opts.from != "" || opts.to != "" || opts.date != "" || opts.returnDate != "" {
			return nil, 0, errors.New("-leg cannot be combined with -from/-to/-date/-return")
		}
		legs := make([]flights.FlightLeg, 0, len(opts.legs))
		for _, raw := range opts.legs {
			fields := strings.Fields(raw)
			if len(fields) != 3 {
				return nil, 0, fmt.Errorf("invalid -leg %q, want \"DATE FROM TO\"", raw)
			}
			legs = append(legs, flights.FlightLeg{
				Date:        fields[0],
				FromAirport: strings.ToUpper(fields[1]),
				ToAirport:   strings.ToUpper(fields[2]),
				MaxStops:    maxStops,
				Airlines:    airlines,
			})
		}
		return legs, flights.MultiCity, nil
	}

	if opts.from == "" || dest == "" || opts.date == "" {
		return nil, 0, errors.New("-from, -to and -date are required (or use -leg)")
	}

	from := strings.ToUpper(strings.TrimSpace(opts.from))
	legs := []flights.FlightLeg{{
		Date:        opts.date,
		FromAirport: from,
		ToAirport:   dest,
		MaxStops:    maxStops,
		Airlines:    airlines,
	}}
	trip := flights.OneWay
	if opts.returnDate != "" {
		legs = append(legs, flights.FlightLeg{
			Date:        opts.returnDate,
			FromAirport: dest,
			ToAirport:   from,
			MaxStops:    maxStops,
			Airlines:    airlines,
		})
		trip = flights.RoundTrip
	}
	return legs, trip, nil
}

func buildRequest(opts *options, dest string, airlines []string) (flights.SearchRequest, error) {
	legs, inferred, err := buildLegs(opts, dest, airlines)
	if err != nil {
		return flights.SearchRequest{}, err
	}

	trip := inferred
	if opts.trip != "" {
		trip, err = flights.TripTypeFromString(opts.trip)
		if err != nil {
			return flights.SearchRequest{}, err
		}
	}

	class, err := flights.ClassFromString(opts.seat)
	if err != nil {
		return flights.SearchRequest{}, err
	}

	if opts.lang != "" {
		if _, err := language.Parse(opts.lang); err != nil {
			return flights.SearchRequest{}, fmt.Errorf("invalid language code %q", opts.lang)
		}
	}
	cur := opts.cur
	if cur != "" {
		parsed, err := currency.ParseISO(cur)
		if err != nil {
			return flights.SearchRequest{}, fmt.Errorf("invalid currency code %q", cur)
		}
		cur = parsed.String()
	}

	req := flights.SearchRequest{
		Legs: legs,
		Passengers: flights.Passengers{
			Adults:        opts.adults,
			Children:      opts.children,
			InfantsInSeat: opts.infantsSeat,
			InfantsOnLap:  opts.infantsLap,
		},
		Class:    class,
		Trip:     trip,
		Lang:     opts.lang,
		Currency: cur,
	}
	return req, req.Validate()
}

// exitCodeFor maps a search error onto the CLI exit codes.
func exitCodeFor(err error) int {
	var blocked *flights.BlockedError
	var status *flights.StatusError
	var parse *flights.ParseError

	switch {
	case flights.IsValidation(err):
		return exitValidation
	case errors.Is(err, flights.ErrRateLimited), errors.As(err, &blocked):
		return exitRateLimited
	case errors.As(err, &status):
		return exitHTTP
	case errors.Is(err, flights.ErrScriptNotFound), errors.As(err, &parse):
		return exitParse
	}
	return exitNetwork
}

// byPrice orders flights cheapest first, unpriced flights last.
func byPrice(result *flights.SearchResult) {
	sort.SliceStable(result.Flights, func(i, j int) bool {
		a, b := result.Flights[i].Price, result.Flights[j].Price
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})
}

type searchOutcome struct {
	dest   string
	result *flights.SearchResult
	err    error
}

func printResult(opts *options, result *flights.SearchResult) error {
	byPrice(result)

	switch {
	case opts.jsonOut:
		enc := json.NewEncoder(os.Stdout)
		if opts.pretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(result)
	case opts.compact:
		render.Compact(os.Stdout, result, opts.cur, opts.top)
	default:
		render.Table(os.Stdout, result, opts.cur, opts.top)
	}
	return nil
}

func main() {
	opts := parseFlags()
	if opts.version {
		fmt.Printf("tripwing %s (commit %s, built %s)\n", buildinfo.Version, buildinfo.Commit, buildinfo.Date)
		return
	}
	logger.Init(logger.Config{Level: opts.logLevel, Format: "text"})

	var airlines []string
	if opts.airlines != "" {
		expanded, warnings, err := macros.ExpandAirlineTokens(strings.Split(opts.airlines, ","))
		if err != nil {
			fail(exitValidation, "%v", err)
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "tripwing: warning: %s\n", w)
		}
		airlines = expanded
	}

	destinations := []string{""}
	if opts.to != "" {
		expanded, warnings, err := macros.ExpandAirportTokens(strings.Split(opts.to, ","))
		if err != nil {
			fail(exitValidation, "%v", err)
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "tripwing: warning: %s\n", w)
		}
		if len(expanded) == 0 {
			fail(exitValidation, "no destinations left after expanding %q", opts.to)
		}
		destinations = expanded
	}

	requests := make([]flights.SearchRequest, 0, len(destinations))
	for _, dest := range destinations {
		req, err := buildRequest(opts, dest, airlines)
		if err != nil {
			fail(exitValidation, "%v", err)
		}
		requests = append(requests, req)
	}

	if opts.urlOnly || opts.open {
		for _, req := range requests {
			u := req.BrowserURL()
			if opts.open {
				if err := browser.OpenURL(u); err != nil {
					fail(exitNetwork, "opening browser: %v", err)
				}
				continue
			}
			fmt.Println(u)
		}
		return
	}

	session, err := flights.New(flights.Options{
		Proxy:    opts.proxy,
		Timeout:  opts.timeout,
		RetryMax: 3,
	})
	if err != nil {
		fail(exitNetwork, "initializing session: %v", err)
	}

	ctx := context.Background()
	outcomes := make([]searchOutcome, len(requests))
	var wg sync.WaitGroup
	for i, req := range requests {
		wg.Add(1)
		go func(i int, req flights.SearchRequest) {
			defer wg.Done()
			result, err := session.SearchFlights(ctx, req)
			outcomes[i] = searchOutcome{dest: req.Legs[0].ToAirport, result: result, err: err}
		}(i, req)
	}
	wg.Wait()

	exit := 0
	for _, out := range outcomes {
		if len(outcomes) > 1 {
			fmt.Printf("== %s ==\n", out.dest)
		}
		if out.err != nil {
			fmt.Fprintf(os.Stderr, "tripwing: search %s: %v\n", out.dest, out.err)
			if code := exitCodeFor(out.err); code > exit {
				exit = code
			}
			continue
		}
		if err := printResult(opts, out.result); err != nil {
			fail(exitParse, "writing output: %v", err)
		}
	}
	os.Exit(exit)
}
