package flights

import (
	"encoding/json"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
)

// Indices into the decoded payload tree. The layout is reverse-engineered,
// undocumented, and pinned only by the test fixtures; it is kept in one place
// so that an upstream layout shift touches one place.
const (
	idxPayloadFlights = 3
	idxPayloadMeta    = 7

	idxMetaLists     = 1
	idxMetaAlliances = 0
	idxMetaAirlines  = 1

	idxEntryFlight = 0
	idxEntryPrice  = 1

	idxFlightType     = 0
	idxFlightAirlines = 1
	idxFlightSegments = 2
	idxFlightExtras   = 22

	idxExtrasEmission = 7
	idxExtrasTypical  = 8

	idxSegFromCode = 3
	idxSegFromName = 4
	idxSegToName   = 5
	idxSegToCode   = 6
	idxSegDepTime  = 8
	idxSegArrTime  = 10
	idxSegDuration = 11
	idxSegAircraft = 17
	idxSegDepDate  = 20
	idxSegArrDate  = 21
)

// ParseStats counts per-entry problems that were recovered from by dropping
// the entry. Dropping is policy, not an error: the payload shape is unstable
// and a single malformed itinerary must not fail the whole response.
type ParseStats struct {
	FlightsTotal    int `json:"flights_total"`
	FlightsDropped  int `json:"flights_dropped"`
	SegmentsDropped int `json:"segments_dropped"`
}

// extractScript returns the inline content of the ds:1 script element, which
// carries the embedded flight data.
func extractScript(htmlText string) (string, error) {
	tz := html.NewTokenizer(strings.NewReader(htmlText))
	inTarget := false
	for {
		switch tz.Next() {
		case html.ErrorToken:
			// Either EOF or malformed markup; in both cases the marker was not seen.
			return "", ErrScriptNotFound
		case html.StartTagToken:
			name, hasAttr := tz.TagName()
			if string(name) != "script" {
				continue
			}
			inTarget = false
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = tz.TagAttr()
				if string(key) == "class" && string(val) == "ds:1" {
					inTarget = true
				}
			}
		case html.TextToken:
			if inTarget {
				return string(tz.Text()), nil
			}
		case html.EndTagToken:
			inTarget = false
		}
	}
}

// sliceData cuts the JSON payload out of the script body: everything between
// the first "data:" marker and the last comma, which separates the payload
// from the trailing sideChannel member.
func sliceData(js string) (string, error) {
	_, rest, found := strings.Cut(js, "data:")
	if !found {
		return "", &ParseError{Reason: "no 'data:' marker found"}
	}
	i := strings.LastIndexByte(rest, ',')
	if i < 0 {
		return "", &ParseError{Reason: "no trailing comma found"}
	}
	return rest[:i], nil
}

// parseData decodes the sliced payload text into the untyped tree.
func parseData(data string) (node, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return node{}, &ParseError{Reason: "payload is not valid JSON", Err: err}
	}
	if dec.More() {
		return node{}, &ParseError{Reason: "trailing data after payload"}
	}
	return node{v: v}, nil
}

func parseDateTime(date, t node) (FlightDateTime, bool) {
	year, ok := date.intAt(0)
	if !ok {
		return FlightDateTime{}, false
	}
	month, ok := date.intAt(1)
	if !ok {
		return FlightDateTime{}, false
	}
	day, ok := date.intAt(2)
	if !ok {
		return FlightDateTime{}, false
	}
	hour, ok := t.intAt(0)
	if !ok {
		return FlightDateTime{}, false
	}
	// On-the-hour times come back as a single-element array.
	minute, _ := t.intAt(1)

	return FlightDateTime{Year: year, Month: month, Day: day, Hour: hour, Minute: minute}, true
}

func parseSegment(sf node) (Segment, bool) {
	fromCode, ok := sf.str(idxSegFromCode)
	if !ok {
		return Segment{}, false
	}
	toCode, ok := sf.str(idxSegToCode)
	if !ok {
		return Segment{}, false
	}
	// Airport names are display-only and may be missing.
	fromName, _ := sf.str(idxSegFromName)
	toName, _ := sf.str(idxSegToName)

	depDate, ok := sf.at(idxSegDepDate)
	if !ok {
		return Segment{}, false
	}
	depTime, ok := sf.at(idxSegDepTime)
	if !ok {
		return Segment{}, false
	}
	departure, ok := parseDateTime(depDate, depTime)
	if !ok {
		return Segment{}, false
	}

	arrDate, ok := sf.at(idxSegArrDate)
	if !ok {
		return Segment{}, false
	}
	arrTime, ok := sf.at(idxSegArrTime)
	if !ok {
		return Segment{}, false
	}
	arrival, ok := parseDateTime(arrDate, arrTime)
	if !ok {
		return Segment{}, false
	}

	duration, _ := sf.intAt(idxSegDuration)

	var aircraft *string
	if a, ok := sf.str(idxSegAircraft); ok {
		aircraft = &a
	}

	return Segment{
		FromAirport:     Airport{Code: fromCode, Name: fromName},
		ToAirport:       Airport{Code: toCode, Name: toName},
		Departure:       departure,
		Arrival:         arrival,
		DurationMinutes: duration,
		Aircraft:        aircraft,
	}, true
}

func parseFlight(entry node, stats *ParseStats) (FlightResult, bool) {
	flight, ok := entry.at(idxEntryFlight)
	if !ok {
		return FlightResult{}, false
	}

	flightType, _ := flight.str(idxFlightType)

	airlines := []string{}
	if codes, ok := flight.at(idxFlightAirlines); ok {
		if arr, ok := codes.arr(); ok {
			for _, v := range arr {
				if s, ok := v.(string); ok {
					airlines = append(airlines, s)
				}
			}
		}
	}

	segments := []Segment{}
	if segs, ok := flight.at(idxFlightSegments); ok {
		if arr, ok := segs.arr(); ok {
			for _, v := range arr {
				seg, ok := parseSegment(node{v: v})
				if !ok {
					stats.SegmentsDropped++
					continue
				}
				segments = append(segments, seg)
			}
		}
	}

	var price *int64
	if pc, ok := entry.at(idxEntryPrice); ok {
		if first, ok := pc.at(0); ok {
			if p, ok := first.int64At(1); ok {
				price = &p
			}
		}
	}

	var carbon CarbonEmission
	if extras, ok := flight.at(idxFlightExtras); ok {
		if e, ok := extras.int64At(idxExtrasEmission); ok {
			carbon.EmissionGrams = &e
		}
		if t, ok := extras.int64At(idxExtrasTypical); ok {
			carbon.TypicalGrams = &t
		}
	}

	return FlightResult{
		FlightType: flightType,
		Airlines:   airlines,
		Segments:   segments,
		Price:      price,
		Carbon:     carbon,
	}, true
}

func parseMetadata(payload node) SearchMetadata {
	meta := SearchMetadata{Airlines: []Airline{}, Alliances: []Alliance{}}

	root, ok := payload.at(idxPayloadMeta)
	if !ok {
		return meta
	}
	lists, ok := root.at(idxMetaLists)
	if !ok {
		return meta
	}

	if alliances, ok := lists.at(idxMetaAlliances); ok {
		if arr, ok := alliances.arr(); ok {
			for _, v := range arr {
				item := node{v: v}
				code, okCode := item.str(0)
				name, okName := item.str(1)
				if okCode && okName {
					meta.Alliances = append(meta.Alliances, Alliance{Code: code, Name: name})
				}
			}
		}
	}

	if airlines, ok := lists.at(idxMetaAirlines); ok {
		if arr, ok := airlines.arr(); ok {
			for _, v := range arr {
				item := node{v: v}
				code, okCode := item.str(0)
				name, okName := item.str(1)
				if okCode && okName {
					meta.Airlines = append(meta.Airlines, Airline{Code: code, Name: name})
				}
			}
		}
	}

	return meta
}

// parsePayload decodes the untyped tree into a SearchResult. Individual
// malformed entries are dropped and counted; only a structurally impossible
// flights container is an error.
func parsePayload(payload node) (*SearchResult, *ParseStats, error) {
	stats := &ParseStats{}
	result := &SearchResult{
		Flights:  []FlightResult{},
		Metadata: parseMetadata(payload),
	}

	container, ok := payload.at(idxPayloadFlights)
	if !ok {
		// No flights container at all: a valid "no results yet" shape.
		return result, stats, nil
	}
	root, ok := container.at(0)
	if !ok || root.v == nil {
		return result, stats, nil
	}

	entries, ok := root.arr()
	if !ok {
		return nil, stats, &ParseError{Reason: "flights container is not an array"}
	}

	stats.FlightsTotal = len(entries)
	for _, v := range entries {
		flight, ok := parseFlight(node{v: v}, stats)
		if !ok {
			stats.FlightsDropped++
			continue
		}
		result.Flights = append(result.Flights, flight)
	}

	return result, stats, nil
}

// ParseHTML decodes one Google Flights response document into a SearchResult.
// It is a pure function of its input: the same document always decodes to the
// same result.
func ParseHTML(htmlText string) (*SearchResult, error) {
	js, err := extractScript(htmlText)
	if err != nil {
		return nil, err
	}

	data, err := sliceData(js)
	if err != nil {
		return nil, err
	}

	payload, err := parseData(data)
	if err != nil {
		return nil, err
	}

	result, stats, err := parsePayload(payload)
	if err != nil {
		return nil, err
	}

	if stats.FlightsDropped > 0 || stats.SegmentsDropped > 0 {
		slog.Debug("flight results parsed with drops",
			"flights_total", stats.FlightsTotal,
			"flights_dropped", stats.FlightsDropped,
			"segments_dropped", stats.SegmentsDropped,
		)
	}

	return result, nil
}
