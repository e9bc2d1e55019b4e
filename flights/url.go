package flights

import (
	"encoding/base64"
	"net/url"
	"strings"
)

// BaseURL is the page the serialized query is appended to.
const BaseURL = "https://www.google.com/travel/flights"

// Field numbers of the tfs payload. The far end decodes positionally by
// field number, so this layout must not change.
const (
	fieldLeg   = 3 // repeated leg submessage, travel order
	fieldPax   = 8 // packed passenger type codes
	fieldClass = 9
	fieldTrip  = 19

	legFieldDate    = 2
	legFieldStops   = 5
	legFieldAirline = 6 // repeated
	legFieldFrom    = 13
	legFieldTo      = 14

	airportFieldCode = 2
)

// Passenger type codes, emitted once per traveler in category order.
const (
	paxAdult        = 1
	paxChild        = 2
	paxInfantInSeat = 3
	paxInfantOnLap  = 4
)

// Param is one transport parameter. Parameters are ordered, so they are kept
// as a slice rather than a url.Values map.
type Param struct {
	Key   string
	Value string
}

func encodeAirport(code string) []byte {
	return appendString(nil, airportFieldCode, code)
}

func encodeLeg(leg FlightLeg) []byte {
	buf := appendString(nil, legFieldDate, leg.Date)

	if leg.MaxStops != nil {
		buf = appendTag(buf, legFieldStops, wireVarint)
		buf = appendVarint(buf, uint64(*leg.MaxStops))
	}

	for _, airline := range leg.Airlines {
		buf = appendString(buf, legFieldAirline, airline)
	}

	buf = appendSubmessage(buf, legFieldFrom, encodeAirport(leg.FromAirport))
	buf = appendSubmessage(buf, legFieldTo, encodeAirport(leg.ToAirport))
	return buf
}

func passengerCodes(p Passengers) []uint64 {
	codes := make([]uint64, 0, p.total())
	for i := 0; i < p.Adults; i++ {
		codes = append(codes, paxAdult)
	}
	for i := 0; i < p.Children; i++ {
		codes = append(codes, paxChild)
	}
	for i := 0; i < p.InfantsInSeat; i++ {
		codes = append(codes, paxInfantInSeat)
	}
	for i := 0; i < p.InfantsOnLap; i++ {
		codes = append(codes, paxInfantOnLap)
	}
	return codes
}

// encode serializes the request into the tfs binary payload. It is total for
// a request that already passed Validate: nothing in here can fail.
func encode(req SearchRequest) []byte {
	var buf []byte

	for _, leg := range req.Legs {
		buf = appendSubmessage(buf, fieldLeg, encodeLeg(leg))
	}

	if codes := passengerCodes(req.Passengers); len(codes) > 0 {
		var packed []byte
		for _, c := range codes {
			packed = appendVarint(packed, c)
		}
		buf = appendSubmessage(buf, fieldPax, packed)
	}

	buf = appendTag(buf, fieldClass, wireVarint)
	buf = appendVarint(buf, uint64(req.Class))

	buf = appendTag(buf, fieldTrip, wireVarint)
	buf = appendVarint(buf, uint64(req.Trip))

	return buf
}

// URLParams serializes the request into the ordered transport parameters:
// the base64 tfs token first, then hl and curr when non-empty.
func (req SearchRequest) URLParams() []Param {
	params := []Param{
		{Key: "tfs", Value: base64.StdEncoding.EncodeToString(encode(req))},
	}
	if req.Lang != "" {
		params = append(params, Param{Key: "hl", Value: req.Lang})
	}
	if req.Currency != "" {
		params = append(params, Param{Key: "curr", Value: req.Currency})
	}
	return params
}

// BrowserURL returns the full Google Flights search URL for the request,
// suitable for opening in a browser.
func (req SearchRequest) BrowserURL() string {
	var sb strings.Builder
	sb.WriteString(BaseURL)
	for i, p := range req.URLParams() {
		if i == 0 {
			sb.WriteByte('?')
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString(p.Key)
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}
