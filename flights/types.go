// Package flights encodes Google Flights search requests into the tfs URL
// parameter and decodes the embedded result payload back into typed records.
package flights

import "fmt"

// Class is the cabin class of the whole itinerary.
type Class int

const (
	Economy Class = iota + 1
	PremiumEconomy
	Business
	First
)

// ClassFromString converts a lowercase dashed name ("premium-economy") to a Class.
func ClassFromString(s string) (Class, error) {
	switch s {
	case "economy":
		return Economy, nil
	case "premium-economy":
		return PremiumEconomy, nil
	case "business":
		return Business, nil
	case "first":
		return First, nil
	}
	return 0, &ValidationError{Msg: fmt.Sprintf("invalid seat class: %s", s)}
}

func (c Class) String() string {
	switch c {
	case Economy:
		return "economy"
	case PremiumEconomy:
		return "premium-economy"
	case Business:
		return "business"
	case First:
		return "first"
	}
	return "unknown"
}

// TripType describes the overall shape of the trip. It is carried alongside
// the legs rather than derived from them; Google renders the search page
// differently for each value.
type TripType int

const (
	RoundTrip TripType = iota + 1
	OneWay
	MultiCity
)

// TripTypeFromString converts a lowercase dashed name ("round-trip") to a TripType.
func TripTypeFromString(s string) (TripType, error) {
	switch s {
	case "round-trip":
		return RoundTrip, nil
	case "one-way":
		return OneWay, nil
	case "multi-city":
		return MultiCity, nil
	}
	return 0, &ValidationError{Msg: fmt.Sprintf("invalid trip type: %s", s)}
}

func (t TripType) String() string {
	switch t {
	case RoundTrip:
		return "round-trip"
	case OneWay:
		return "one-way"
	case MultiCity:
		return "multi-city"
	}
	return "unknown"
}

// FlightLeg is one directional hop of the search: fly from FromAirport to
// ToAirport on Date. MaxStops of nil means any number of stops; Airlines of
// nil means no carrier filter.
type FlightLeg struct {
	Date        string   // YYYY-MM-DD
	FromAirport string   // 3-letter IATA code, uppercase
	ToAirport   string   // 3-letter IATA code, uppercase
	MaxStops    *int     // optional upper bound, 0 = nonstop only
	Airlines    []string // optional allow-list of airline IATA codes
}

// Passengers holds the traveler counts for the search.
type Passengers struct {
	Adults        int
	Children      int
	InfantsInSeat int
	InfantsOnLap  int
}

// DefaultPassengers is one adult.
func DefaultPassengers() Passengers {
	return Passengers{Adults: 1}
}

func (p Passengers) total() int {
	return p.Adults + p.Children + p.InfantsInSeat + p.InfantsOnLap
}

// SearchRequest is a complete flight search. Legs are encoded in order; the
// first leg is the outbound flight. Lang and Currency ride along as plain URL
// parameters and are not part of the binary payload.
type SearchRequest struct {
	Legs       []FlightLeg
	Passengers Passengers
	Class      Class
	Trip       TripType
	Lang       string
	Currency   string
}

// Airport identifies an airport in a decoded result. Name may be empty when
// the upstream payload omits it.
type Airport struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// FlightDateTime is a wall-clock timestamp local to the airport it belongs
// to. No zone offset is available in the upstream payload.
type FlightDateTime struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (d FlightDateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d", d.Year, d.Month, d.Day, d.Hour, d.Minute)
}

// Segment is one flown hop of an itinerary.
type Segment struct {
	FromAirport     Airport        `json:"from_airport"`
	ToAirport       Airport        `json:"to_airport"`
	Departure       FlightDateTime `json:"departure"`
	Arrival         FlightDateTime `json:"arrival"`
	DurationMinutes int            `json:"duration_minutes"`
	Aircraft        *string        `json:"aircraft"`
}

// CarbonEmission carries the estimated emission for an itinerary and the
// typical emission for the route. Either figure may be missing upstream.
type CarbonEmission struct {
	EmissionGrams *int64 `json:"emission_grams"`
	TypicalGrams  *int64 `json:"typical_grams"`
}

// FlightResult is one bookable itinerary. Price is nil when Google attaches
// no fare to the itinerary, which is distinct from a price of zero.
type FlightResult struct {
	FlightType string         `json:"flight_type"`
	Airlines   []string       `json:"airlines"`
	Segments   []Segment      `json:"segments"`
	Price      *int64         `json:"price"`
	Carbon     CarbonEmission `json:"carbon"`
}

// Airline is a (code, display name) pair from the response reference data.
type Airline struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Alliance is a (code, display name) pair for an airline alliance.
type Alliance struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SearchMetadata is the reference data accompanying a result set.
type SearchMetadata struct {
	Airlines  []Airline  `json:"airlines"`
	Alliances []Alliance `json:"alliances"`
}

// SearchResult is everything decoded from one response.
type SearchResult struct {
	Flights  []FlightResult `json:"flights"`
	Metadata SearchMetadata `json:"metadata"`
}
