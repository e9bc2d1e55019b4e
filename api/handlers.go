package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/tripwing/tripwing/config"
	"github.com/tripwing/tripwing/flights"
	"github.com/tripwing/tripwing/pkg/logger"
)

// Searcher is the part of flights.Session the handlers depend on.
type Searcher interface {
	SearchFlights(ctx context.Context, req flights.SearchRequest) (*flights.SearchResult, error)
}

// LegRequest is one leg of an API search request
type LegRequest struct {
	Date        string   `json:"date" binding:"required"`
	Origin      string   `json:"origin" binding:"required"`
	Destination string   `json:"destination" binding:"required"`
	MaxStops    *int     `json:"max_stops,omitempty"`
	Airlines    []string `json:"airlines,omitempty"`
}

// SearchRequest represents a flight search request
type SearchRequest struct {
	Legs        []LegRequest `json:"legs" binding:"required,min=1,dive"`
	Adults      int          `json:"adults" binding:"min=0"`
	Children    int          `json:"children" binding:"min=0"`
	InfantsSeat int          `json:"infants_seat" binding:"min=0"`
	InfantsLap  int          `json:"infants_lap" binding:"min=0"`
	TripType    string       `json:"trip_type" binding:"omitempty,oneof=one-way round-trip multi-city"`
	Class       string       `json:"class" binding:"omitempty,oneof=economy premium-economy business first"`
	Lang        string       `json:"lang,omitempty"`
	Currency    string       `json:"currency,omitempty"`
}

// toDomain converts the API request into a flights.SearchRequest, applying
// the configured locale defaults.
func (r SearchRequest) toDomain(cfg *config.Config) (flights.SearchRequest, error) {
	legs := make([]flights.FlightLeg, 0, len(r.Legs))
	for _, l := range r.Legs {
		legs = append(legs, flights.FlightLeg{
			Date:        l.Date,
			FromAirport: l.Origin,
			ToAirport:   l.Destination,
			MaxStops:    l.MaxStops,
			Airlines:    l.Airlines,
		})
	}

	pax := flights.Passengers{
		Adults:        r.Adults,
		Children:      r.Children,
		InfantsInSeat: r.InfantsSeat,
		InfantsOnLap:  r.InfantsLap,
	}
	if pax == (flights.Passengers{}) {
		pax = flights.DefaultPassengers()
	}

	class := flights.Economy
	if r.Class != "" {
		var err error
		class, err = flights.ClassFromString(r.Class)
		if err != nil {
			return flights.SearchRequest{}, err
		}
	}

	trip := flights.OneWay
	switch {
	case r.TripType != "":
		var err error
		trip, err = flights.TripTypeFromString(r.TripType)
		if err != nil {
			return flights.SearchRequest{}, err
		}
	case len(r.Legs) == 2:
		trip = flights.RoundTrip
	case len(r.Legs) > 2:
		trip = flights.MultiCity
	}

	lang := r.Lang
	if lang == "" {
		lang = cfg.Search.DefaultLang
	}
	if lang != "" {
		if _, err := language.Parse(lang); err != nil {
			return flights.SearchRequest{}, &flights.ValidationError{Msg: "invalid language code: " + lang}
		}
	}

	cur := r.Currency
	if cur == "" {
		cur = cfg.Search.DefaultCurrency
	}
	if cur != "" {
		parsed, err := currency.ParseISO(cur)
		if err != nil {
			return flights.SearchRequest{}, &flights.ValidationError{Msg: "invalid currency code: " + cur}
		}
		cur = parsed.String()
	}

	return flights.SearchRequest{
		Legs:       legs,
		Passengers: pax,
		Class:      class,
		Trip:       trip,
		Lang:       lang,
		Currency:   cur,
	}, nil
}

// CreateSearch returns a handler that runs a flight search against Google
// Flights and responds with the decoded results.
func CreateSearch(searcher Searcher, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		domainReq, err := req.toDomain(cfg)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := searcher.SearchFlights(c.Request.Context(), domainReq)
		if err != nil {
			status, payload := errorResponse(err)
			logger.WithField("status", status).Warn("search failed", "error", err)
			c.JSON(status, payload)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// GetSearchURL returns a handler that encodes a search into a shareable
// Google Flights URL without performing the search.
func GetSearchURL(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		domainReq, err := req.toDomain(cfg)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := domainReq.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": domainReq.BrowserURL()})
	}
}

// errorResponse maps a search error onto an HTTP status and body.
func errorResponse(err error) (int, gin.H) {
	var blocked *flights.BlockedError
	var status *flights.StatusError
	var parse *flights.ParseError

	switch {
	case flights.IsValidation(err):
		return http.StatusBadRequest, gin.H{"error": err.Error()}
	case errors.Is(err, flights.ErrRateLimited):
		return http.StatusTooManyRequests, gin.H{"error": err.Error()}
	case errors.As(err, &blocked):
		return http.StatusBadGateway, gin.H{"error": err.Error()}
	case errors.As(err, &status):
		return http.StatusBadGateway, gin.H{"error": err.Error()}
	case errors.Is(err, flights.ErrScriptNotFound), errors.As(err, &parse):
		return http.StatusBadGateway, gin.H{"error": "Failed to decode results: " + err.Error()}
	}
	return http.StatusInternalServerError, gin.H{"error": "Failed to search flights: " + err.Error()}
}
