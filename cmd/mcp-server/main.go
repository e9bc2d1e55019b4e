package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/browser"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/tripwing/tripwing/flights"
)

func main() {
	// Initialize flights session
	session, err := flights.New(flights.DefaultOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing flights session: %v\n", err)
		os.Exit(1)
	}

	// Create MCP server
	s := server.NewMCPServer(
		"tripwing-mcp",
		"1.0.0",
		server.WithLogging(),
	)

	searchTool := mcp.NewTool("search_flights",
		append([]mcp.ToolOption{
			mcp.WithDescription("Search for flights using Google Flights and return the decoded results"),
		}, searchArgs()...)...,
	)
	s.AddTool(searchTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, errResult := requestFromArgs(request)
		if errResult != nil {
			return errResult, nil
		}

		result, err := session.SearchFlights(ctx, req)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error searching flights: %v", err)), nil
		}

		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error marshaling response: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	urlTool := mcp.NewTool("get_flights_url",
		append([]mcp.ToolOption{
			mcp.WithDescription("Build a shareable Google Flights URL for a search without performing it"),
		}, searchArgs()...)...,
	)
	s.AddTool(urlTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, errResult := requestFromArgs(request)
		if errResult != nil {
			return errResult, nil
		}
		if err := req.Validate(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(req.BrowserURL()), nil
	})

	openTool := mcp.NewTool("open_url",
		append([]mcp.ToolOption{
			mcp.WithDescription("Open a Google Flights search in the default browser"),
		}, searchArgs()...)...,
	)
	s.AddTool(openTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, errResult := requestFromArgs(request)
		if errResult != nil {
			return errResult, nil
		}
		if err := req.Validate(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		url := req.BrowserURL()
		if err := browser.OpenURL(url); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error opening browser: %v", err)), nil
		}
		return mcp.NewToolResultText("Opened " + url), nil
	})

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
	}
}

func searchArgs() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("origin",
			mcp.Description("Origin airport code (e.g., SFO, LHR)"),
		),
		mcp.WithString("destination",
			mcp.Description("Destination airport code (e.g., JFK, CDG)"),
		),
		mcp.WithString("date",
			mcp.Description("Departure date (YYYY-MM-DD)"),
		),
		mcp.WithString("return_date",
			mcp.Description("Return date (YYYY-MM-DD) for round trips. Optional for one-way."),
		),
		mcp.WithString("segments",
			mcp.Description("JSON array of segments for multi-city trips. Each segment should have 'origin', 'destination', 'date'. Example: '[{\"origin\":\"SFO\",\"destination\":\"JFK\",\"date\":\"2026-06-01\"}]'"),
		),
		mcp.WithNumber("adults",
			mcp.Description("Number of adults (default 1)"),
		),
		mcp.WithNumber("children",
			mcp.Description("Number of children (default 0)"),
		),
		mcp.WithNumber("infants_seat",
			mcp.Description("Number of infants with their own seat (default 0)"),
		),
		mcp.WithNumber("infants_lap",
			mcp.Description("Number of infants on lap (default 0)"),
		),
		mcp.WithString("seat_class",
			mcp.Description("Seat class: 'economy', 'premium-economy', 'business' or 'first'. Default economy."),
		),
		mcp.WithNumber("max_stops",
			mcp.Description("Maximum stops per leg, 0 for nonstop only. Unset means any."),
		),
		mcp.WithString("currency",
			mcp.Description("Currency code (e.g., USD, EUR)."),
		),
		mcp.WithString("lang",
			mcp.Description("Interface language code (e.g., en, de)."),
		),
		mcp.WithString("trip_type",
			mcp.Description("Trip type: 'round-trip', 'one-way', or 'multi-city'. Default is round-trip if return_date is provided, else one-way."),
		),
	}
}

// requestFromArgs builds a flights.SearchRequest from tool-call arguments.
// The second return value is a ready error result when the arguments are bad.
func requestFromArgs(request mcp.CallToolRequest) (flights.SearchRequest, *mcp.CallToolResult) {
	var zero flights.SearchRequest

	argsMap, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return zero, mcp.NewToolResultError("Invalid arguments format")
	}

	origin, _ := argsMap["origin"].(string)
	destination, _ := argsMap["destination"].(string)
	dateStr, _ := argsMap["date"].(string)
	returnDateStr, _ := argsMap["return_date"].(string)
	segmentsStr, _ := argsMap["segments"].(string)

	adultsVal, _ := argsMap["adults"].(float64)
	adults := int(adultsVal)
	if adults == 0 {
		adults = 1
	}
	childrenVal, _ := argsMap["children"].(float64)
	infantsSeatVal, _ := argsMap["infants_seat"].(float64)
	infantsLapVal, _ := argsMap["infants_lap"].(float64)

	var maxStops *int
	if v, ok := argsMap["max_stops"].(float64); ok {
		stops := int(v)
		maxStops = &stops
	}

	classStr, _ := argsMap["seat_class"].(string)
	class := flights.Economy
	if classStr != "" {
		var err error
		class, err = flights.ClassFromString(classStr)
		if err != nil {
			return zero, mcp.NewToolResultError(err.Error())
		}
	}

	tripTypeStr, _ := argsMap["trip_type"].(string)
	var trip flights.TripType
	if tripTypeStr != "" {
		var err error
		trip, err = flights.TripTypeFromString(tripTypeStr)
		if err != nil {
			return zero, mcp.NewToolResultError(err.Error())
		}
	} else if returnDateStr != "" {
		trip = flights.RoundTrip
	} else {
		trip = flights.OneWay
	}

	currencyStr, _ := argsMap["currency"].(string)
	if currencyStr != "" {
		cur, err := currency.ParseISO(currencyStr)
		if err != nil {
			return zero, mcp.NewToolResultError(fmt.Sprintf("Invalid currency code: %v", err))
		}
		currencyStr = cur.String()
	}
	langStr, _ := argsMap["lang"].(string)
	if langStr != "" {
		if _, err := language.Parse(langStr); err != nil {
			return zero, mcp.NewToolResultError(fmt.Sprintf("Invalid language code: %v", err))
		}
	}

	var legs []flights.FlightLeg
	if trip == flights.MultiCity {
		if segmentsStr == "" {
			return zero, mcp.NewToolResultError("segments argument is required for multi-city trip_type")
		}
		var segments []struct {
			Origin      string `json:"origin"`
			Destination string `json:"destination"`
			Date        string `json:"date"`
		}
		if err := json.Unmarshal([]byte(segmentsStr), &segments); err != nil {
			return zero, mcp.NewToolResultError(fmt.Sprintf("Invalid segments JSON: %v", err))
		}
		for _, seg := range segments {
			if _, err := time.Parse("2006-01-02", seg.Date); err != nil {
				return zero, mcp.NewToolResultError(fmt.Sprintf("Invalid date in segment: %v", err))
			}
			legs = append(legs, flights.FlightLeg{
				Date:        seg.Date,
				FromAirport: seg.Origin,
				ToAirport:   seg.Destination,
				MaxStops:    maxStops,
			})
		}
	} else {
		if origin == "" || destination == "" || dateStr == "" {
			return zero, mcp.NewToolResultError("origin, destination, and date are required for one-way and round-trip")
		}
		legs = append(legs, flights.FlightLeg{
			Date:        dateStr,
			FromAirport: origin,
			ToAirport:   destination,
			MaxStops:    maxStops,
		})
		if trip == flights.RoundTrip {
			if returnDateStr == "" {
				return zero, mcp.NewToolResultError("return_date is required for round-trip")
			}
			legs = append(legs, flights.FlightLeg{
				Date:        returnDateStr,
				FromAirport: destination,
				ToAirport:   origin,
				MaxStops:    maxStops,
			})
		}
	}

	return flights.SearchRequest{
		Legs: legs,
		Passengers: flights.Passengers{
			Adults:        adults,
			Children:      int(childrenVal),
			InfantsInSeat: int(infantsSeatVal),
			InfantsOnLap:  int(infantsLapVal),
		},
		Class:    class,
		Trip:     trip,
		Lang:     langStr,
		Currency: currencyStr,
	}, nil
}
