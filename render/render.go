// Package render formats decoded flight results for terminal output.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/tripwing/tripwing/flights"
)

// currencySymbols maps ISO 4217 codes to the symbol conventionally written
// before the amount.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"KRW": "₩",
	"INR": "₹",
	"THB": "฿",
}

// FormatPrice renders a price in the given currency, "—" when no price is
// known, and "123 XXX" for currencies without a conventional symbol.
func FormatPrice(price *int64, cur string) string {
	if price == nil {
		return "—"
	}
	cur = strings.ToUpper(cur)
	if sym, ok := currencySymbols[cur]; ok {
		return fmt.Sprintf("%s%d", sym, *price)
	}
	if cur == "" {
		return fmt.Sprintf("%d", *price)
	}
	return fmt.Sprintf("%d %s", *price, cur)
}

func formatDuration(minutes int) string {
	if minutes <= 0 {
		return "—"
	}
	h, m := minutes/60, minutes%60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}

func routeOf(f flights.FlightResult) string {
	if len(f.Segments) == 0 {
		return "—"
	}
	parts := make([]string, 0, len(f.Segments)+1)
	parts = append(parts, f.Segments[0].FromAirport.Code)
	for _, s := range f.Segments {
		parts = append(parts, s.ToAirport.Code)
	}
	return strings.Join(parts, "-")
}

func totalDuration(f flights.FlightResult) int {
	total := 0
	for _, s := range f.Segments {
		total += s.DurationMinutes
	}
	return total
}

func stopsOf(f flights.FlightResult) string {
	switch len(f.Segments) {
	case 0:
		return "—"
	case 1:
		return "nonstop"
	default:
		return fmt.Sprintf("%d", len(f.Segments)-1)
	}
}

// Table writes up to top flights as an aligned table. A top of 0 means all.
func Table(w io.Writer, result *flights.SearchResult, cur string, top int) {
	flightsOut := result.Flights
	if top > 0 && top < len(flightsOut) {
		flightsOut = flightsOut[:top]
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Route", "Departure", "Arrival", "Duration", "Stops", "Airlines", "Price"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	for _, f := range flightsOut {
		dep, arr := "—", "—"
		if len(f.Segments) > 0 {
			dep = f.Segments[0].Departure.String()
			arr = f.Segments[len(f.Segments)-1].Arrival.String()
		}
		table.Append([]string{
			routeOf(f),
			dep,
			arr,
			formatDuration(totalDuration(f)),
			stopsOf(f),
			strings.Join(f.Airlines, ","),
			FormatPrice(f.Price, cur),
		})
	}

	table.Render()
}

// Compact writes one line per flight, suitable for piping.
func Compact(w io.Writer, result *flights.SearchResult, cur string, top int) {
	flightsOut := result.Flights
	if top > 0 && top < len(flightsOut) {
		flightsOut = flightsOut[:top]
	}

	for _, f := range flightsOut {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			routeOf(f),
			formatDuration(totalDuration(f)),
			strings.Join(f.Airlines, ","),
			FormatPrice(f.Price, cur),
		)
	}
}
