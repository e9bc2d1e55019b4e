package flights

import (
	"fmt"
	"strconv"
	"strings"
)

func validAirportCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	}
	return 0
}

func validateDate(date string) error {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return &InvalidDateError{Date: date}
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return &InvalidDateError{Date: date}
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return &InvalidDateError{Date: date}
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return &InvalidDateError{Date: date}
	}

	if year < 2000 || month < 1 || month > 12 {
		return &InvalidDateError{Date: date}
	}
	if day < 1 || day > daysInMonth(year, month) {
		return &InvalidDateError{Date: date}
	}
	return nil
}

// Validate checks the request against Google's accepted bounds. The first
// violated rule is reported: per leg origin, destination, date, then the
// stops bound, and passenger counts after all legs, so error messages are
// reproducible for a given request.
func (req SearchRequest) Validate() error {
	if len(req.Legs) == 0 {
		return &ValidationError{Msg: "at least one flight leg required"}
	}

	for _, leg := range req.Legs {
		if !validAirportCode(leg.FromAirport) {
			return &InvalidAirportError{Code: leg.FromAirport}
		}
		if !validAirportCode(leg.ToAirport) {
			return &InvalidAirportError{Code: leg.ToAirport}
		}
		if err := validateDate(leg.Date); err != nil {
			return err
		}
		if leg.MaxStops != nil && *leg.MaxStops < 0 {
			return &ValidationError{Msg: fmt.Sprintf("max stops cannot be negative (%d)", *leg.MaxStops)}
		}
	}

	for _, count := range []struct {
		name string
		n    int
	}{
		{"adults", req.Passengers.Adults},
		{"children", req.Passengers.Children},
		{"infants in seat", req.Passengers.InfantsInSeat},
		{"infants on lap", req.Passengers.InfantsOnLap},
	} {
		if count.n < 0 {
			return &ValidationError{Msg: fmt.Sprintf("%s cannot be negative (%d)", count.name, count.n)}
		}
	}

	total := req.Passengers.total()
	if total > 9 {
		return &ValidationError{Msg: fmt.Sprintf("total passengers (%d) exceeds maximum of 9", total)}
	}
	if total < 1 {
		return &ValidationError{Msg: "at least one passenger required"}
	}
	if req.Passengers.InfantsOnLap > req.Passengers.Adults {
		return &ValidationError{Msg: "infants on lap cannot exceed number of adults"}
	}

	return nil
}
