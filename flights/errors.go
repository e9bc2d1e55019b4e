package flights

import (
	"errors"
	"fmt"
)

// ErrScriptNotFound means the response HTML carried no ds:1 script element.
// Google most likely served a consent or CAPTCHA page, or changed the page
// structure.
var ErrScriptNotFound = errors.New("flight data script not found in response; the page structure may have changed or Google returned a consent/CAPTCHA page")

// ErrRateLimited corresponds to an HTTP 429 from Google.
var ErrRateLimited = errors.New("rate limited by Google (HTTP 429); wait before retrying or route through a different IP")

// ValidationError reports a request that cannot be encoded as-is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// InvalidAirportError names an airport code that is not exactly 3 uppercase letters.
type InvalidAirportError struct {
	Code string
}

func (e *InvalidAirportError) Error() string {
	return fmt.Sprintf("invalid airport code %q: must be exactly 3 uppercase letters (e.g. JFK, HEL, NRT)", e.Code)
}

// InvalidDateError names a leg date that is not a real YYYY-MM-DD calendar date.
type InvalidDateError struct {
	Date string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q: must be YYYY-MM-DD (e.g. 2026-03-01)", e.Date)
}

// ParseError means the embedded payload was located but could not be decoded
// as the expected tree grammar. Callers should treat it as "upstream shape
// changed", not as bad caller input.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse flight data: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to parse flight data: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// BlockedError corresponds to HTTP 403/503, which usually means bot detection.
type BlockedError struct {
	StatusCode int
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("request blocked by Google (HTTP %d): likely rate limiting or bot detection", e.StatusCode)
}

// StatusError is any other unexpected HTTP status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d from Google Flights", e.StatusCode)
}

// IsValidation reports whether err is any of the request validation errors.
func IsValidation(err error) bool {
	var ve *ValidationError
	var ae *InvalidAirportError
	var de *InvalidDateError
	return errors.As(err, &ve) || errors.As(err, &ae) || errors.As(err, &de)
}
