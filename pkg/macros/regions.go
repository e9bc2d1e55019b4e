// Package macros expands region and airline group tokens into the airport and
// airline codes a search request carries.
//
// Region expansion works over the canonical majorAirports set only, so
// REGION:EUROPE means "major European hubs", not every European airport.
// Airline group membership is best-effort and drifts as alliances change.
package macros

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// regionPrefix is the prefix for region tokens.
const regionPrefix = "REGION:"

// Region tokens supported for airport expansion.
const (
	RegionEurope       = "REGION:EUROPE"
	RegionNorthAmerica = "REGION:NORTH_AMERICA"
	RegionSouthAmerica = "REGION:SOUTH_AMERICA"
	RegionAsia         = "REGION:ASIA"
	RegionCaribbean    = "REGION:CARIBBEAN"
	RegionOceania      = "REGION:OCEANIA"
	RegionMiddleEast   = "REGION:MIDDLE_EAST"
	RegionAfrica       = "REGION:AFRICA"
	RegionWorld        = "REGION:WORLD"
)

// airportCodePattern validates IATA airport codes (3 uppercase letters).
var airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// countryToRegion maps ISO 3166-1 alpha-2 country codes to region tokens.
var countryToRegion = map[string]string{
	// North America
	"US": RegionNorthAmerica,
	"CA": RegionNorthAmerica,
	"MX": RegionNorthAmerica,

	// Europe
	"GB": RegionEurope,
	"FR": RegionEurope,
	"DE": RegionEurope,
	"NL": RegionEurope,
	"ES": RegionEurope,
	"IT": RegionEurope,
	"CH": RegionEurope,
	"AT": RegionEurope,
	"PT": RegionEurope,
	"NO": RegionEurope,
	"DK": RegionEurope,
	"SE": RegionEurope,
	"IE": RegionEurope,
	"GR": RegionEurope,
	"BE": RegionEurope,
	"PL": RegionEurope,
	"TR": RegionEurope, // spans Europe/Asia, grouped with Europe for flights
	"RU": RegionEurope, // Moscow airports grouped with Europe

	// Asia
	"JP": RegionAsia,
	"KR": RegionAsia,
	"CN": RegionAsia,
	"HK": RegionAsia,
	"TW": RegionAsia,
	"SG": RegionAsia,
	"TH": RegionAsia,
	"MY": RegionAsia,
	"PH": RegionAsia,
	"ID": RegionAsia,
	"IN": RegionAsia,

	// Middle East
	"AE": RegionMiddleEast,
	"QA": RegionMiddleEast,

	// Oceania
	"AU": RegionOceania,
	"NZ": RegionOceania,

	// South America
	"BR": RegionSouthAmerica,
	"CO": RegionSouthAmerica,

	// Africa
	"ZA": RegionAfrica,
	"MA": RegionAfrica,
	"EG": RegionAfrica,
}

var (
	regionAirportsCache map[string][]string
	regionCacheOnce     sync.Once
)

// initRegionCache builds the region -> airports mapping from majorAirports.
func initRegionCache() {
	regionCacheOnce.Do(func() {
		regionAirportsCache = make(map[string][]string)

		// Regions with no airports in the canonical set (e.g. CARIBBEAN) still
		// need to be recognized as valid tokens that expand to nothing.
		for _, region := range AllRegions() {
			regionAirportsCache[region] = []string{}
		}

		allAirports := make([]string, 0, len(majorAirports))
		for _, airport := range majorAirports {
			allAirports = append(allAirports, airport.Code)
			if region, ok := countryToRegion[airport.Country]; ok {
				regionAirportsCache[region] = append(regionAirportsCache[region], airport.Code)
			}
		}

		regionAirportsCache[RegionWorld] = allAirports
	})
}

// GetRegionAirports returns the airport codes for a region token, nil when the
// token is not recognized.
func GetRegionAirports(region string) []string {
	initRegionCache()
	airports, ok := regionAirportsCache[region]
	if !ok {
		return nil
	}
	result := make([]string, len(airports))
	copy(result, airports)
	return result
}

// AllRegions returns all supported region tokens.
func AllRegions() []string {
	return []string{
		RegionEurope,
		RegionNorthAmerica,
		RegionSouthAmerica,
		RegionAsia,
		RegionCaribbean,
		RegionOceania,
		RegionMiddleEast,
		RegionAfrica,
		RegionWorld,
	}
}

// IsRegionToken returns true if the input looks like a region token.
func IsRegionToken(input string) bool {
	return strings.HasPrefix(strings.ToUpper(input), regionPrefix)
}

// ExpandAirportTokens expands airport IATA codes + REGION:* tokens into a
// deduplicated airport code list. Codes are uppercased and trimmed; an
// unknown region token or malformed airport code is an error.
func ExpandAirportTokens(inputs []string) (airports []string, warnings []string, err error) {
	initRegionCache()

	seen := make(map[string]bool)
	result := make([]string, 0, len(inputs))

	for _, input := range inputs {
		token := strings.ToUpper(strings.TrimSpace(input))
		if token == "" {
			continue
		}

		if IsRegionToken(token) {
			regionAirports := GetRegionAirports(token)
			if regionAirports == nil {
				return nil, nil, fmt.Errorf("unknown region token: %s", token)
			}
			if len(regionAirports) == 0 {
				warnings = append(warnings, fmt.Sprintf("region %s contains no airports in canonical set", token))
				continue
			}
			for _, code := range regionAirports {
				if !seen[code] {
					seen[code] = true
					result = append(result, code)
				}
			}
			continue
		}

		if !airportCodePattern.MatchString(token) {
			return nil, nil, fmt.Errorf("invalid airport code format: %s (expected 3 uppercase letters)", input)
		}
		if !seen[token] {
			seen[token] = true
			result = append(result, token)
		}
	}

	return result, warnings, nil
}
