package macros

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// groupPrefix is the prefix for airline group tokens.
const groupPrefix = "GROUP:"

// Airline group tokens supported for airline expansion.
const (
	GroupStarAlliance = "GROUP:STAR_ALLIANCE"
	GroupOneworld     = "GROUP:ONEWORLD"
	GroupSkyTeam      = "GROUP:SKYTEAM"
	GroupLowCost      = "GROUP:LOW_COST"
)

// AirlineGroup represents bitmask flags for airline group membership.
type AirlineGroup uint8

const (
	// GroupFlagStarAlliance indicates membership in Star Alliance.
	GroupFlagStarAlliance AirlineGroup = 1 << iota
	// GroupFlagOneworld indicates membership in Oneworld.
	GroupFlagOneworld
	// GroupFlagSkyTeam indicates membership in SkyTeam.
	GroupFlagSkyTeam
	// GroupFlagLowCost indicates a low-cost carrier.
	GroupFlagLowCost
)

// airlineCodePattern validates IATA airline codes (2 alphanumeric characters).
var airlineCodePattern = regexp.MustCompile(`^[A-Z0-9]{2}$`)

// airlineToGroups maps airline IATA codes to their group memberships.
// Best-effort: alliance membership changes over time and the low-cost
// classification is subjective.
var airlineToGroups = map[string]AirlineGroup{
	// Star Alliance members (major carriers)
	"LH": GroupFlagStarAlliance, // Lufthansa
	"UA": GroupFlagStarAlliance, // United Airlines
	"AC": GroupFlagStarAlliance, // Air Canada
	"NH": GroupFlagStarAlliance, // ANA (All Nippon Airways)
	"SQ": GroupFlagStarAlliance, // Singapore Airlines
	"TG": GroupFlagStarAlliance, // Thai Airways
	"SK": GroupFlagStarAlliance, // SAS Scandinavian Airlines
	"OS": GroupFlagStarAlliance, // Austrian Airlines
	"LX": GroupFlagStarAlliance, // Swiss International Air Lines
	"TK": GroupFlagStarAlliance, // Turkish Airlines
	"ET": GroupFlagStarAlliance, // Ethiopian Airlines
	"A3": GroupFlagStarAlliance, // Aegean Airlines
	"OU": GroupFlagStarAlliance, // Croatia Airlines
	"SA": GroupFlagStarAlliance, // South African Airways
	"NZ": GroupFlagStarAlliance, // Air New Zealand
	"BR": GroupFlagStarAlliance, // EVA Air
	"OZ": GroupFlagStarAlliance, // Asiana Airlines
	"CA": GroupFlagStarAlliance, // Air China
	"AI": GroupFlagStarAlliance, // Air India
	"AV": GroupFlagStarAlliance, // Avianca
	"CM": GroupFlagStarAlliance, // Copa Airlines
	"TP": GroupFlagStarAlliance, // TAP Air Portugal
	"MS": GroupFlagStarAlliance, // EgyptAir
	"LO": GroupFlagStarAlliance, // LOT Polish Airlines

	// Oneworld members (major carriers)
	"AA": GroupFlagOneworld, // American Airlines
	"BA": GroupFlagOneworld, // British Airways
	"QF": GroupFlagOneworld, // Qantas
	"CX": GroupFlagOneworld, // Cathay Pacific
	"JL": GroupFlagOneworld, // Japan Airlines
	"IB": GroupFlagOneworld, // Iberia
	"AY": GroupFlagOneworld, // Finnair
	"MH": GroupFlagOneworld, // Malaysia Airlines
	"QR": GroupFlagOneworld, // Qatar Airways
	"RJ": GroupFlagOneworld, // Royal Jordanian
	"UL": GroupFlagOneworld, // SriLankan Airlines
	"FJ": GroupFlagOneworld, // Fiji Airways
	"LA": GroupFlagOneworld, // LATAM Airlines

	// SkyTeam members (major carriers)
	"AF": GroupFlagSkyTeam, // Air France
	"KL": GroupFlagSkyTeam, // KLM Royal Dutch Airlines
	"DL": GroupFlagSkyTeam, // Delta Air Lines
	"AM": GroupFlagSkyTeam, // Aeromexico
	"KE": GroupFlagSkyTeam, // Korean Air
	"CI": GroupFlagSkyTeam, // China Airlines
	"MU": GroupFlagSkyTeam, // China Eastern Airlines
	"VN": GroupFlagSkyTeam, // Vietnam Airlines
	"GA": GroupFlagSkyTeam, // Garuda Indonesia
	"ME": GroupFlagSkyTeam, // Middle East Airlines
	"SV": GroupFlagSkyTeam, // Saudia
	"RO": GroupFlagSkyTeam, // TAROM
	"AR": GroupFlagSkyTeam, // Aerolíneas Argentinas
	"UX": GroupFlagSkyTeam, // Air Europa

	// Low-cost carriers (major ones)
	"FR": GroupFlagLowCost, // Ryanair
	"U2": GroupFlagLowCost, // easyJet
	"W6": GroupFlagLowCost, // Wizz Air
	"NK": GroupFlagLowCost, // Spirit Airlines
	"F9": GroupFlagLowCost, // Frontier Airlines
	"WN": GroupFlagLowCost, // Southwest Airlines
	"G4": GroupFlagLowCost, // Allegiant Air
	"B6": GroupFlagLowCost, // JetBlue Airways
	"DY": GroupFlagLowCost, // Norwegian Air Shuttle
	"VY": GroupFlagLowCost, // Vueling
	"PC": GroupFlagLowCost, // Pegasus Airlines
	"AK": GroupFlagLowCost, // AirAsia
	"FD": GroupFlagLowCost, // Thai AirAsia
	"TR": GroupFlagLowCost, // Scoot
	"JQ": GroupFlagLowCost, // Jetstar Airways
	"5J": GroupFlagLowCost, // Cebu Pacific
	"7C": GroupFlagLowCost, // Jeju Air
	"MM": GroupFlagLowCost, // Peach Aviation
	"G9": GroupFlagLowCost, // Air Arabia
	"FZ": GroupFlagLowCost, // flydubai
}

// groupTokenToFlag maps group tokens to their bitmask flags.
var groupTokenToFlag = map[string]AirlineGroup{
	GroupStarAlliance: GroupFlagStarAlliance,
	GroupOneworld:     GroupFlagOneworld,
	GroupSkyTeam:      GroupFlagSkyTeam,
	GroupLowCost:      GroupFlagLowCost,
}

// AllAirlineGroups returns all supported airline group tokens.
func AllAirlineGroups() []string {
	return []string{
		GroupStarAlliance,
		GroupOneworld,
		GroupSkyTeam,
		GroupLowCost,
	}
}

// IsAirlineGroupToken returns true if the input looks like an airline group token.
func IsAirlineGroupToken(input string) bool {
	return strings.HasPrefix(strings.ToUpper(input), groupPrefix)
}

// GetGroupAirlines returns the airline codes for a group token sorted
// alphabetically, nil when the group is not recognized. Sorting keeps the
// expansion deterministic, which matters because the codes end up inside an
// encoded request.
func GetGroupAirlines(group string) []string {
	flag, ok := groupTokenToFlag[group]
	if !ok {
		return nil
	}

	result := make([]string, 0)
	for code, groups := range airlineToGroups {
		if groups&flag != 0 {
			result = append(result, code)
		}
	}
	sort.Strings(result)
	return result
}

// ExpandAirlineTokens expands airline IATA codes + GROUP:* tokens into a
// deduplicated airline code list. Codes are uppercased and trimmed; an
// unknown group token or malformed airline code is an error.
func ExpandAirlineTokens(inputs []string) (codes []string, warnings []string, err error) {
	seen := make(map[string]bool)
	result := make([]string, 0, len(inputs))

	for _, input := range inputs {
		token := strings.ToUpper(strings.TrimSpace(input))
		if token == "" {
			continue
		}

		if IsAirlineGroupToken(token) {
			groupAirlines := GetGroupAirlines(token)
			if groupAirlines == nil {
				return nil, nil, fmt.Errorf("unknown airline group token: %s", token)
			}
			if len(groupAirlines) == 0 {
				warnings = append(warnings, fmt.Sprintf("airline group %s contains no airlines", token))
				continue
			}
			for _, code := range groupAirlines {
				if !seen[code] {
					seen[code] = true
					result = append(result, code)
				}
			}
			continue
		}

		if !airlineCodePattern.MatchString(token) {
			return nil, nil, fmt.Errorf("invalid airline code format: %s (expected 2 alphanumeric characters)", input)
		}
		if !seen[token] {
			seen[token] = true
			result = append(result, token)
		}
	}

	return result, warnings, nil
}
