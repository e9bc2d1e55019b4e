package macros

// majorAirport pairs an airport code with its country for region grouping.
type majorAirport struct {
	Code    string
	Country string
}

// majorAirports is the canonical airport set region tokens expand over. It
// covers major global hubs, not every airport Google Flights serves.
// Source: ACI World Airport Traffic Rankings 2023.
var majorAirports = []majorAirport{
	// North America - United States
	{"ATL", "US"}, // Atlanta
	{"DFW", "US"}, // Dallas/Fort Worth
	{"DEN", "US"}, // Denver
	{"LAX", "US"}, // Los Angeles
	{"ORD", "US"}, // Chicago O'Hare
	{"JFK", "US"}, // New York JFK
	{"SFO", "US"}, // San Francisco
	{"LAS", "US"}, // Las Vegas
	{"MIA", "US"}, // Miami
	{"CLT", "US"}, // Charlotte
	{"SEA", "US"}, // Seattle
	{"PHX", "US"}, // Phoenix
	{"EWR", "US"}, // Newark
	{"MCO", "US"}, // Orlando
	{"MSP", "US"}, // Minneapolis
	{"BOS", "US"}, // Boston
	{"DTW", "US"}, // Detroit
	{"IAH", "US"}, // Houston
	{"BWI", "US"}, // Baltimore
	{"FLL", "US"}, // Fort Lauderdale
	{"TPA", "US"}, // Tampa
	{"SAN", "US"}, // San Diego
	{"PDX", "US"}, // Portland
	{"STL", "US"}, // St. Louis
	{"HNL", "US"}, // Honolulu

	// North America - Canada & Mexico
	{"YYZ", "CA"}, // Toronto
	{"MEX", "MX"}, // Mexico City
	{"CUN", "MX"}, // Cancun

	// Europe - United Kingdom
	{"LHR", "GB"}, // London Heathrow
	{"LGW", "GB"}, // London Gatwick
	{"MAN", "GB"}, // Manchester
	{"STN", "GB"}, // London Stansted

	// Europe - France
	{"CDG", "FR"}, // Paris Charles de Gaulle
	{"ORY", "FR"}, // Paris Orly

	// Europe - Germany
	{"FRA", "DE"}, // Frankfurt
	{"MUC", "DE"}, // Munich
	{"DUS", "DE"}, // Dusseldorf
	{"HAM", "DE"}, // Hamburg

	// Europe - Other Western Europe
	{"AMS", "NL"}, // Amsterdam
	{"MAD", "ES"}, // Madrid
	{"BCN", "ES"}, // Barcelona
	{"PMI", "ES"}, // Palma de Mallorca
	{"FCO", "IT"}, // Rome Fiumicino
	{"MXP", "IT"}, // Milan Malpensa
	{"ZRH", "CH"}, // Zurich
	{"VIE", "AT"}, // Vienna
	{"LIS", "PT"}, // Lisbon
	{"OSL", "NO"}, // Oslo
	{"CPH", "DK"}, // Copenhagen
	{"ARN", "SE"}, // Stockholm

	// Europe - Other
	{"DUB", "IE"}, // Dublin
	{"ATH", "GR"}, // Athens
	{"BRU", "BE"}, // Brussels
	{"WAW", "PL"}, // Warsaw
	{"IST", "TR"}, // Istanbul
	{"AYT", "TR"}, // Antalya
	{"SAW", "TR"}, // Istanbul Sabiha
	{"DME", "RU"}, // Moscow Domodedovo
	{"SVO", "RU"}, // Moscow Sheremetyevo

	// Asia - Japan & Korea
	{"HND", "JP"}, // Tokyo Haneda
	{"NRT", "JP"}, // Tokyo Narita
	{"ICN", "KR"}, // Seoul Incheon

	// Asia - China
	{"PVG", "CN"}, // Shanghai Pudong
	{"PEK", "CN"}, // Beijing Capital
	{"CAN", "CN"}, // Guangzhou
	{"SHA", "CN"}, // Shanghai Hongqiao
	{"SZX", "CN"}, // Shenzhen
	{"CTU", "CN"}, // Chengdu
	{"KMG", "CN"}, // Kunming
	{"XIY", "CN"}, // Xi'an
	{"HGH", "CN"}, // Hangzhou
	{"CKG", "CN"}, // Chongqing
	{"NKG", "CN"}, // Nanjing
	{"TAO", "CN"}, // Qingdao
	{"WUH", "CN"}, // Wuhan
	{"CSX", "CN"}, // Changsha

	// Asia - Greater China
	{"HKG", "HK"}, // Hong Kong
	{"TPE", "TW"}, // Taipei

	// Asia - Southeast Asia
	{"SIN", "SG"}, // Singapore
	{"BKK", "TH"}, // Bangkok
	{"KUL", "MY"}, // Kuala Lumpur
	{"MNL", "PH"}, // Manila
	{"CGK", "ID"}, // Jakarta

	// Asia - South Asia
	{"DEL", "IN"}, // Delhi
	{"BOM", "IN"}, // Mumbai

	// Asia - Middle East
	{"DXB", "AE"}, // Dubai
	{"DOH", "QA"}, // Doha
	{"AUH", "AE"}, // Abu Dhabi

	// Oceania
	{"SYD", "AU"}, // Sydney
	{"MEL", "AU"}, // Melbourne

	// South America
	{"GRU", "BR"}, // Sao Paulo
	{"BOG", "CO"}, // Bogota

	// Africa
	{"JNB", "ZA"}, // Johannesburg
	{"CMN", "MA"}, // Casablanca
	{"CAI", "EG"}, // Cairo
}
