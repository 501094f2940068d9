package domain

import "strings"

// DefaultEmergencyNumber is used whenever the country cannot be resolved or
// is not in the dial table.
const DefaultEmergencyNumber = "911"

var emergencyNumbers = map[string]string{
	"US": "911",
	"IN": "112",
	"GB": "999",
	"AU": "000",
	"CA": "911",
	"EU": "112",
}

// EmergencyNumberFor maps an ISO country short code to its dial number.
// Unknown and empty codes yield DefaultEmergencyNumber.
func EmergencyNumberFor(countryCode string) string {
	if n, ok := emergencyNumbers[strings.ToUpper(strings.TrimSpace(countryCode))]; ok {
		return n
	}
	return DefaultEmergencyNumber
}

// KnownCountry reports whether countryCode has an explicit dial table entry.
func KnownCountry(countryCode string) bool {
	_, ok := emergencyNumbers[strings.ToUpper(strings.TrimSpace(countryCode))]
	return ok
}

func DialURI(number string) string { return "tel:" + number }
