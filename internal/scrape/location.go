package scrape

import "strings"

// Non-US tokens. Checked before the allowlist on purpose: "Remote (UK,
// EMEA)" must fail here before "remote" gets a chance to match below.
var nonUSTokens = []string{
	"spain", "poland", " uk", "united kingdom", "canada", "germany",
	"france", "india", "singapore", "japan", "australia", "brazil",
	"mexico", "ireland", "netherlands", "sweden", "israel", "china",
	"hong kong", "taiwan", "korea", "dubai", "uae", "italy", "portugal",
	"switzerland", "austria", "belgium", "denmark", "norway", "finland",
	"london", "toronto", "vancouver", "montreal", "berlin", "paris",
	"amsterdam", "dublin", "sydney", "melbourne",
	"bangalore", "mumbai", "tel aviv", "tokyo", "seoul",
	"mexico city", "sao paulo", "warsaw", "prague",
	", uk", ", ca,", ", de", ", fr", ", jp", ", au", ", sg", ", in",
	", mx", "ontario", "british columbia", "emea", "apac", "latam",
}

var usIndicatorTokens = []string{
	"united states", "usa", "u.s.", ", us", "- us", "remote - us",
	"remote us", "(us)", "remote, us", "remote (us)", "us remote",
	"remote",
	"california", "new york", "texas", "washington", "colorado",
	"massachusetts", "illinois", "georgia", "florida", "arizona",
	"oregon", "virginia", "north carolina", "pennsylvania", "ohio",
	"san francisco", "nyc", "seattle", "austin", "boston",
	"los angeles", "chicago", "denver", "atlanta", "miami",
	"palo alto", "mountain view", "menlo park", "sunnyvale",
	"san jose", "san diego", "portland", "phoenix", "dallas",
	"bay area", "sf", "salt lake", "bellevue", "brooklyn",
}

// LocationFilter decides whether a free-text location string reads as US.
// No signal at all means exclude; missed jobs are caught on a later run
// once the board publishes a real location.
type LocationFilter struct {
	block []string
	allow []string
}

// NewLocationFilter layers configured tokens on top of the built-in lists.
func NewLocationFilter(extraBlock, extraAllow []string) *LocationFilter {
	f := &LocationFilter{
		block: append([]string{}, nonUSTokens...),
		allow: append([]string{}, usIndicatorTokens...),
	}
	for _, b := range extraBlock {
		if b = strings.ToLower(strings.TrimSpace(b)); b != "" {
			f.block = append(f.block, b)
		}
	}
	for _, a := range extraAllow {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			f.allow = append(f.allow, a)
		}
	}
	return f
}

func (f *LocationFilter) IsUS(location string) bool {
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "" {
		return false
	}

	// Blocklist wins and short-circuits.
	for _, b := range f.block {
		if strings.Contains(loc, b) {
			return false
		}
	}

	for _, a := range f.allow {
		if strings.Contains(loc, a) {
			return true
		}
	}
	return false
}
