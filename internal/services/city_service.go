package services

import "strings"

const maxCitySuggestions = 10

var popularCities = []string{
	"New York City", "Los Angeles", "Chicago", "San Francisco", "Boston", "Seattle",
	"Austin", "Miami", "Denver", "Atlanta", "London", "Paris", "Berlin", "Madrid",
	"Rome", "Toronto", "Vancouver", "Sydney", "Tokyo", "Seoul", "Singapore",
	"Hong Kong", "Bangkok", "Dubai", "Mexico City", "Moscow",

	"Washington, D.C.", "Philadelphia", "Houston", "Dallas", "San Diego",
	"San Jose", "Phoenix", "Las Vegas", "Orlando", "New Orleans",

	"Amsterdam", "Brussels", "Vienna", "Prague", "Budapest", "Athens",
	"Zurich", "Stockholm", "Copenhagen", "Dublin",

	"São Paulo", "Rio de Janeiro", "Buenos Aires", "Bogotá", "Lima", "Santiago",

	"Beijing", "Shanghai", "Shenzhen", "Guangzhou", "Delhi", "Mumbai",
	"Bengaluru", "Jakarta", "Manila", "Ho Chi Minh City",

	"Istanbul", "Cairo", "Johannesburg", "Nairobi", "Riyadh",
	"Doha", "Abu Dhabi", "Kuwait City", "Casablanca", "Karachi",

	"Melbourne", "Brisbane", "Perth", "Auckland",

	"Saint Petersburg", "Novosibirsk", "Yekaterinburg", "Kazan", "Sochi",

	"Pyongyang", "Hamhung", "Chongjin", "Nampo", "Wonsan",

	"Minneapolis", "Detroit", "Portland", "Charlotte", "Salt Lake City",

	"Chengdu", "Wuhan", "Xi'an", "Hangzhou", "Tianjin",
}

type CityServiceInterface interface {
	SuggestCities(query string) []string
}

type CityService struct {
	cities []string
}

func NewCityService() CityServiceInterface {
	return &CityService{cities: popularCities}
}

// SuggestCities returns up to ten known cities whose name contains query, ignoring case.
// Free text is still accepted as a city; these are hints only.
func (s *CityService) SuggestCities(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]string, 0, maxCitySuggestions)
	for _, c := range s.cities {
		if strings.Contains(strings.ToLower(c), q) {
			out = append(out, c)
			if len(out) == maxCitySuggestions {
				break
			}
		}
	}
	return out
}
