package geocode

import "strings"

type knownPlace struct {
	key     string
	lat     float64
	lng     float64
	city    string
	country string
}

// knownPlaces covers common production towns when the live service fails.
var knownPlaces = []knownPlace{
	{"dublin", 53.3498, -6.2603, "Dublin", "Ireland"},
	{"cork", 51.8985, -8.4756, "Cork", "Ireland"},
	{"galway", 53.2707, -9.0568, "Galway", "Ireland"},
	{"kilkenny", 52.6541, -7.2448, "Kilkenny", "Ireland"},
	{"wicklow", 52.9808, -6.0331, "Wicklow", "Ireland"},
	{"waterford", 52.2593, -7.1101, "Waterford", "Ireland"},
	{"london", 51.5074, -0.1278, "London", "UK"},
	{"edinburgh", 55.9533, -3.1883, "Edinburgh", "Scotland"},
	{"cardiff", 51.4816, -3.1791, "Cardiff", "Wales"},
	{"belfast", 54.5973, -5.9301, "Belfast", "Northern Ireland"},
	{"manchester", 53.4808, -2.2426, "Manchester", "UK"},
	{"birmingham", 52.4862, -1.8904, "Birmingham", "UK"},
	{"paris", 48.8566, 2.3522, "Paris", "France"},
	{"rome", 41.9028, 12.4964, "Rome", "Italy"},
	{"prague", 50.0755, 14.4378, "Prague", "Czech Republic"},
	{"budapest", 47.4979, 19.0402, "Budapest", "Hungary"},
	{"barcelona", 41.3851, 2.1734, "Barcelona", "Spain"},
	{"amsterdam", 52.3676, 4.9041, "Amsterdam", "Netherlands"},
}

// fallbackSearch matches the query against knownPlaces: exact key first,
// then substring matches either way round.
func fallbackSearch(query string, limit int) []Place {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []Place
	seen := make(map[string]bool)
	add := func(k knownPlace) {
		if seen[k.key] || len(out) >= limit {
			return
		}
		seen[k.key] = true
		display := k.city + ", " + k.country
		out = append(out, Place{
			DisplayName:      display,
			FormattedAddress: display,
			City:             k.city,
			Country:          k.country,
			Latitude:         k.lat,
			Longitude:        k.lng,
		})
	}
	for _, k := range knownPlaces {
		if k.key == q {
			add(k)
		}
	}
	for _, k := range knownPlaces {
		if strings.Contains(k.key, q) || strings.Contains(q, k.key) {
			add(k)
		}
	}
	return out
}
