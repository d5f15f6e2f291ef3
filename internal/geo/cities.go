package geo

import (
	"strings"

	"freight-match-service/internal/domain"
)

type cityEntry struct {
	City  string
	State string
	Lat   float64
	Lon   float64
}

// Built-in lookup table covering major US freight markets. Entries are
// ordered; the first city-name match serves as the best-effort fallback when
// the requested state has no entry.
var cities = []cityEntry{
	{"Atlanta", "GA", 33.7490, -84.3880},
	{"Austin", "TX", 30.2672, -97.7431},
	{"Baltimore", "MD", 39.2904, -76.6122},
	{"Birmingham", "AL", 33.5186, -86.8104},
	{"Boise", "ID", 43.6150, -116.2023},
	{"Boston", "MA", 42.3601, -71.0589},
	{"Charlotte", "NC", 35.2271, -80.8431},
	{"Chicago", "IL", 41.8781, -87.6298},
	{"Cincinnati", "OH", 39.1031, -84.5120},
	{"Cleveland", "OH", 41.4993, -81.6944},
	{"Columbus", "OH", 39.9612, -82.9988},
	{"Dallas", "TX", 32.7767, -96.7970},
	{"Denver", "CO", 39.7392, -104.9903},
	{"Des Moines", "IA", 41.5868, -93.6250},
	{"Detroit", "MI", 42.3314, -83.0458},
	{"El Paso", "TX", 31.7619, -106.4850},
	{"Fort Worth", "TX", 32.7555, -97.3308},
	{"Fresno", "CA", 36.7378, -119.7871},
	{"Grand Rapids", "MI", 42.9634, -85.6681},
	{"Green Bay", "WI", 44.5133, -88.0133},
	{"Houston", "TX", 29.7604, -95.3698},
	{"Indianapolis", "IN", 39.7684, -86.1581},
	{"Jacksonville", "FL", 30.3322, -81.6557},
	{"Joliet", "IL", 41.5250, -88.0817},
	{"Kansas City", "MO", 39.0997, -94.5786},
	{"Laredo", "TX", 27.5306, -99.4803},
	{"Las Vegas", "NV", 36.1699, -115.1398},
	{"Little Rock", "AR", 34.7465, -92.2896},
	{"Los Angeles", "CA", 34.0522, -118.2437},
	{"Louisville", "KY", 38.2527, -85.7585},
	{"Memphis", "TN", 35.1495, -90.0490},
	{"Miami", "FL", 25.7617, -80.1918},
	{"Milwaukee", "WI", 43.0389, -87.9065},
	{"Minneapolis", "MN", 44.9778, -93.2650},
	{"Nashville", "TN", 36.1627, -86.7816},
	{"New Orleans", "LA", 29.9511, -90.0715},
	{"New York", "NY", 40.7128, -74.0060},
	{"Newark", "NJ", 40.7357, -74.1724},
	{"Oakland", "CA", 37.8044, -122.2712},
	{"Oklahoma City", "OK", 35.4676, -97.5164},
	{"Omaha", "NE", 41.2565, -95.9345},
	{"Orlando", "FL", 28.5383, -81.3792},
	{"Philadelphia", "PA", 39.9526, -75.1652},
	{"Phoenix", "AZ", 33.4484, -112.0740},
	{"Pittsburgh", "PA", 40.4406, -79.9959},
	{"Portland", "OR", 45.5152, -122.6784},
	{"Raleigh", "NC", 35.7796, -78.6382},
	{"Reno", "NV", 39.5296, -119.8138},
	{"Richmond", "VA", 37.5407, -77.4360},
	{"Rockford", "IL", 42.2711, -89.0940},
	{"Sacramento", "CA", 38.5816, -121.4944},
	{"Salt Lake City", "UT", 40.7608, -111.8910},
	{"San Antonio", "TX", 29.4241, -98.4936},
	{"San Diego", "CA", 32.7157, -117.1611},
	{"San Francisco", "CA", 37.7749, -122.4194},
	{"Savannah", "GA", 32.0809, -81.0912},
	{"Seattle", "WA", 47.6062, -122.3321},
	{"Spokane", "WA", 47.6588, -117.4260},
	{"Springfield", "MO", 37.2090, -93.2923},
	{"St. Louis", "MO", 38.6270, -90.1994},
	{"Stockton", "CA", 37.9577, -121.2908},
	{"Tampa", "FL", 27.9506, -82.4572},
	{"Toledo", "OH", 41.6528, -83.5379},
	{"Tucson", "AZ", 32.2226, -110.9747},
	{"Tulsa", "OK", 36.1540, -95.9928},
}

var (
	cityByKey  map[string]domain.Coordinates
	cityByName map[string]domain.Coordinates
)

func init() {
	cityByKey = make(map[string]domain.Coordinates, len(cities))
	cityByName = make(map[string]domain.Coordinates, len(cities))
	for _, e := range cities {
		c := domain.Coordinates{Lat: e.Lat, Lon: e.Lon}
		cityByKey[cityKey(e.City, e.State)] = c

		// First entry wins so the state-mismatch fallback is deterministic.
		name := strings.ToLower(e.City)
		if _, ok := cityByName[name]; !ok {
			cityByName[name] = c
		}
	}
}

func cityKey(city, state string) string {
	return strings.ToLower(city) + "|" + strings.ToUpper(state)
}
