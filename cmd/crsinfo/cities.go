package main

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type city struct {
	Name       string
	Country    string
	Longitude  float64
	Latitude   float64
	Population int
	Capital    bool
}

var cities = []city{
	{"Tokyo", "Japan", 139.6917, 35.6895, 13960000, true},
	{"New York", "United States", -73.9857, 40.7484, 8336817, false},
	{"London", "United Kingdom", -0.1276, 51.5074, 8982000, true},
	{"Paris", "France", 2.3522, 48.8566, 2161000, true},
	{"Beijing", "China", 116.4074, 39.9042, 21540000, true},
	{"Moscow", "Russia", 37.6173, 55.7558, 12615000, true},
	{"São Paulo", "Brazil", -46.6333, -23.5505, 12300000, false},
	{"Mumbai", "India", 72.8777, 19.0760, 12400000, false},
	{"Los Angeles", "United States", -118.2437, 34.0522, 3971883, false},
	{"Shanghai", "China", 121.4737, 31.2304, 24870000, false},
	{"Istanbul", "Turkey", 28.9784, 41.0082, 15520000, false},
	{"Buenos Aires", "Argentina", -58.3816, -34.6037, 3075646, true},
	{"Cairo", "Egypt", 31.2357, 30.0444, 10230000, true},
	{"Sydney", "Australia", 151.2093, -33.8688, 5312000, false},
	{"Berlin", "Germany", 13.4050, 52.5200, 3669491, true},
}

// cityFeatures returns the cities as longitude, latitude points. project maps
// each position into the target CRS; cities it rejects are left out.
func cityFeatures(project func(lon, lat float64) (orb.Point, bool)) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, c := range cities {
		p, ok := project(c.Longitude, c.Latitude)
		if !ok {
			continue
		}
		f := geojson.NewFeature(p)
		f.Properties = geojson.Properties{
			"name":       c.Name,
			"country":    c.Country,
			"population": c.Population,
			"capital":    c.Capital,
		}
		fc.Append(f)
	}
	return fc
}
