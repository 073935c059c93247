package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Zone is one demo hotspot loaded into heatmap_data.
type Zone struct {
	Name        string   `json:"name"`
	Latitude    float64  `json:"lat"`
	Longitude   float64  `json:"lng"`
	Temperature *float64 `json:"temperature"`
}

func celsius(v float64) *float64 { return &v }

// defaultZones are the hotspots shown by the dashboard demo.
var defaultZones = []Zone{
	{Name: "Central Delhi", Latitude: 28.6139, Longitude: 77.2090, Temperature: celsius(47)},
	{Name: "South Mumbai", Latitude: 18.9220, Longitude: 72.8347, Temperature: celsius(39)},
	{Name: "Bangalore East", Latitude: 12.9716, Longitude: 77.5946, Temperature: celsius(34)},
	{Name: "Jaipur Old City", Latitude: 26.9124, Longitude: 75.7873, Temperature: celsius(46)},
	{Name: "Chennai Marina", Latitude: 13.0827, Longitude: 80.2707, Temperature: celsius(38)},
	{Name: "Kolkata North", Latitude: 22.5726, Longitude: 88.3639, Temperature: celsius(37)},
	{Name: "Ahmedabad West", Latitude: 23.0225, Longitude: 72.5714, Temperature: celsius(45)},
	{Name: "Pune Camp", Latitude: 18.5204, Longitude: 73.8567, Temperature: celsius(35)},
	{Name: "Hyderabad Central", Latitude: 17.3850, Longitude: 78.4867, Temperature: celsius(41)},
	{Name: "Shimla Hills", Latitude: 31.1048, Longitude: 77.1734, Temperature: celsius(28)},
}

// loadZones reads a JSON array of zones from path, or returns the built-in
// set when path is empty.
func loadZones(path string) ([]Zone, error) {
	if path == "" {
		return defaultZones, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zones: %w", err)
	}
	var zones []Zone
	if err := json.Unmarshal(data, &zones); err != nil {
		return nil, fmt.Errorf("parse zones %s: %w", path, err)
	}
	return zones, nil
}
