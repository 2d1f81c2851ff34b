// Package models holds the records produced by each stage of a lookup.
// Records are built once from an upstream response and never mutated.
package models

// PublicAddress is the caller's address as seen by an external echo service
type PublicAddress struct {
	IP string `json:"ip"`
}

// Location is the coarse position derived from a public address
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
}

// CurrentUnits holds the unit labels reported alongside current conditions.
// Apparent temperature has no label upstream.
type CurrentUnits struct {
	Temperature      string `json:"temperature"`
	RelativeHumidity string `json:"relative_humidity"`
	Precipitation    string `json:"precipitation"`
	Rain             string `json:"rain"`
	Showers          string `json:"showers"`
	Snowfall         string `json:"snowfall"`
}

// Current holds present-moment measurements
type Current struct {
	Time                string  `json:"time"`
	Temperature         float64 `json:"temperature"`
	RelativeHumidity    float64 `json:"relative_humidity"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	IsDay               int     `json:"is_day"`
	Precipitation       float64 `json:"precipitation"`
	Rain                float64 `json:"rain"`
	Showers             float64 `json:"showers"`
	Snowfall            float64 `json:"snowfall"`
}

// IsNight reports whether the day/night indicator is zero.
// Any non-zero value counts as day.
func (c Current) IsNight() bool {
	return c.IsDay == 0
}

// DayLabel returns "Night" or "Day"
func (c Current) DayLabel() string {
	if c.IsNight() {
		return "Night"
	}
	return "Day"
}

// WeatherReport pairs current conditions with their unit labels
type WeatherReport struct {
	Units   CurrentUnits `json:"units"`
	Current Current      `json:"current"`
}

// Snapshot is the result of a complete lookup
type Snapshot struct {
	Address  PublicAddress `json:"address"`
	Location Location      `json:"location"`
	Weather  WeatherReport `json:"weather"`
}
