package client

import (
	"strconv"

	"github.com/apimgr/ipweather/src/models"
)

// fieldSelector is a flag that prints one value instead of the full report
type fieldSelector struct {
	Flag  string
	Usage string
	Value func(models.Snapshot) string
}

// fieldSelectors is in priority order: when several flags are set, the first wins
var fieldSelectors = []fieldSelector{
	{"temperature", "Display only the temperature", func(s models.Snapshot) string {
		return formatValue(s.Weather.Current.Temperature)
	}},
	{"humidity", "Display only the relative humidity", func(s models.Snapshot) string {
		return formatValue(s.Weather.Current.RelativeHumidity)
	}},
	{"apparent-temperature", "Display only the apparent temperature", func(s models.Snapshot) string {
		return formatValue(s.Weather.Current.ApparentTemperature)
	}},
	{"nightorday", "Show 0 for night and 1 for day", func(s models.Snapshot) string {
		return strconv.Itoa(s.Weather.Current.IsDay)
	}},
	{"precipitation", "Display only the precipitation", func(s models.Snapshot) string {
		return formatValue(s.Weather.Current.Precipitation)
	}},
	{"rain", "Display only the rain", func(s models.Snapshot) string {
		return formatValue(s.Weather.Current.Rain)
	}},
	{"showers", "Display only the showers", func(s models.Snapshot) string {
		return formatValue(s.Weather.Current.Showers)
	}},
	{"snowfall", "Display only the snowfall", func(s models.Snapshot) string {
		return formatValue(s.Weather.Current.Snowfall)
	}},
	{"ip", "Display only the IP", func(s models.Snapshot) string {
		return s.Address.IP
	}},
}

// selectField returns the highest-priority selector whose flag is set
func selectField(enabled map[string]bool) (fieldSelector, bool) {
	for _, sel := range fieldSelectors {
		if enabled[sel.Flag] {
			return sel, true
		}
	}
	return fieldSelector{}, false
}

// formatValue prints a measurement in its shortest exact decimal form
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
