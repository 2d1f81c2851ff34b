package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/apimgr/ipweather/src/models"
)

// DefaultWeatherURL is the Open-Meteo forecast endpoint
const DefaultWeatherURL = "https://api.open-meteo.com/v1/forecast"

// CurrentFields is the fixed list of current-condition variables requested
var CurrentFields = []string{
	"temperature_2m",
	"relative_humidity_2m",
	"apparent_temperature",
	"is_day",
	"precipitation",
	"rain",
	"showers",
	"snowfall",
}

// WeatherFetcher returns current conditions at a coordinate
type WeatherFetcher interface {
	FetchWeather(ctx context.Context, latitude, longitude float64) (models.WeatherReport, error)
}

// OpenMeteoFetcher queries the Open-Meteo forecast API
type OpenMeteoFetcher struct {
	http    *HTTPClient
	baseURL string
}

// Ensure OpenMeteoFetcher implements WeatherFetcher.
var _ WeatherFetcher = (*OpenMeteoFetcher)(nil)

// NewOpenMeteoFetcher creates a fetcher for baseURL (DefaultWeatherURL when empty)
func NewOpenMeteoFetcher(client *HTTPClient, baseURL string) *OpenMeteoFetcher {
	if baseURL == "" {
		baseURL = DefaultWeatherURL
	}
	return &OpenMeteoFetcher{http: client, baseURL: baseURL}
}

// FormatCoordinate renders a coordinate as a plain decimal with the
// shortest exact representation
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ForecastURL returns the request URL for the given coordinates
func (f *OpenMeteoFetcher) ForecastURL(latitude, longitude float64) (string, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid weather URL %q: %w", f.baseURL, err)
	}
	params := u.Query()
	params.Set("latitude", FormatCoordinate(latitude))
	params.Set("longitude", FormatCoordinate(longitude))
	params.Set("current", strings.Join(CurrentFields, ","))
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// FetchWeather issues one GET and strictly decodes current and current_units
func (f *OpenMeteoFetcher) FetchWeather(ctx context.Context, latitude, longitude float64) (models.WeatherReport, error) {
	apiURL, err := f.ForecastURL(latitude, longitude)
	if err != nil {
		return models.WeatherReport{}, err
	}

	body, err := f.http.Get(ctx, StageWeather, apiURL)
	if err != nil {
		return models.WeatherReport{}, err
	}
	return decodeWeather(body)
}

func decodeWeather(body []byte) (models.WeatherReport, error) {
	obj, err := parseObject(StageWeather, body)
	if err != nil {
		return models.WeatherReport{}, err
	}

	unitsObj, err := obj.Object("current_units")
	if err != nil {
		return models.WeatherReport{}, err
	}
	currentObj, err := obj.Object("current")
	if err != nil {
		return models.WeatherReport{}, err
	}

	ur := &fieldReader{obj: unitsObj}
	units := models.CurrentUnits{
		Temperature:      ur.str("temperature_2m"),
		RelativeHumidity: ur.str("relative_humidity_2m"),
		Precipitation:    ur.str("precipitation"),
		Rain:             ur.str("rain"),
		Showers:          ur.str("showers"),
		Snowfall:         ur.str("snowfall"),
	}
	if ur.err != nil {
		return models.WeatherReport{}, ur.err
	}

	cr := &fieldReader{obj: currentObj}
	current := models.Current{
		Time:                cr.str("time"),
		Temperature:         cr.number("temperature_2m"),
		RelativeHumidity:    cr.number("relative_humidity_2m"),
		ApparentTemperature: cr.number("apparent_temperature"),
		IsDay:               cr.integer("is_day"),
		Precipitation:       cr.number("precipitation"),
		Rain:                cr.number("rain"),
		Showers:             cr.number("showers"),
		Snowfall:            cr.number("snowfall"),
	}
	if cr.err != nil {
		return models.WeatherReport{}, cr.err
	}

	return models.WeatherReport{Units: units, Current: current}, nil
}
