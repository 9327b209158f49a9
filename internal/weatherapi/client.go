package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/evanhutnik/castcheck-service/internal/common"
	t "github.com/evanhutnik/castcheck-service/internal/types"
)

type ClientOption func(*Client)

type Client struct {
	apiKey  string
	baseUrl string
}

func ApiKeyOption(apiKey string) ClientOption {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

func BaseUrlOption(baseUrl string) ClientOption {
	return func(c *Client) {
		c.baseUrl = baseUrl
	}
}

func New(opts ...ClientOption) *Client {
	c := &Client{}

	for _, opt := range opts {
		opt(c)
	}

	if c.apiKey == "" {
		panic("Missing apikey in weatherapi client")
	}
	if c.baseUrl == "" {
		panic("Missing baseUrl in weatherapi client")
	}
	return c
}

// GetFishingConditions fetches the 3-day marine forecast for one coordinate
// and maps it into the internal shape. One request, no retries; a provider
// failure surfaces as an error carrying the status text.
func (c Client) GetFishingConditions(ctx context.Context, lat float64, lon float64) (*t.FishingConditions, error) {
	req, err := url.Parse(fmt.Sprintf("%v/marine.json", c.baseUrl))
	if err != nil {
		err = errors.New(fmt.Sprintf("failed to parse baseUrl %s: %s", c.baseUrl, err.Error()))
		return nil, err
	}

	q := req.Query()
	q.Add("key", c.apiKey)
	q.Add("q", fmt.Sprintf("%v,%v", lat, lon))
	q.Add("tides", "yes")
	q.Add("days", "3")
	req.RawQuery = q.Encode()

	ctxReq, _ := http.NewRequestWithContext(ctx, "GET", req.String(), nil)
	resp, err := common.Get(ctxReq, "weatherapi")
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err = errors.New(fmt.Sprintf("error reading body of response: %s", err.Error()))
		return nil, err
	}

	var respObj t.WAResponse
	err = json.Unmarshal(body, &respObj)
	if err != nil {
		err = errors.New(fmt.Sprintf("error unmarshalling response from weatherapi: %s", err.Error()))
		return nil, err
	}

	if len(respObj.Forecast.ForecastDay) == 0 {
		return nil, errors.New("weatherapi response contains no forecast days")
	}

	return c.fishingConditionsFromWA(respObj), nil
}

func (c Client) fishingConditionsFromWA(raw t.WAResponse) *t.FishingConditions {
	forecast := make([]t.ForecastDay, 0, len(raw.Forecast.ForecastDay))
	for _, day := range raw.Forecast.ForecastDay {
		tides := []t.TideEvent{}
		if len(day.Day.Tides) > 0 && day.Day.Tides[0].Tide != nil {
			tides = day.Day.Tides[0].Tide
		}

		hourly := make([]t.HourlyObservation, 0, len(day.Hour))
		for _, hour := range day.Hour {
			hourly = append(hourly, t.HourlyObservation{
				Time:          hour.Time,
				Temp:          hour.TempC,
				WaterTemp:     hour.WaterTempC,
				WindSpeed:     hour.WindKph,
				WindDir:       hour.WindDir,
				WaveHeight:    hour.SigHtMt,
				SwellHeight:   hour.SwellHtMt,
				Visibility:    hour.VisKm,
				Condition:     hour.Condition.Text,
				Precipitation: hour.PrecipMm,
			})
		}

		forecast = append(forecast, t.ForecastDay{
			Date:             day.Date,
			Tides:            tides,
			MoonPhase:        day.Astro.MoonPhase,
			MoonIllumination: day.Astro.MoonIllumination,
			Sunrise:          day.Astro.Sunrise,
			Sunset:           day.Astro.Sunset,
			Summary: t.DaySummary{
				MaxTemp:       day.Day.MaxTempC,
				MinTemp:       day.Day.MinTempC,
				MaxWind:       day.Day.MaxWindKph,
				Precipitation: day.Day.TotalPrecipMm,
				Condition:     day.Day.Condition.Text,
			},
			Hourly: hourly,
		})
	}

	return &t.FishingConditions{
		Location: t.ForecastLocation{
			Name: raw.Location.Name,
			Lat:  raw.Location.Lat,
			Lon:  raw.Location.Lon,
		},
		Forecast: forecast,
	}
}
