package scoring

import (
	"errors"
	"math"
	"strconv"
	"strings"

	t "github.com/evanhutnik/castcheck-service/internal/types"
)

// daytimeConditions holds mean hourly metrics over the 6am-6pm window.
type daytimeConditions struct {
	temp          float64
	waterTemp     float64
	windSpeed     float64
	waveHeight    float64
	swellHeight   float64
	visibility    float64
	precipitation float64
}

// Overall scores today's forecast: three 0-100 sub-scores combined with
// equal weighting. Every reported value is rounded to one decimal place.
func Overall(w t.FishingConditions) (float64, t.ScoreBreakdown, error) {
	if len(w.Forecast) == 0 {
		return 0, t.ScoreBreakdown{}, errors.New("forecast has no days")
	}
	today := w.Forecast[0]
	avg := daytimeAverages(today)

	comfort := weatherComfort(avg)
	activity := fishActivity(today, avg)
	water := waterConditions(avg)

	breakdown := t.ScoreBreakdown{
		WeatherComfort:  round1(comfort),
		FishActivity:    round1(activity),
		WaterConditions: round1(water),
	}
	return round1((comfort + activity + water) / 3), breakdown, nil
}

// daytimeAverages returns mean conditions over hourly observations whose
// hour of day falls in [6,18). Nil when no observations fall in the window;
// the sub-scores treat that as a neutral 50.
func daytimeAverages(day t.ForecastDay) *daytimeConditions {
	var hours []t.HourlyObservation
	for _, h := range day.Hourly {
		hr, ok := clockHour(h.Time)
		if ok && hr >= 6 && hr < 18 {
			hours = append(hours, h)
		}
	}
	if len(hours) == 0 {
		return nil
	}

	avg := &daytimeConditions{}
	for _, h := range hours {
		avg.temp += h.Temp
		avg.waterTemp += h.WaterTemp
		avg.windSpeed += h.WindSpeed
		avg.waveHeight += h.WaveHeight
		avg.swellHeight += h.SwellHeight
		avg.visibility += h.Visibility
		avg.precipitation += h.Precipitation
	}
	n := float64(len(hours))
	avg.temp /= n
	avg.waterTemp /= n
	avg.windSpeed /= n
	avg.waveHeight /= n
	avg.swellHeight /= n
	avg.visibility /= n
	avg.precipitation /= n
	return avg
}

// weatherComfort scores air temperature, wind and precipitation.
func weatherComfort(avg *daytimeConditions) float64 {
	if avg == nil {
		return 50
	}

	score := 0.0

	// Temperature (0-40 points), optimal 15-25C
	switch temp := avg.temp; {
	case temp >= 15 && temp <= 25:
		score += 40
	case temp >= 10 && temp < 15, temp > 25 && temp <= 30:
		score += 30
	case temp >= 5 && temp < 10, temp > 30 && temp <= 35:
		score += 15
	default:
		score += 5
	}

	// Wind (0-35 points), lower is better
	switch wind := avg.windSpeed; {
	case wind <= 10:
		score += 35
	case wind <= 20:
		score += 25
	case wind <= 30:
		score += 10
	}

	// Precipitation (0-25 points), lower is better
	switch precip := avg.precipitation; {
	case precip == 0:
		score += 25
	case precip <= 2:
		score += 15
	case precip <= 5:
		score += 5
	}

	return math.Min(100, score)
}

// fishActivity scores moon phase, tide timing and water temperature.
func fishActivity(today t.ForecastDay, avg *daytimeConditions) float64 {
	if avg == nil {
		return 50
	}

	score := 0.0

	// Moon phase (0-25 points): new and full moon feed best
	switch illum := today.MoonIllumination; {
	case illum <= 10 || illum >= 90:
		score += 25
	case illum >= 40 && illum <= 60:
		score += 15
	default:
		score += 20
	}

	// Tide timing (0-40 points)
	switch {
	case hasGoodTideChanges(today.Tides, today.Sunrise, today.Sunset):
		score += 40
	case len(today.Tides) >= 2:
		score += 25
	default:
		score += 15
	}

	// Water temperature (0-35 points), optimal 15-22C for most species
	switch wt := avg.waterTemp; {
	case wt >= 15 && wt <= 22:
		score += 35
	case wt >= 10 && wt < 15, wt > 22 && wt <= 26:
		score += 25
	case wt >= 5 && wt < 10, wt > 26 && wt <= 30:
		score += 10
	default:
		score += 5
	}

	return math.Min(100, score)
}

// waterConditions scores wave height, swell and visibility.
func waterConditions(avg *daytimeConditions) float64 {
	if avg == nil {
		return 50
	}

	score := 0.0

	// Wave height (0-40 points), lower is safer
	switch wave := avg.waveHeight; {
	case wave <= 0.5:
		score += 40
	case wave <= 1.0:
		score += 30
	case wave <= 1.5:
		score += 20
	case wave <= 2.0:
		score += 10
	default:
		score += 5
	}

	// Swell height (0-35 points)
	switch swell := avg.swellHeight; {
	case swell <= 0.5:
		score += 35
	case swell <= 1.0:
		score += 25
	case swell <= 2.0:
		score += 15
	default:
		score += 5
	}

	// Visibility (0-25 points), higher is better
	switch vis := avg.visibility; {
	case vis >= 10:
		score += 25
	case vis >= 7:
		score += 20
	case vis >= 4:
		score += 12
	default:
		score += 5
	}

	return math.Min(100, score)
}

// hasGoodTideChanges reports whether any tide event falls within two hours
// of sunrise or sunset. The comparison is on whole hours only; minutes are
// deliberately ignored.
func hasGoodTideChanges(tides []t.TideEvent, sunrise string, sunset string) bool {
	if len(tides) == 0 {
		return false
	}

	sunriseHour, ok := clockHour(sunrise)
	if !ok {
		return false
	}
	sunsetHour, ok := clockHour(sunset)
	if !ok {
		return false
	}

	for _, tide := range tides {
		tideHour, ok := clockHour(tide.Time)
		if !ok {
			continue
		}
		if (tideHour >= sunriseHour-2 && tideHour <= sunriseHour+2) ||
			(tideHour >= sunsetHour-2 && tideHour <= sunsetHour+2) {
			return true
		}
	}
	return false
}

// clockHour extracts the hour component from strings like "06:23",
// "2026-08-31 06:23" or "06:23 AM".
func clockHour(s string) (int, bool) {
	for _, field := range strings.Fields(s) {
		if !strings.Contains(field, ":") {
			continue
		}
		hour, err := strconv.Atoi(strings.SplitN(field, ":", 2)[0])
		if err != nil {
			return 0, false
		}
		return hour, true
	}
	return 0, false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
