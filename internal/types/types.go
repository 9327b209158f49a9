package types

type Location struct {
	LocationID       int64   `db:"location_id" json:"location_id"`
	Name             string  `db:"name" json:"name"`
	Description      string  `db:"description" json:"description,omitempty"`
	Latitude         float64 `db:"latitude" json:"latitude"`
	Longitude        float64 `db:"longitude" json:"longitude"`
	LocationType     string  `db:"location_type" json:"location_type,omitempty"`
	WaterBodyName    string  `db:"water_body_name" json:"water_body_name,omitempty"`
	AccessType       string  `db:"access_type" json:"access_type,omitempty"`
	ParkingAvailable int     `db:"parking_available" json:"parking_available"`
	BoatRamp         int     `db:"boat_ramp" json:"boat_ramp"`
	ShoreFishing     int     `db:"shore_fishing" json:"shore_fishing"`
	Rating           float64 `db:"rating" json:"rating,omitempty"`

	// Miles from the query center, populated by the radius query.
	Distance float64 `db:"-" json:"distance,omitempty"`
}

type ForecastLocation struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type TideEvent struct {
	Time   string `json:"tide_time"`
	Height string `json:"tide_height_mt"`
	Type   string `json:"tide_type"` // HIGH or LOW
}

type DaySummary struct {
	MaxTemp       float64 `json:"maxTemp"`
	MinTemp       float64 `json:"minTemp"`
	MaxWind       float64 `json:"maxWind"`
	Precipitation float64 `json:"precipitation"`
	Condition     string  `json:"condition"`
}

type HourlyObservation struct {
	Time          string  `json:"time"`
	Temp          float64 `json:"temp"`
	WaterTemp     float64 `json:"waterTemp"`
	WindSpeed     float64 `json:"windSpeed"`
	WindDir       string  `json:"windDir"`
	WaveHeight    float64 `json:"waveHeight"`
	SwellHeight   float64 `json:"swellHeight"`
	Visibility    float64 `json:"visibility"`
	Condition     string  `json:"condition"`
	Precipitation float64 `json:"precipitation"`
}

type ForecastDay struct {
	Date             string              `json:"date"`
	Tides            []TideEvent         `json:"tides"`
	MoonPhase        string              `json:"moonPhase"`
	MoonIllumination float64             `json:"moonIllumination"`
	Sunrise          string              `json:"sunrise"`
	Sunset           string              `json:"sunset"`
	Summary          DaySummary          `json:"summary"`
	Hourly           []HourlyObservation `json:"hourly"`
}

// FishingConditions is the 3-day marine forecast for one coordinate.
// Forecast[0] is today.
type FishingConditions struct {
	Location ForecastLocation `json:"location"`
	Forecast []ForecastDay    `json:"forecast"`
}

type LocationWeatherResult struct {
	LocationID   int64             `json:"locationId"`
	LocationName string            `json:"locationName"`
	Location     Location          `json:"location"`
	Weather      FishingConditions `json:"weather"`
	Distance     float64           `json:"distance"`
}

type LocationWeatherError struct {
	LocationID   int64   `json:"locationId"`
	LocationName string  `json:"locationName"`
	Error        string  `json:"error"`
	Distance     float64 `json:"distance"`
}

type ScoreBreakdown struct {
	WeatherComfort  float64 `json:"weatherComfort"`
	FishActivity    float64 `json:"fishActivity"`
	WaterConditions float64 `json:"waterConditions"`
}

type LocationRecommendation struct {
	LocationWeatherResult
	Score     float64        `json:"score"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// External Objects

type WAResponse struct {
	Location WALocation `json:"location"`
	Forecast WAForecast `json:"forecast"`
}

type WALocation struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type WAForecast struct {
	ForecastDay []WAForecastDay `json:"forecastday"`
}

type WAForecastDay struct {
	Date  string   `json:"date"`
	Day   WADay    `json:"day"`
	Astro WAAstro  `json:"astro"`
	Hour  []WAHour `json:"hour"`
}

type WADay struct {
	MaxTempC      float64       `json:"maxtemp_c"`
	MinTempC      float64       `json:"mintemp_c"`
	MaxWindKph    float64       `json:"maxwind_kph"`
	TotalPrecipMm float64       `json:"totalprecip_mm"`
	Condition     WACondition   `json:"condition"`
	Tides         []WATideGroup `json:"tides"`
}

type WACondition struct {
	Text string `json:"text"`
}

type WATideGroup struct {
	Tide []TideEvent `json:"tide"`
}

type WAAstro struct {
	Sunrise          string  `json:"sunrise"`
	Sunset           string  `json:"sunset"`
	MoonPhase        string  `json:"moon_phase"`
	MoonIllumination float64 `json:"moon_illumination"`
}

type WAHour struct {
	Time       string      `json:"time"`
	TempC      float64     `json:"temp_c"`
	WaterTempC float64     `json:"water_temp_c"`
	WindKph    float64     `json:"wind_kph"`
	WindDir    string      `json:"wind_dir"`
	SigHtMt    float64     `json:"sig_ht_mt"`
	SwellHtMt  float64     `json:"swell_ht_mt"`
	VisKm      float64     `json:"vis_km"`
	Condition  WACondition `json:"condition"`
	PrecipMm   float64     `json:"precip_mm"`
}
