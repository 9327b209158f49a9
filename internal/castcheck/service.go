package castcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/evanhutnik/castcheck-service/internal/geo"
	"github.com/evanhutnik/castcheck-service/internal/scoring"
	"github.com/evanhutnik/castcheck-service/internal/store"
	t "github.com/evanhutnik/castcheck-service/internal/types"
	"github.com/evanhutnik/castcheck-service/internal/weatherapi"
)

type RadiusRequest struct {
	latitude  float64
	longitude float64
	radius    float64
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type RecommendedResponse struct {
	Recommendations      []t.LocationRecommendation `json:"recommendations"`
	Failed               []t.LocationWeatherError   `json:"failed"`
	TotalLocations       int                        `json:"totalLocations"`
	SuccessfulScores     int                        `json:"successfulScores"`
	FailedWeatherFetches int                        `json:"failedWeatherFetches"`
}

type RadiusResponse struct {
	Center          Coordinates                `json:"center"`
	Radius          float64                    `json:"radius"`
	TotalLocations  int                        `json:"totalLocations"`
	SuccessfulCount int                        `json:"successfulCount"`
	FailedCount     int                        `json:"failedCount"`
	Locations       []t.LocationWeatherResult `json:"locations"`
	Errors          []t.LocationWeatherError  `json:"errors"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type CodeError struct {
	code int
	msg  string
}

func (c CodeError) Error() string {
	return c.msg
}

type Service struct {
	store        *store.Store
	wa           *weatherapi.Client
	rc           *redis.Client
	disableRedis bool
	cacheTTL     time.Duration
	fanoutLimit  int
	listenAddr   string

	Logger *zap.SugaredLogger
}

func New() *Service {
	s := &Service{}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	s.Logger = baseLogger.Sugar()

	s.wa = weatherapi.New(
		weatherapi.ApiKeyOption(os.Getenv("weatherapi_apikey")),
		weatherapi.BaseUrlOption(os.Getenv("weatherapi_baseurl")),
	)

	st, err := store.Open(os.Getenv("db_path"))
	if err != nil {
		s.Logger.Fatalf("Error opening location store: %v", err.Error())
	}
	s.store = st
	if count, err := st.CountLocations(context.Background()); err == nil {
		s.Logger.Infow("Location store opened", "locations", count)
	}

	s.rc = redis.NewClient(&redis.Options{
		Addr: os.Getenv("redis_address"),
	})

	disableRedis, err := strconv.ParseBool(os.Getenv("disable_redis"))
	if err == nil {
		s.disableRedis = disableRedis
	}

	s.cacheTTL = 30 * time.Minute
	s.fanoutLimit = 8
	if limit, err := strconv.Atoi(os.Getenv("fanout_limit")); err == nil && limit > 0 {
		s.fanoutLimit = limit
	}

	s.listenAddr = os.Getenv("listen_address")
	if s.listenAddr == "" {
		s.listenAddr = ":80"
	}

	return s
}

func (s *Service) Start() {
	router := mux.NewRouter()
	router.HandleFunc("/recommended", s.RecommendedHandler).Methods("GET")
	router.HandleFunc("/weather/radius", s.WeatherRadiusHandler).Methods("GET")
	router.HandleFunc("/weather/location", s.WeatherLocationHandler).Methods("GET")

	_ = http.ListenAndServe(s.listenAddr, router)
}

func (s *Service) RecommendedHandler(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRadiusRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp, err := s.Recommended(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, resp)
}

// Recommended runs the full pipeline: radius query, forecast fan-out,
// scoring, and assembly sorted descending by overall score.
func (s *Service) Recommended(ctx context.Context, req *RadiusRequest) (*RecommendedResponse, error) {
	results, err := s.fetchWeatherForRadius(ctx, req)
	if err != nil {
		return nil, err
	}

	recommendations := make([]t.LocationRecommendation, 0, len(results.successful))
	failed := results.failed
	for _, result := range results.successful {
		score, breakdown, err := scoring.Overall(result.Weather)
		if err != nil {
			s.Logger.Warnw("Error scoring location forecast",
				"location", result.LocationName, "error", err.Error())
			failed = append(failed, t.LocationWeatherError{
				LocationID:   result.LocationID,
				LocationName: result.LocationName,
				Error:        err.Error(),
				Distance:     result.Distance,
			})
			continue
		}
		recommendations = append(recommendations, t.LocationRecommendation{
			LocationWeatherResult: result,
			Score:                 score,
			Breakdown:             breakdown,
		})
	}

	// Stable sort keeps closer locations first on score ties.
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})
	sort.SliceStable(failed, func(i, j int) bool {
		return failed[i].Distance < failed[j].Distance
	})

	return &RecommendedResponse{
		Recommendations:      recommendations,
		Failed:               failed,
		TotalLocations:       len(recommendations) + len(failed),
		SuccessfulScores:     len(recommendations),
		FailedWeatherFetches: len(failed),
	}, nil
}

func (s *Service) WeatherRadiusHandler(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRadiusRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	results, err := s.fetchWeatherForRadius(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeResponse(w, &RadiusResponse{
		Center:          Coordinates{Latitude: req.latitude, Longitude: req.longitude},
		Radius:          req.radius,
		TotalLocations:  len(results.successful) + len(results.failed),
		SuccessfulCount: len(results.successful),
		FailedCount:     len(results.failed),
		Locations:       results.successful,
		Errors:          results.failed,
	})
}

func (s *Service) WeatherLocationHandler(w http.ResponseWriter, r *http.Request) {
	lat, err := parseFloatParam(r, "latitude")
	if err != nil {
		s.writeError(w, err)
		return
	}
	lon, err := parseFloatParam(r, "longitude")
	if err != nil {
		s.writeError(w, err)
		return
	}

	weather, err := s.locationWeather(r.Context(), lat, lon)
	if err != nil {
		s.Logger.Warnf("Error fetching weather for (%v,%v): %v", lat, lon, err.Error())
		s.writeError(w, CodeError{code: 404, msg: "Error fetching location weather conditions"})
		return
	}
	s.writeResponse(w, weather)
}

func (s *Service) parseRadiusRequest(r *http.Request) (*RadiusRequest, error) {
	q := r.URL.Query()
	if q.Get("latitude") == "" || q.Get("longitude") == "" || q.Get("radius") == "" {
		return nil, CodeError{code: 400, msg: "Missing required parameters: latitude, longitude, and radius are required"}
	}

	lat, latErr := strconv.ParseFloat(q.Get("latitude"), 64)
	lon, lonErr := strconv.ParseFloat(q.Get("longitude"), 64)
	radius, radErr := strconv.ParseFloat(q.Get("radius"), 64)
	if latErr != nil || lonErr != nil || radErr != nil {
		return nil, CodeError{code: 400, msg: "Invalid parameters: latitude, longitude, and radius must be valid numbers"}
	}

	if flags := geo.ValidateRadius(lat, lon, radius); len(flags) > 0 {
		return nil, CodeError{code: 400, msg: strings.Join(flags, "\n")}
	}

	return &RadiusRequest{latitude: lat, longitude: lon, radius: radius}, nil
}

type radiusWeather struct {
	successful []t.LocationWeatherResult
	failed     []t.LocationWeatherError
}

// fetchOutcome is one candidate's slot in the fan-out. Each slot is written
// by exactly one goroutine, so aggregation needs no locking.
type fetchOutcome struct {
	location t.Location
	distance float64
	weather  *t.FishingConditions
	err      error
}

// fetchWeatherForRadius fans out one forecast fetch per matched location.
// Failures are isolated per location and never abort siblings; both output
// lists are sorted by distance only after every fetch completes, since
// completion order is unspecified.
func (s *Service) fetchWeatherForRadius(ctx context.Context, req *RadiusRequest) (*radiusWeather, error) {
	candidates, err := s.store.QueryRadius(ctx, req.latitude, req.longitude, req.radius)
	if err != nil {
		s.Logger.Errorw("Error querying locations in radius",
			"latitude", req.latitude, "longitude", req.longitude, "radius", req.radius,
			"error", err.Error())
		return nil, CodeError{code: 500, msg: "Internal error querying locations"}
	}

	out := &radiusWeather{
		successful: []t.LocationWeatherResult{},
		failed:     []t.LocationWeatherError{},
	}
	if len(candidates) == 0 {
		return out, nil
	}

	outcomes := make([]fetchOutcome, len(candidates))
	g := new(errgroup.Group)
	g.SetLimit(s.fanoutLimit)
	for i, loc := range candidates {
		i, loc := i, loc
		g.Go(func() error {
			weather, err := s.locationWeather(ctx, loc.Latitude, loc.Longitude)
			outcomes[i] = fetchOutcome{
				location: loc,
				distance: geo.Distance(req.latitude, req.longitude, loc.Latitude, loc.Longitude),
				weather:  weather,
				err:      err,
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, outcome := range outcomes {
		if outcome.err != nil {
			s.Logger.Warnw("Failed to fetch weather for location",
				"location", outcome.location.Name, "locationId", outcome.location.LocationID,
				"error", outcome.err.Error())
			out.failed = append(out.failed, t.LocationWeatherError{
				LocationID:   outcome.location.LocationID,
				LocationName: outcome.location.Name,
				Error:        outcome.err.Error(),
				Distance:     outcome.distance,
			})
			continue
		}
		out.successful = append(out.successful, t.LocationWeatherResult{
			LocationID:   outcome.location.LocationID,
			LocationName: outcome.location.Name,
			Location:     outcome.location,
			Weather:      *outcome.weather,
			Distance:     outcome.distance,
		})
	}

	sort.SliceStable(out.successful, func(i, j int) bool {
		return out.successful[i].Distance < out.successful[j].Distance
	})
	sort.SliceStable(out.failed, func(i, j int) bool {
		return out.failed[i].Distance < out.failed[j].Distance
	})

	return out, nil
}

// locationWeather fetches the forecast for one coordinate, going through
// the redis cache when it is enabled.
func (s *Service) locationWeather(ctx context.Context, lat float64, lon float64) (*t.FishingConditions, error) {
	cacheKey := fmt.Sprintf("forecast:%.4f,%.4f", lat, lon)
	if !s.disableRedis {
		cached, err := s.rc.Get(ctx, cacheKey).Result()
		if err == nil {
			var weather t.FishingConditions
			if err := json.Unmarshal([]byte(cached), &weather); err != nil {
				s.Logger.Errorf("Error unmarshalling cached forecast for %v: %v", cacheKey, err.Error())
			} else {
				return &weather, nil
			}
		} else if err != redis.Nil {
			s.Logger.Errorf("Redis error fetching forecast for %v: %v", cacheKey, err.Error())
		}
	}

	weather, err := s.wa.GetFishingConditions(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	if !s.disableRedis {
		if body, err := json.Marshal(weather); err == nil {
			if err := s.rc.Set(ctx, cacheKey, body, s.cacheTTL).Err(); err != nil {
				s.Logger.Errorf("Redis error caching forecast for %v: %v", cacheKey, err.Error())
			}
		}
	}
	return weather, nil
}

func parseFloatParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, CodeError{code: 400, msg: fmt.Sprintf("Missing query parameter: %v", name)}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, CodeError{code: 400, msg: fmt.Sprintf("'%v' parameter could not be parsed", name)}
	}
	return v, nil
}

func (s *Service) writeError(w http.ResponseWriter, err error) {
	codeErr, ok := err.(CodeError)
	if ok {
		bodyBytes, _ := json.Marshal(ErrorResponse{Error: codeErr.Error()})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(codeErr.code)
		io.WriteString(w, string(bodyBytes[:]))
	} else {
		w.WriteHeader(500)
		io.WriteString(w, "Internal server error")
	}
}

func (s *Service) writeResponse(w http.ResponseWriter, resp any) {
	bodyBytes, _ := json.Marshal(resp)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	io.WriteString(w, string(bodyBytes[:]))
}
