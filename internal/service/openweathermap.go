package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/vzahanych/wx-gateway/internal/config"
	"github.com/vzahanych/wx-gateway/pkg/telemetry"
)

// OpenWeatherMapService fetches current conditions and daily summaries from
// the OpenWeatherMap One Call API.
type OpenWeatherMapService struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
	tele    *telemetry.Telemetry
}

// OneCallResponse is the raw One Call payload, reduced to the fields the
// gateway consumes. Minutely, hourly and alert blocks are excluded at request
// time.
type OneCallResponse struct {
	Current CurrentConditions `json:"current"`
	Daily   []DailyForecast   `json:"daily"`
}

type CurrentConditions struct {
	Temp      float64              `json:"temp"`
	FeelsLike float64              `json:"feels_like"`
	Weather   []WeatherDescription `json:"weather"`
}

type WeatherDescription struct {
	Description string `json:"description"`
}

type DailyForecast struct {
	Temp    DailyTemp            `json:"temp"`
	Weather []WeatherDescription `json:"weather"`
}

type DailyTemp struct {
	Max float64 `json:"max"`
	Min float64 `json:"min"`
}

// NewOpenWeatherMapService fails when no API key is configured so a broken
// deployment surfaces at startup rather than on the first request.
func NewOpenWeatherMapService(cfg config.OpenWeatherMapConfig, logger *zap.Logger, tele *telemetry.Telemetry) (*OpenWeatherMapService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenWeatherMap API key is not set")
	}

	return &OpenWeatherMapService{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
		tele:   tele,
	}, nil
}

// GetCurrentWeather fetches current conditions and daily forecasts for the
// given coordinates. Units is forwarded verbatim and only affects the raw
// numeric values the upstream reports.
func (s *OpenWeatherMapService) GetCurrentWeather(ctx context.Context, lat, lon, units string) (*OneCallResponse, error) {
	tracer := s.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "openweathermap.GetCurrentWeather")
	defer span.End()

	span.SetAttributes(
		attribute.String("lat", lat),
		attribute.String("lon", lon),
		attribute.String("units", units),
	)

	s.logger.Debug("Fetching current weather",
		zap.String("lat", lat),
		zap.String("lon", lon),
		zap.String("units", units))

	u, err := url.Parse(fmt.Sprintf("%s/onecall", s.baseURL))
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("lat", lat)
	q.Set("lon", lon)
	q.Set("units", units)
	q.Set("exclude", "minutely,hourly,alerts")
	q.Set("appid", s.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		span.SetAttributes(attribute.Bool("success", false), attribute.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("Failed to fetch weather data: %s", body)
	}

	var weather OneCallResponse
	if err := json.NewDecoder(resp.Body).Decode(&weather); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Bool("success", true))
	return &weather, nil
}
