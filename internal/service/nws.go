package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/vzahanych/wx-gateway/internal/config"
	"github.com/vzahanych/wx-gateway/pkg/telemetry"
)

// NWSService fetches hourly forecasts from the US National Weather Service.
// Coordinates resolve to a forecast grid point first; the hourly forecast is
// then fetched for that grid. The two calls are sequential because the second
// URL depends on the first response.
type NWSService struct {
	baseURL   string
	userAgent string
	client    *http.Client
	logger    *zap.Logger
	tele      *telemetry.Telemetry
}

// PointsResponse is the raw grid point resolution payload.
type PointsResponse struct {
	Properties PointsProperties `json:"properties"`
}

type PointsProperties struct {
	GridID string `json:"gridId"`
	GridX  int    `json:"gridX"`
	GridY  int    `json:"gridY"`
}

// ForecastResponse is the raw hourly forecast payload.
type ForecastResponse struct {
	Properties ForecastProperties `json:"properties"`
}

type ForecastProperties struct {
	GeneratedAt string           `json:"generatedAt"`
	Periods     []ForecastPeriod `json:"periods"`
}

// QuantitativeValue is the NWS envelope for measurements; Value is nil when
// the upstream reports no measurement.
type QuantitativeValue struct {
	Value    *float64 `json:"value"`
	UnitCode string   `json:"unitCode"`
}

// ForecastPeriod is one raw hourly forecast period. The startTime embeds the
// forecast location's local time in an offset-qualified ISO-8601 string.
type ForecastPeriod struct {
	Number                     int               `json:"number"`
	StartTime                  string            `json:"startTime"`
	EndTime                    string            `json:"endTime"`
	IsDaytime                  bool              `json:"isDaytime"`
	Temperature                float64           `json:"temperature"`
	TemperatureUnit            string            `json:"temperatureUnit"`
	WindSpeed                  string            `json:"windSpeed"`
	WindDirection              string            `json:"windDirection"`
	ShortForecast              string            `json:"shortForecast"`
	ProbabilityOfPrecipitation QuantitativeValue `json:"probabilityOfPrecipitation"`
	RelativeHumidity           QuantitativeValue `json:"relativeHumidity"`
	Dewpoint                   QuantitativeValue `json:"dewpoint"`
}

func NewNWSService(cfg config.NWSConfig, logger *zap.Logger, tele *telemetry.Telemetry) *NWSService {
	return &NWSService{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
		tele:   tele,
	}
}

// GetHourlyForecast resolves the coordinates to a grid point and fetches the
// hourly forecast for it. Lat and lon are forwarded verbatim as the client
// supplied them.
func (s *NWSService) GetHourlyForecast(ctx context.Context, lat, lon string) (*ForecastResponse, error) {
	tracer := s.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "nws.GetHourlyForecast")
	defer span.End()

	span.SetAttributes(
		attribute.String("lat", lat),
		attribute.String("lon", lon),
	)

	s.logger.Debug("Resolving NWS grid point",
		zap.String("lat", lat),
		zap.String("lon", lon))

	pointsURL := fmt.Sprintf("%s/points/%s,%s", s.baseURL, url.PathEscape(lat), url.PathEscape(lon))
	var points PointsResponse
	if err := s.getJSON(ctx, pointsURL, &points, "NWS API error getting grid point"); err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}

	props := points.Properties
	span.SetAttributes(
		attribute.String("grid_id", props.GridID),
		attribute.Int("grid_x", props.GridX),
		attribute.Int("grid_y", props.GridY),
	)

	forecastURL := fmt.Sprintf("%s/gridpoints/%s/%d,%d/forecast/hourly",
		s.baseURL, url.PathEscape(props.GridID), props.GridX, props.GridY)

	var forecast ForecastResponse
	if err := s.getJSON(ctx, forecastURL, &forecast, "NWS API error getting hourly forecast"); err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("periods", len(forecast.Properties.Periods)),
	)
	return &forecast, nil
}

func (s *NWSService) getJSON(ctx context.Context, reqURL string, out interface{}, errPrefix string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s: %d", errPrefix, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
