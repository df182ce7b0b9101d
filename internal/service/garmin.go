package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/vzahanych/wx-gateway/internal/config"
	"github.com/vzahanych/wx-gateway/pkg/telemetry"
)

// GarminService fetches airport info and METAR observations from the Garmin
// pilotweb API.
type GarminService struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
	tele    *telemetry.Telemetry
}

// AirportResponse is the raw airport lookup payload.
type AirportResponse struct {
	AirportEntry AirportEntry `json:"AirportEntry"`
}

type AirportEntry struct {
	CcAirportInfoList []AirportInfo `json:"CcAirportInfoList"`
}

// AirportInfo carries airport metadata. Only the coordinates are consumed
// downstream; they are pointers so an absent field is distinguishable from 0.
type AirportInfo struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	LatDeg    *float64 `json:"latDeg"`
	LonDeg    *float64 `json:"lonDeg"`
	Elevation float64  `json:"elevation"`
}

// MetarResponse wraps the raw METAR record.
type MetarResponse struct {
	Metar MetarData `json:"metar"`
}

// MetarData is the raw METAR record as the upstream reports it.
type MetarData struct {
	IssueTime        int64        `json:"issueTime"`
	CloudLayers      []CloudLayer `json:"CloudLayers"`
	WindDir          float64      `json:"windDir"`
	WindSpeed        float64      `json:"windSpeed"`
	Pressure         float64      `json:"pressure"`
	DewPointC        float64      `json:"dewPointC"`
	Station          string       `json:"station"`
	VisibilityRating string       `json:"visibilityRating"`
	RawReport        string       `json:"rawReport"`
	TempC            float64      `json:"tempC"`
	VisibilityRaw    string       `json:"visibilityRaw"`
}

// CloudLayer is a reported cloud coverage band: a type code (OVC, BKN, ...)
// and a base height in feet.
type CloudLayer struct {
	Type   string  `json:"type"`
	Height float64 `json:"height"`
}

func NewGarminService(cfg config.GarminConfig, logger *zap.Logger, tele *telemetry.Telemetry) *GarminService {
	return &GarminService{
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
		tele:   tele,
	}
}

// GetAirportInfo fetches airport metadata for the given airport identifier.
func (s *GarminService) GetAirportInfo(ctx context.Context, airportID string) (*AirportResponse, error) {
	tracer := s.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "garmin.GetAirportInfo")
	defer span.End()

	span.SetAttributes(attribute.String("airport_id", airportID))

	s.logger.Debug("Fetching airport info", zap.String("airport_id", airportID))

	reqURL := fmt.Sprintf("%s/airports/%s", s.baseURL, url.PathEscape(airportID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
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
		return nil, fmt.Errorf("Failed to fetch airport data: %s", body)
	}

	var airport AirportResponse
	if err := json.NewDecoder(resp.Body).Decode(&airport); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Bool("success", true))
	return &airport, nil
}

// GetMetar fetches the METAR record nearest to the given coordinates.
func (s *GarminService) GetMetar(ctx context.Context, lat, lon float64) (*MetarResponse, error) {
	tracer := s.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "garmin.GetMetar")
	defer span.End()

	span.SetAttributes(
		attribute.Float64("lat", lat),
		attribute.Float64("lon", lon),
	)

	u, err := url.Parse(fmt.Sprintf("%s/wx/metar", s.baseURL))
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
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
		return nil, fmt.Errorf("Failed to fetch METAR data: %s", body)
	}

	var metar MetarResponse
	if err := json.NewDecoder(resp.Body).Decode(&metar); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Bool("success", true))
	return &metar, nil
}
