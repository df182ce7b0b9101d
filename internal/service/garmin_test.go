package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/vzahanych/wx-gateway/internal/config"
	"github.com/vzahanych/wx-gateway/pkg/telemetry"
)

func newTestTelemetry(t *testing.T) *telemetry.Telemetry {
	t.Helper()
	tele, err := telemetry.New(context.Background(), config.TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("telemetry.New: %v", err)
	}
	return tele
}

func TestGarminGetAirportInfo(t *testing.T) {
	var requestedPath string

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"AirportEntry": {
				"CcAirportInfoList": [
					{"code": "KJFK", "name": "John F Kennedy Intl", "latDeg": 40.64, "lonDeg": -73.78}
				]
			}
		}`)
	}))
	defer upstream.Close()

	svc := NewGarminService(config.GarminConfig{BaseURL: upstream.URL}, zap.NewNop(), newTestTelemetry(t))

	airport, err := svc.GetAirportInfo(context.Background(), "KJFK")
	if err != nil {
		t.Fatalf("GetAirportInfo: %v", err)
	}

	if requestedPath != "/airports/KJFK" {
		t.Errorf("unexpected request path %q", requestedPath)
	}

	infos := airport.AirportEntry.CcAirportInfoList
	if len(infos) != 1 {
		t.Fatalf("expected 1 airport entry, got %d", len(infos))
	}
	if infos[0].LatDeg == nil || *infos[0].LatDeg != 40.64 {
		t.Errorf("latDeg: got %v", infos[0].LatDeg)
	}
	if infos[0].LonDeg == nil || *infos[0].LonDeg != -73.78 {
		t.Errorf("lonDeg: got %v", infos[0].LonDeg)
	}
}

func TestGarminGetAirportInfoAbsentCoordinates(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"AirportEntry": {"CcAirportInfoList": [{"code": "KXYZ", "name": "No Coordinates"}]}}`)
	}))
	defer upstream.Close()

	svc := NewGarminService(config.GarminConfig{BaseURL: upstream.URL}, zap.NewNop(), newTestTelemetry(t))

	airport, err := svc.GetAirportInfo(context.Background(), "KXYZ")
	if err != nil {
		t.Fatalf("GetAirportInfo: %v", err)
	}

	info := airport.AirportEntry.CcAirportInfoList[0]
	if info.LatDeg != nil || info.LonDeg != nil {
		t.Errorf("absent coordinates should decode to nil, got lat=%v lon=%v", info.LatDeg, info.LonDeg)
	}
}

func TestGarminGetAirportInfoUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "airport not found")
	}))
	defer upstream.Close()

	svc := NewGarminService(config.GarminConfig{BaseURL: upstream.URL}, zap.NewNop(), newTestTelemetry(t))

	_, err := svc.GetAirportInfo(context.Background(), "KXYZ")
	if err == nil {
		t.Fatal("expected an error for a 404 response")
	}
	if err.Error() != "Failed to fetch airport data: airport not found" {
		t.Errorf("unexpected error %q", err.Error())
	}
}

func TestGarminGetMetar(t *testing.T) {
	var requestedQuery string

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wx/metar" {
			t.Errorf("unexpected request path %q", r.URL.Path)
		}
		requestedQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"metar": {
				"issueTime": 1772191980,
				"CloudLayers": [{"type": "OVC", "height": 5000}],
				"windDir": 270,
				"windSpeed": 8,
				"pressure": 30.12,
				"station": "KJFK",
				"visibilityRating": "VFR",
				"tempC": 15,
				"visibilityRaw": "10SM"
			}
		}`)
	}))
	defer upstream.Close()

	svc := NewGarminService(config.GarminConfig{BaseURL: upstream.URL}, zap.NewNop(), newTestTelemetry(t))

	metar, err := svc.GetMetar(context.Background(), 40.64, -73.78)
	if err != nil {
		t.Fatalf("GetMetar: %v", err)
	}

	if requestedQuery != "lat=40.64&lon=-73.78" {
		t.Errorf("unexpected query %q", requestedQuery)
	}
	if metar.Metar.Station != "KJFK" {
		t.Errorf("station: got %q", metar.Metar.Station)
	}
	if len(metar.Metar.CloudLayers) != 1 || metar.Metar.CloudLayers[0].Type != "OVC" {
		t.Errorf("cloud layers: got %+v", metar.Metar.CloudLayers)
	}
}

func TestGarminGetMetarUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "metar source offline")
	}))
	defer upstream.Close()

	svc := NewGarminService(config.GarminConfig{BaseURL: upstream.URL}, zap.NewNop(), newTestTelemetry(t))

	_, err := svc.GetMetar(context.Background(), 40.64, -73.78)
	if err == nil {
		t.Fatal("expected an error for a 502 response")
	}
	if err.Error() != "Failed to fetch METAR data: metar source offline" {
		t.Errorf("unexpected error %q", err.Error())
	}
}
