package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vzahanych/wx-gateway/internal/config"
	"github.com/vzahanych/wx-gateway/internal/server/handlers"
	"github.com/vzahanych/wx-gateway/internal/server/middlewares"
	"github.com/vzahanych/wx-gateway/internal/service"
	"github.com/vzahanych/wx-gateway/pkg/telemetry"
)

type Server struct {
	engine *gin.Engine
	server *http.Server
	cfg    *config.Config
	logger *zap.Logger
	tele   *telemetry.Telemetry
}

// New wires the upstream clients, middleware chain and routes. It fails when
// a client cannot be constructed, so deployment defects surface at startup.
func New(cfg *config.Config, logger *zap.Logger, tele *telemetry.Telemetry) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	httpMetrics := middlewares.NewHTTPMetrics()

	engine.Use(middlewares.RequestIDMiddleware())
	engine.Use(middlewares.LoggingMiddleware(logger))
	engine.Use(middlewares.RecoveryMiddleware(logger))
	engine.Use(middlewares.TelemetryMiddleware(tele))
	engine.Use(middlewares.MetricsMiddleware(httpMetrics))

	garmin := service.NewGarminService(cfg.Upstream.Garmin, logger, tele)
	nws := service.NewNWSService(cfg.Upstream.NWS, logger, tele)

	owm, err := service.NewOpenWeatherMapService(cfg.Upstream.OpenWeatherMap, logger, tele)
	if err != nil {
		return nil, fmt.Errorf("openweathermap client: %w", err)
	}

	token := cfg.Auth.APIToken

	// Business endpoints go through the validated pipeline, which owns the
	// 405 for non-GET verbs, hence Any instead of GET.
	engine.Any("/api/metar", handlers.NewMetarEndpoint(garmin, token, logger, tele).Handle)
	engine.Any("/api/nws-current", handlers.NewNWSCurrentEndpoint(nws, token, logger, tele).Handle)
	engine.Any("/api/nws-forecast", handlers.NewNWSForecastEndpoint(nws, token, logger, tele).Handle)
	engine.Any("/api/weather", handlers.NewWeatherEndpoint(owm, token, logger, tele).Handle)

	health := handlers.NewHealthHandler(logger)
	engine.GET("/health", health.Health)
	engine.GET("/health/live", health.Liveness)
	engine.GET("/health/ready", health.Readiness)

	engine.GET("/metrics", handlers.NewMetricsHandler(httpMetrics, logger).ServeMetrics)

	return &Server{
		engine: engine,
		cfg:    cfg,
		logger: logger,
		tele:   tele,
	}, nil
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port),
		Handler:      s.engine,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.Server.IdleTimeout) * time.Second,
	}

	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
