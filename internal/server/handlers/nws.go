package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vzahanych/wx-gateway/internal/format"
	"github.com/vzahanych/wx-gateway/internal/server/utils"
	"github.com/vzahanych/wx-gateway/internal/service"
	"github.com/vzahanych/wx-gateway/pkg/telemetry"
)

// The two NWS endpoints share one upstream path and one output contract; only
// the nearest-term forecast period is ever surfaced.
type nwsHandler struct {
	nws    *service.NWSService
	logger *zap.Logger
}

// NewNWSCurrentEndpoint builds the /api/nws-current endpoint.
func NewNWSCurrentEndpoint(nws *service.NWSService, apiToken string, logger *zap.Logger, tele *telemetry.Telemetry) *Endpoint {
	h := &nwsHandler{nws: nws, logger: logger}
	return NewEndpoint("nws-current", apiToken, []string{"lat", "lon"}, h.process, logger, tele)
}

// NewNWSForecastEndpoint builds the /api/nws-forecast endpoint.
func NewNWSForecastEndpoint(nws *service.NWSService, apiToken string, logger *zap.Logger, tele *telemetry.Telemetry) *Endpoint {
	h := &nwsHandler{nws: nws, logger: logger}
	return NewEndpoint("nws-forecast", apiToken, []string{"lat", "lon"}, h.process, logger, tele)
}

func (h *nwsHandler) process(c *gin.Context) (interface{}, error) {
	ctx := utils.GetContextFromGinContext(c)

	forecast, err := h.nws.GetHourlyForecast(ctx, c.Query("lat"), c.Query("lon"))
	if err != nil {
		return nil, err
	}

	periods := forecast.Properties.Periods
	if len(periods) == 0 {
		return nil, errors.New("NWS API returned no forecast periods")
	}

	return format.FormatPeriod(periods[0]), nil
}
