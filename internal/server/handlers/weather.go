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

type weatherHandler struct {
	owm    *service.OpenWeatherMapService
	logger *zap.Logger
}

// NewWeatherEndpoint builds the /api/weather endpoint over OpenWeatherMap
// current conditions. Units defaults to metric and is forwarded verbatim; it
// changes the raw numbers, never the formatting.
func NewWeatherEndpoint(owm *service.OpenWeatherMapService, apiToken string, logger *zap.Logger, tele *telemetry.Telemetry) *Endpoint {
	h := &weatherHandler{owm: owm, logger: logger}
	return NewEndpoint("weather", apiToken, []string{"lat", "lon"}, h.process, logger, tele)
}

func (h *weatherHandler) process(c *gin.Context) (interface{}, error) {
	ctx := utils.GetContextFromGinContext(c)

	units := c.DefaultQuery("units", "metric")

	snapshot, err := h.owm.GetCurrentWeather(ctx, c.Query("lat"), c.Query("lon"), units)
	if err != nil {
		return nil, err
	}

	if len(snapshot.Current.Weather) == 0 || len(snapshot.Daily) == 0 ||
		len(snapshot.Daily[0].Weather) == 0 {
		return nil, errors.New("weather data is missing current or daily conditions")
	}

	return format.Weather(*snapshot), nil
}
