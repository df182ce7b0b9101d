package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vzahanych/wx-gateway/internal/format"
	"github.com/vzahanych/wx-gateway/internal/server/utils"
	"github.com/vzahanych/wx-gateway/internal/service"
	"github.com/vzahanych/wx-gateway/pkg/telemetry"
)

// DefaultAirportID is used when the client omits the id parameter.
const DefaultAirportID = "KUMP"

type metarHandler struct {
	garmin *service.GarminService
	logger *zap.Logger
}

// NewMetarEndpoint builds the /api/metar endpoint: airport lookup by ID
// (defaulting to KUMP), then METAR by the airport's coordinates, then
// shaping into the public METAR schema. The id parameter is optional, so no
// required parameters are declared.
func NewMetarEndpoint(garmin *service.GarminService, apiToken string, logger *zap.Logger, tele *telemetry.Telemetry) *Endpoint {
	h := &metarHandler{garmin: garmin, logger: logger}
	return NewEndpoint("metar", apiToken, nil, h.process, logger, tele)
}

func (h *metarHandler) process(c *gin.Context) (interface{}, error) {
	ctx := utils.GetContextFromGinContext(c)

	airportID := strings.ToUpper(c.Query("id"))
	if airportID == "" {
		airportID = DefaultAirportID
	}

	airportData, err := h.garmin.GetAirportInfo(ctx, airportID)
	if err != nil {
		return nil, err
	}

	infoList := airportData.AirportEntry.CcAirportInfoList
	if len(infoList) == 0 || infoList[0].LatDeg == nil || infoList[0].LonDeg == nil {
		// A syntactically valid airport ID without coordinates is an
		// upstream data defect, not a client error.
		return nil, fmt.Errorf("Airport coordinates not found for %s", airportID)
	}

	info := infoList[0]

	h.logger.Debug("Resolved airport coordinates",
		zap.String("airport_id", airportID),
		zap.Float64("lat", *info.LatDeg),
		zap.Float64("lon", *info.LonDeg))

	metarData, err := h.garmin.GetMetar(ctx, *info.LatDeg, *info.LonDeg)
	if err != nil {
		return nil, err
	}

	return format.Metar(metarData.Metar), nil
}
