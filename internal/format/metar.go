// Package format holds the pure response-shaping functions that turn raw
// upstream payloads into the gateway's public output schema. Every function
// here depends only on its input; network calls happen before it.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vzahanych/wx-gateway/internal/service"
)

// MetarOutput is the public METAR response shape.
type MetarOutput struct {
	Altimeter       string         `json:"altimeter"`
	Dewpoint        float64        `json:"dewpoint"`
	ID              string         `json:"id"`
	FlightCategory  string         `json:"flight_category"`
	ObservationTime string         `json:"observation_time"`
	RawText         string         `json:"raw_text"`
	SkyConditions   []SkyCondition `json:"sky_conditions"`
	Temperature     float64        `json:"temperature"`
	Visibility      int            `json:"visibility"`
	Wind            Wind           `json:"wind"`
}

// SkyCondition is one derived cloud layer, in upstream order.
type SkyCondition struct {
	Base        int    `json:"base"`
	Cover       string `json:"cover"`
	Description string `json:"description"`
}

type Wind struct {
	Description string  `json:"description"`
	Direction   float64 `json:"direction"`
	Speed       float64 `json:"speed"`
}

var cloudCoverNames = map[string]string{
	"SCT": "Scattered",
	"BKN": "Broken",
	"OVC": "Overcast",
	"FEW": "Few",
}

// Metar shapes a raw METAR record into the public output schema.
func Metar(data service.MetarData) MetarOutput {
	observed := time.Unix(data.IssueTime, 0)

	return MetarOutput{
		Altimeter:       fmt.Sprintf("%.2f", data.Pressure),
		Dewpoint:        data.DewPointC,
		ID:              data.Station,
		FlightCategory:  data.VisibilityRating,
		ObservationTime: observed.Format("15:04") + " L",
		RawText:         data.RawReport,
		SkyConditions:   skyConditions(data.CloudLayers),
		Temperature:     data.TempC,
		Visibility:      parseVisibility(data.VisibilityRaw),
		Wind: Wind{
			Description: windDescription(data.WindDir, data.WindSpeed),
			Direction:   data.WindDir,
			Speed:       data.WindSpeed,
		},
	}
}

func skyConditions(layers []service.CloudLayer) []SkyCondition {
	conditions := make([]SkyCondition, 0, len(layers))

	for _, layer := range layers {
		base := int(math.Round(layer.Height))

		cover := layer.Type
		if name, ok := cloudCoverNames[layer.Type]; ok {
			cover = name
		}

		description := fmt.Sprintf("%s at %dft", cover, base)
		if layer.Type == "CLR" {
			description = "Clear"
		}

		conditions = append(conditions, SkyCondition{
			Base:        base,
			Cover:       layer.Type,
			Description: description,
		})
	}

	return conditions
}

func windDescription(dir, speed float64) string {
	if dir == 0 && speed == 0 {
		return "Wind calm"
	}
	return fmt.Sprintf("%s° at %s kt",
		strconv.FormatFloat(dir, 'f', -1, 64),
		strconv.FormatFloat(speed, 'f', -1, 64))
}

// parseVisibility strips the "SM" suffix and parses the leading digits, so
// "10SM" yields 10.
func parseVisibility(raw string) int {
	s := strings.TrimSuffix(raw, "SM")

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	visibility, _ := strconv.Atoi(s[:end])
	return visibility
}
