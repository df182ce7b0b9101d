package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vzahanych/wx-gateway/internal/service"
)

// HourlyPeriod is the public shape shared by both NWS endpoints.
type HourlyPeriod struct {
	StartTime                  string   `json:"start_time"`
	StartTimeFormattedTime     string   `json:"start_time_formatted_time"`
	StartTimeFormattedDatetime string   `json:"start_time_formatted_datetime"`
	IsDaytime                  bool     `json:"is_daytime"`
	Temperature                float64  `json:"temperature"`
	TemperatureUnit            string   `json:"temperature_unit"`
	WindSpeed                  string   `json:"wind_speed"`
	WindDirection              string   `json:"wind_direction"`
	ShortForecast              string   `json:"short_forecast"`
	ProbabilityOfPrecipitation *float64 `json:"probability_of_precipitation"`
	RelativeHumidity           *float64 `json:"relative_humidity"`
}

// The NWS embeds the forecast location's local wall-clock time directly in
// the offset-qualified timestamp, so the time component is extracted
// textually instead of converted through a timezone.
var (
	timePattern     = regexp.MustCompile(`T(\d{2}):(\d{2})`)
	datetimePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2})`)
)

// FormatTime renders the time component of an ISO-8601 string as zero-padded
// 12-hour HH:MM with an AM/PM suffix. The original string comes back
// unchanged when no time component is found.
func FormatTime(isoString string) string {
	match := timePattern.FindStringSubmatch(isoString)
	if match == nil {
		return isoString
	}

	hour, _ := strconv.Atoi(match[1])
	return fmt.Sprintf("%02d:%s %s", hour12(hour), match[2], meridiem(hour))
}

// FormatDatetime renders an ISO-8601 string as MM/DD/YYYY HH:MM AM/PM, with
// the same fallback-on-no-match rule as FormatTime.
func FormatDatetime(isoString string) string {
	match := datetimePattern.FindStringSubmatch(isoString)
	if match == nil {
		return isoString
	}

	year, month, day := match[1], match[2], match[3]
	hour, _ := strconv.Atoi(match[4])
	return fmt.Sprintf("%s/%s/%s %02d:%s %s", month, day, year, hour12(hour), match[5], meridiem(hour))
}

// FormatPeriod maps one raw forecast period to the output shape shared by
// both NWS endpoints.
func FormatPeriod(period service.ForecastPeriod) HourlyPeriod {
	return HourlyPeriod{
		StartTime:                  period.StartTime,
		StartTimeFormattedTime:     FormatTime(period.StartTime),
		StartTimeFormattedDatetime: FormatDatetime(period.StartTime),
		IsDaytime:                  period.IsDaytime,
		Temperature:                period.Temperature,
		TemperatureUnit:            period.TemperatureUnit,
		WindSpeed:                  period.WindSpeed,
		WindDirection:              period.WindDirection,
		ShortForecast:              sentenceCase(period.ShortForecast),
		ProbabilityOfPrecipitation: period.ProbabilityOfPrecipitation.Value,
		RelativeHumidity:           period.RelativeHumidity.Value,
	}
}

func hour12(hour int) int {
	h := hour % 12
	if h == 0 {
		return 12
	}
	return h
}

func meridiem(hour int) string {
	if hour >= 12 {
		return "PM"
	}
	return "AM"
}

// sentenceCase lower-cases the whole string and upper-cases the first rune,
// so all-caps and already-lowercase inputs normalize identically.
func sentenceCase(s string) string {
	lower := strings.ToLower(s)
	if lower == "" {
		return lower
	}

	first, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(first)) + lower[size:]
}
