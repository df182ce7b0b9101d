package format

import (
	"fmt"
	"math"

	"github.com/vzahanych/wx-gateway/internal/service"
)

// WeatherOutput is the public current-conditions response shape.
type WeatherOutput struct {
	Icon        string `json:"icon"`
	Message     string `json:"message"`
	Title       string `json:"title"`
	Temperature int    `json:"temperature"`
}

// Weather composes the current-conditions summary from a One Call snapshot.
// The caller guarantees the current weather list and daily list are non-empty.
// Rounding is half away from zero, so 28.5 becomes 29.
func Weather(snapshot service.OneCallResponse) WeatherOutput {
	temperature := int(math.Round(snapshot.Current.Temp))
	feelsLike := int(math.Round(snapshot.Current.FeelsLike))

	title := fmt.Sprintf("%d° and %s. Feels like %d°.",
		temperature, snapshot.Current.Weather[0].Description, feelsLike)

	today := snapshot.Daily[0]
	high := int(math.Round(today.Temp.Max))
	low := int(math.Round(today.Temp.Min))
	message := fmt.Sprintf("Today: High %d°, low %d°, %s",
		high, low, today.Weather[0].Description)

	return WeatherOutput{
		Icon:        fmt.Sprintf("%d°", temperature),
		Message:     message,
		Title:       title,
		Temperature: temperature,
	}
}
