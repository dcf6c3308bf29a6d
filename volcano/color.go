package volcano

import (
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var namedColors = map[string]drawing.Color{
	"red":    chart.ColorRed,
	"blue":   chart.ColorBlue,
	"green":  chart.ColorGreen,
	"orange": chart.ColorOrange,
	"yellow": chart.ColorYellow,
	"cyan":   chart.ColorCyan,
	"black":  chart.ColorBlack,
	"gray":   chart.ColorLightGray,
	"grey":   chart.ColorLightGray,
}

// parseColor accepts a small set of named colors or an RGB hex string such
// as "#1f77b4".
func parseColor(name string) (drawing.Color, error) {
	if col, exists := namedColors[strings.ToLower(name)]; exists {
		return col, nil
	}

	hex := strings.TrimPrefix(strings.ToLower(name), "#")
	if len(hex) == 6 || len(hex) == 3 {
		return drawing.ColorFromHex(hex), nil
	}

	return drawing.Color{}, fmt.Errorf("unrecognized color %q (use a named color or RGB hex)", name)
}
