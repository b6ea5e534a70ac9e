package present

import (
	"fmt"
	"io"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an image encoding for rendered charts.
type Format string

// Supported formats.
const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat maps a file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(s, "."))) {
	case FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// Layout constants for bar sizing.
const (
	plotMargin   = 120
	minBarPitch  = 6
	barFillRatio = 0.7
	headroom     = 1.1
)

var (
	paperColor = drawing.ColorFromHex("212121") //nolint:gochecknoglobals // palette
	plotColor  = drawing.ColorFromHex("333333") //nolint:gochecknoglobals // palette
	fontColor  = drawing.ColorFromHex("ffffff") //nolint:gochecknoglobals // palette
	barColor   = drawing.ColorFromHex("636efa") //nolint:gochecknoglobals // palette
)

// Render draws c as a bar chart on the dark dashboard palette.
func Render(w io.Writer, c Chart, format Format, opts Options) error {
	if c.Empty() {
		return fmt.Errorf("%w: %s", ErrEmptyChart, c.ID)
	}

	var provider chart.RendererProvider
	switch format {
	case FormatSVG:
		provider = chart.SVG
	case FormatPNG:
		provider = chart.PNG
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	width, height := opts.Width, opts.Height
	n := len(c.Points)
	if need := n*minBarPitch + plotMargin; width < need {
		width = need
	}
	pitch := (width - plotMargin) / n
	barWidth := max(1, int(float64(pitch)*barFillRatio))

	maxValue := 0.0
	bars := make([]chart.Value, 0, n)
	for _, p := range c.Points {
		maxValue = max(maxValue, p.Value)
		bars = append(bars, chart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		})
	}
	top := maxValue * headroom
	if top <= 0 {
		top = 1
	}

	axis := chart.Style{FontColor: fontColor, StrokeColor: fontColor}
	graph := chart.BarChart{
		Title:      c.Title,
		TitleStyle: chart.Style{FontColor: fontColor},
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: max(1, pitch-barWidth),
		Background: chart.Style{FillColor: paperColor, Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10}},
		Canvas:     chart.Style{FillColor: plotColor},
		XAxis:      axis,
		YAxis: chart.YAxis{
			Name:      c.YTitle,
			NameStyle: chart.Style{FontColor: fontColor},
			Style:     axis,
			Range:     &chart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: bars,
	}
	if err := graph.Render(provider, w); err != nil {
		return fmt.Errorf("render %s: %w", c.ID, err)
	}
	return nil
}
