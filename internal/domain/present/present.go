// Package present shapes aggregation results for the dashboard: chart
// series with hover text and the formatted row count.
package present

import (
	"strings"

	"github.com/okian/sisu/internal/domain/aggregate"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ChartID identifies one of the dashboard charts.
type ChartID string

// Dashboard charts.
const (
	ChartSeatsByState       ChartID = "graph-vagas-estado"
	ChartScoreByState       ChartID = "graph-notas-estado"
	ChartScoreByInstitution ChartID = "graph-notas-ies"
)

// ChartIDs returns the charts in page order.
func ChartIDs() []ChartID {
	return []ChartID{ChartSeatsByState, ChartScoreByState, ChartScoreByInstitution}
}

// ParseChartID validates a chart id.
func ParseChartID(s string) (ChartID, bool) {
	for _, id := range ChartIDs() {
		if string(id) == s {
			return id, true
		}
	}
	return "", false
}

// Point is one bar.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Hover string  `json:"hover"`
}

// Chart is a titled bar series.
type Chart struct {
	ID     ChartID `json:"id"`
	Title  string  `json:"title"`
	XTitle string  `json:"x_title"`
	YTitle string  `json:"y_title"`
	Points []Point `json:"points"`
}

// Empty reports whether the chart has no bars.
func (c Chart) Empty() bool { return len(c.Points) == 0 }

// Update is everything the page replaces after a selection change.
type Update struct {
	Charts     []Chart `json:"charts"`
	CountLabel string  `json:"count_label"`
	TotalCount int     `json:"total_count"`
}

// Chart returns the chart with the given id.
func (u Update) Chart(id ChartID) (Chart, bool) {
	for _, c := range u.Charts {
		if c.ID == id {
			return c, true
		}
	}
	return Chart{}, false
}

// Options controls labels and number formatting.
type Options struct {
	CountLabel       string
	Locale           language.Tag
	DecimalSeparator rune
	Width            int
	Height           int
}

// DefaultOptions matches the Brazilian Portuguese page.
func DefaultOptions() Options {
	return Options{
		CountLabel:       "Total de Vagas",
		Locale:           language.BrazilianPortuguese,
		DecimalSeparator: ',',
		Width:            900,
		Height:           450,
	}
}

// Build converts res into the three charts and the count label.
func Build(res aggregate.Result, opts Options) Update {
	seats := Chart{
		ID:     ChartSeatsByState,
		Title:  "Vagas por Estado",
		XTitle: "Estados",
		YTitle: "Vagas",
		Points: make([]Point, 0, len(res.CountsByState)),
	}
	for _, e := range res.CountsByState {
		seats.Points = append(seats.Points, Point{
			Label: e.Key,
			Value: float64(e.Count),
			Hover: hover("Estado", e.Key, "Vagas", formatCount(opts.Locale, e.Count)),
		})
	}

	return Update{
		Charts: []Chart{
			seats,
			scoreChart(ChartScoreByState, "Nota de Corte por Estado", "Estados", "Estado", res.MaxScoreByState, opts),
			scoreChart(ChartScoreByInstitution, "Nota de Corte por Instituição", "Instituições", "Instituição", res.MaxScoreByInstitution, opts),
		},
		CountLabel: CountLabel(opts, res.TotalCount),
		TotalCount: res.TotalCount,
	}
}

func scoreChart(id ChartID, title, xTitle, keyName string, entries []aggregate.ScoreEntry, opts Options) Chart {
	c := Chart{
		ID:     id,
		Title:  title,
		XTitle: xTitle,
		YTitle: "Notas",
		Points: make([]Point, 0, len(entries)),
	}
	for _, e := range entries {
		c.Points = append(c.Points, Point{
			Label: e.Key,
			Value: e.Score,
			Hover: hover(keyName, e.Key, "Nota", FormatScore(e.Score, opts.DecimalSeparator)),
		})
	}
	return c
}

// hover renders the two-line tooltip of a bar, e.g. "Estado: SP\nVagas: 2".
func hover(keyName, key, valueName, value string) string {
	return keyName + ": " + key + "\n" + valueName + ": " + value
}

// HoverValue returns the value line of a tooltip without its name.
func HoverValue(h string) string {
	_, line, _ := strings.Cut(h, "\n")
	_, v, _ := strings.Cut(line, ": ")
	return v
}

// CountLabel renders "<label>: <n>" with locale digit grouping,
// e.g. "Total de Vagas: 1.234".
func CountLabel(opts Options, total int) string {
	return opts.CountLabel + ": " + formatCount(opts.Locale, total)
}

func formatCount(tag language.Tag, n int) string {
	return message.NewPrinter(tag).Sprintf("%d", n)
}

// FormatScore prints a score with the shortest exact decimal text and the
// given decimal mark: 890.5 -> "890,5".
func FormatScore(v float64, decimalMark rune) string {
	s := decimal.NewFromFloat(v).String()
	if decimalMark == 0 || decimalMark == '.' {
		return s
	}
	return strings.Replace(s, ".", string(decimalMark), 1)
}
