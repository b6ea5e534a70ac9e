// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) initializer to build a Config with defaults.
// - Load layers a YAML file and SISU_ environment variables on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8050".
	Addr string `koanf:"addr"`

	// DatasetPath is the delimited file loaded at startup.
	DatasetPath string `koanf:"dataset_path"`

	// Delimiter and DecimalSeparator are single characters.
	Delimiter        string `koanf:"delimiter"`
	DecimalSeparator string `koanf:"decimal_separator"`

	// Encoding of the dataset file: utf-8, iso-8859-1 (latin1) or windows-1252.
	Encoding string `koanf:"encoding"`

	// Column names of the five required fields.
	ColumnCourse      string `koanf:"column_course"`
	ColumnState       string `koanf:"column_state"`
	ColumnInstitution string `koanf:"column_institution"`
	ColumnSeats       string `koanf:"column_seats"`
	ColumnScore       string `koanf:"column_score"`

	// CountLabel prefixes the total row count, e.g. "Total de Vagas".
	CountLabel string `koanf:"count_label"`

	// Locale is a BCP 47 tag used to format numbers.
	Locale string `koanf:"locale"`

	// ChartWidth and ChartHeight size rendered chart images in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`

	// SearchLimit caps results of facet prefix searches.
	SearchLimit int `koanf:"search_limit"`

	// MetricsEnabled toggles dataset and pipeline metrics.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsRefreshSeconds is how often system gauges are sampled.
	MetricsRefreshSeconds int `koanf:"metrics_refresh_seconds"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":8050",
		DatasetPath:       "sisu.csv",
		Delimiter:         ";",
		DecimalSeparator:  ",",
		Encoding:          "utf-8",
		ColumnCourse:      "NO_CURSO",
		ColumnState:       "SG_UF_IES",
		ColumnInstitution: "SG_IES",
		ColumnSeats:       "QT_VAGAS_CONCORRENCIA",
		ColumnScore:       "NU_NOTACORTE_CONCORRIDA",
		CountLabel:        "Total de Vagas",
		Locale:            "pt-BR",
		ChartWidth:        900,
		ChartHeight:       450,
		SearchLimit:       50,

		MetricsEnabled:        true,
		MetricsRefreshSeconds: 10,
	}
}
