package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/text/language"
)

var supportedEncodings = map[string]bool{ //nolint:gochecknoglobals // lookup table
	"utf-8":        true,
	"utf8":         true,
	"iso-8859-1":   true,
	"latin1":       true,
	"windows-1252": true,
	"cp1252":       true,
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if SISU_CONFIG is set
//  3. env (prefix SISU_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("SISU_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// SISU_DATASET_PATH -> dataset_path (flat keys, underscores preserved).
	envProvider := env.Provider("SISU_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "sisu_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// invalidDelimiters are rejected by encoding/csv as a field separator.
const invalidDelimiters = "\"\r\n" + string(utf8.RuneError)

// Validate checks field constraints. Failures are *FieldError values that
// match ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return invalid("addr", "must not be empty")
	}
	if c.DatasetPath == "" {
		return invalid("dataset_path", "must not be empty")
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return invalid("delimiter", fmt.Sprintf("must be a single character, got %q", c.Delimiter))
	}
	if strings.ContainsAny(c.Delimiter, invalidDelimiters) {
		return invalid("delimiter", fmt.Sprintf("%q cannot separate csv fields", c.Delimiter))
	}
	if utf8.RuneCountInString(c.DecimalSeparator) != 1 {
		return invalid("decimal_separator", fmt.Sprintf("must be a single character, got %q", c.DecimalSeparator))
	}
	if c.Delimiter == c.DecimalSeparator {
		return invalid("delimiter", "must differ from decimal_separator")
	}
	if !supportedEncodings[strings.ToLower(c.Encoding)] {
		return invalid("encoding", fmt.Sprintf("%q is not supported", c.Encoding))
	}
	for _, col := range []struct{ key, value string }{
		{"column_course", c.ColumnCourse},
		{"column_state", c.ColumnState},
		{"column_institution", c.ColumnInstitution},
		{"column_seats", c.ColumnSeats},
		{"column_score", c.ColumnScore},
	} {
		if strings.TrimSpace(col.value) == "" {
			return invalid(col.key, "must not be empty")
		}
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return &FieldError{Key: "locale", Reason: fmt.Sprintf("%q is not a BCP 47 tag", c.Locale), Err: err}
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return invalid("chart_width", "and chart_height must be positive")
	}
	if c.SearchLimit <= 0 {
		return invalid("search_limit", "must be positive")
	}
	if c.MetricsRefreshSeconds <= 0 {
		return invalid("metrics_refresh_seconds", "must be positive")
	}
	return nil
}

// MetricsRefresh returns the system gauge sampling interval.
func (c *Config) MetricsRefresh() time.Duration {
	return time.Duration(c.MetricsRefreshSeconds) * time.Second
}

// DelimiterRune returns the field delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// DecimalRune returns the decimal separator as a rune.
func (c *Config) DecimalRune() rune {
	r, _ := utf8.DecodeRuneInString(c.DecimalSeparator)
	return r
}
