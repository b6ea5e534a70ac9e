package config_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/okian/sisu/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8050")
			convey.So(cfg.Delimiter, convey.ShouldEqual, ";")
			convey.So(cfg.DecimalSeparator, convey.ShouldEqual, ",")
			convey.So(cfg.ColumnCourse, convey.ShouldEqual, "NO_CURSO")
			convey.So(cfg.ColumnScore, convey.ShouldEqual, "NU_NOTACORTE_CONCORRIDA")
			convey.So(cfg.CountLabel, convey.ShouldEqual, "Total de Vagas")
			convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			convey.So(cfg.MetricsRefresh(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the separators decode to runes", func() {
			convey.So(cfg.DelimiterRune(), convey.ShouldEqual, ';')
			convey.So(cfg.DecimalRune(), convey.ShouldEqual, ',')
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given invalid configs", t, func() {
		cases := []struct {
			name   string
			mutate func(c *config.Config)
		}{
			{"empty dataset path", func(c *config.Config) { c.DatasetPath = "" }},
			{"long delimiter", func(c *config.Config) { c.Delimiter = ";;" }},
			{"empty decimal separator", func(c *config.Config) { c.DecimalSeparator = "" }},
			{"same separators", func(c *config.Config) { c.Delimiter = "," }},
			{"unknown encoding", func(c *config.Config) { c.Encoding = "ebcdic" }},
			{"blank column", func(c *config.Config) { c.ColumnState = " " }},
			{"bad locale", func(c *config.Config) { c.Locale = "not a locale!" }},
			{"zero chart width", func(c *config.Config) { c.ChartWidth = 0 }},
			{"negative search limit", func(c *config.Config) { c.SearchLimit = -1 }},
			{"zero metrics refresh", func(c *config.Config) { c.MetricsRefreshSeconds = 0 }},
		}

		for _, tc := range cases {
			convey.Convey("When the config has "+tc.name, func() {
				cfg := config.New(context.Background())
				tc.mutate(cfg)

				convey.Convey("Then Validate rejects it", func() {
					err := cfg.Validate()
					convey.So(err, convey.ShouldNotBeNil)
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}
	})
}

func TestConfig_Delimiter(t *testing.T) {
	convey.Convey("Given delimiters the csv reader cannot split on", t, func() {
		for _, d := range []string{`"`, "\r", "\n", "\uFFFD"} {
			convey.Convey(fmt.Sprintf("When the delimiter is %q", d), func() {
				cfg := config.New(context.Background())
				cfg.Delimiter = d
				err := cfg.Validate()

				convey.Convey("Then the delimiter key is rejected", func() {
					var fe *config.FieldError
					convey.So(errors.As(err, &fe), convey.ShouldBeTrue)
					convey.So(fe.Key, convey.ShouldEqual, "delimiter")
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}
	})

	convey.Convey("Given a tab delimiter", t, func() {
		cfg := config.New(context.Background())
		cfg.Delimiter = "\t"

		convey.Convey("Then it is accepted", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_FieldError(t *testing.T) {
	convey.Convey("Given a config with a bad locale", t, func() {
		cfg := config.New(context.Background())
		cfg.Locale = "not a locale!"
		err := cfg.Validate()

		convey.Convey("Then the error names the key and keeps the parse error", func() {
			var fieldErr *config.FieldError
			convey.So(errors.As(err, &fieldErr), convey.ShouldBeTrue)
			convey.So(fieldErr.Key, convey.ShouldEqual, "locale")
			convey.So(fieldErr.Err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldStartWith, "invalid config: locale ")
		})
	})
}
