package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/sisu/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8050")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "sisu.csv")
				convey.So(cfg.Encoding, convey.ShouldEqual, "utf-8")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SISU_ADDR", ":8080")
			_ = os.Setenv("SISU_DATASET_PATH", "/data/sisu_2023.csv")
			_ = os.Setenv("SISU_DELIMITER", "|")
			_ = os.Setenv("SISU_ENCODING", "latin1")
			_ = os.Setenv("SISU_CHART_WIDTH", "1200")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "/data/sisu_2023.csv")
				convey.So(cfg.Delimiter, convey.ShouldEqual, "|")
				convey.So(cfg.Encoding, convey.ShouldEqual, "latin1")
				convey.So(cfg.ChartWidth, convey.ShouldEqual, 1200)
			})
		})

		convey.Convey("When metrics settings come from the environment", func() {
			_ = os.Setenv("SISU_METRICS_ENABLED", "false")
			_ = os.Setenv("SISU_METRICS_REFRESH_SECONDS", "30")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then they are decoded into typed fields", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MetricsEnabled, convey.ShouldBeFalse)
				convey.So(cfg.MetricsRefreshSeconds, convey.ShouldEqual, 30)
			})
		})

		convey.Convey("When loading config with a YAML file and env overrides", func() {
			yamlContent := `
addr: ":9090"
dataset_path: "from-file.csv"
column_course: "CURSO"
count_label: "Vagas"
search_limit: 10
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SISU_CONFIG", tmpFile)
			_ = os.Setenv("SISU_ADDR", ":7070")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env wins over the file and the file over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "from-file.csv")
				convey.So(cfg.ColumnCourse, convey.ShouldEqual, "CURSO")
				convey.So(cfg.CountLabel, convey.ShouldEqual, "Vagas")
				convey.So(cfg.SearchLimit, convey.ShouldEqual, 10)
				convey.So(cfg.ColumnState, convey.ShouldEqual, "SG_UF_IES")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SISU_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("SISU_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("SISU_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				var fieldErr *config.FieldError
				convey.So(errors.As(err, &fieldErr), convey.ShouldBeTrue)
				convey.So(fieldErr.Key, convey.ShouldEqual, "addr")
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
			})
		})

		convey.Convey("When the delimiter equals the decimal separator", func() {
			_ = os.Setenv("SISU_DELIMITER", ",")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects it", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("SISU_CHART_HEIGHT", "tall")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// createTempConfigFile creates a temporary YAML config file with the given content.
func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "sisu_config_*.yaml")
	if err != nil {
		panic(err)
	}
	defer func() { _ = tmpFile.Close() }()

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}

// clearConfigEnvVars clears all SISU_ environment variables used in tests.
func clearConfigEnvVars() {
	for _, v := range []string{
		"SISU_CONFIG", "SISU_ADDR", "SISU_DATASET_PATH", "SISU_DELIMITER",
		"SISU_DECIMAL_SEPARATOR", "SISU_ENCODING", "SISU_CHART_WIDTH",
		"SISU_CHART_HEIGHT", "SISU_LOG_LEVEL", "SISU_METRICS_ENABLED",
		"SISU_METRICS_REFRESH_SECONDS",
	} {
		_ = os.Unsetenv(v)
	}
}
