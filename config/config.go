// Package config loads cancelprep settings.
//
// Settings are layered, later layers winning:
//
//  1. built-in defaults (Default)
//  2. an optional YAML file
//  3. environment variables prefixed CANCELPREP_ (CANCELPREP_SEED,
//     CANCELPREP_LOG_LEVEL, comma-separated CANCELPREP_NUMERIC_COLUMNS, ...)
//  4. explicit overrides, typically command-line flags
//
// The merged result is validated before it is returned.
package config

import (
	"fmt"
	"strings"

	"github.com/YuminosukeSato/cancelprep/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "CANCELPREP_"

// Config holds every setting of a preparation run.
type Config struct {
	Input              string    `koanf:"input" validate:"required"`
	OutputDir          string    `koanf:"output_dir" validate:"required"`
	Delimiter          string    `koanf:"delimiter" validate:"omitempty,len=1"`
	LabelColumn        string    `koanf:"label_column" validate:"required"`
	Seed               int64     `koanf:"seed"`
	TestSize           float64   `koanf:"test_size" validate:"gt=0,lt=1"`
	NumericColumns     []string  `koanf:"numeric_columns" validate:"dive,required"`
	CategoricalColumns []string  `koanf:"categorical_columns" validate:"dive,required"`
	Log                LogConfig `koanf:"log"`
}

// LogConfig configures pkg/log.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// Default returns the built-in settings for the hotel booking dataset.
func Default() *Config {
	return &Config{
		Input:       "hotels.csv",
		OutputDir:   "out",
		LabelColumn: "is_canceled",
		Seed:        42,
		TestSize:    0.2,
		NumericColumns: []string{
			"lead_time",
			"stays_in_weekend_nights",
			"stays_in_week_nights",
			"adults",
			"previous_cancellations",
			"booking_changes",
			"adr",
			"total_of_special_requests",
		},
		CategoricalColumns: []string{
			"hotel",
			"market_segment",
			"deposit_type",
			"customer_type",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// sliceConfigPaths are split on commas when they arrive as strings.
var sliceConfigPaths = []string{
	"numeric_columns",
	"categorical_columns",
}

// Load merges defaults, the YAML file at path (skipped when path is empty),
// CANCELPREP_ environment variables and overrides, then validates the result.
// Override keys use koanf paths such as "seed" or "log.level".
func Load(path string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, errors.Wrap(err, "config: load defaults")
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "config: load file %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, errors.Wrap(err, "config: load environment")
	}

	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return nil, errors.Wrapf(err, "config: set %s", key)
		}
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envTransformFunc maps CANCELPREP_LOG_LEVEL to log.level and
// CANCELPREP_TEST_SIZE to test_size.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "log_"); ok {
		return "log." + rest
	}
	return key
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return errors.Wrapf(err, "config: set %s", path)
		}
	}
	return nil
}

var validate = validator.New()

// Validate checks field constraints and the relations between the column
// lists: at least one feature column, no name listed twice, and the label
// not used as a feature.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return errors.NewValidationError(fe.Namespace(),
				fmt.Sprintf("failed %q constraint", fe.Tag()), fe.Value())
		}
		return errors.Wrap(err, "config: validate")
	}

	if len(c.NumericColumns)+len(c.CategoricalColumns) == 0 {
		return errors.NewValidationError("Config.NumericColumns", "no feature columns configured", nil)
	}

	seen := make(map[string]string, len(c.NumericColumns)+len(c.CategoricalColumns))
	for _, list := range []struct {
		name    string
		columns []string
	}{
		{"numeric_columns", c.NumericColumns},
		{"categorical_columns", c.CategoricalColumns},
	} {
		for _, col := range list.columns {
			if col == c.LabelColumn {
				return errors.NewValidationError(list.name, "label column must not be a feature", col)
			}
			if prev, dup := seen[col]; dup {
				return errors.NewValidationError(list.name,
					fmt.Sprintf("column already listed in %s", prev), col)
			}
			seen[col] = list.name
		}
	}
	return nil
}

// DelimiterRune returns the configured CSV delimiter, or 0 for the default.
func (c *Config) DelimiterRune() rune {
	if c.Delimiter == "" {
		return 0
	}
	return []rune(c.Delimiter)[0]
}
