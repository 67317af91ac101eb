package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/phenoqc/internal/analysis"
)

// Global configuration structure.
type Global struct {
	// Column names handed to the preparation pipeline.
	KeyColumn         string `mapstructure:"key_column" yaml:"key_column"`
	XColumn           string `mapstructure:"x_column" yaml:"x_column"`
	YColumn           string `mapstructure:"y_column" yaml:"y_column"`
	AnimalColumn      string `mapstructure:"animal_column" yaml:"animal_column"`
	MeasurementColumn string `mapstructure:"measurement_column" yaml:"measurement_column"`

	// Output
	OutputFormat     string `mapstructure:"output_format" yaml:"output_format"`
	PercentPrecision int    `mapstructure:"percent_precision" yaml:"percent_precision"`
	Precision        int    `mapstructure:"precision" yaml:"precision"`
	LightsOutHour    int    `mapstructure:"lights_out_hour" yaml:"lights_out_hour"`
	// IANA zone name, "UTC" or "Local".
	LightsOutZone    string `mapstructure:"lights_out_zone" yaml:"lights_out_zone"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Columns returns the configured pipeline columns.
func (c *Global) Columns() analysis.Columns {
	return analysis.Columns{
		Key:         c.KeyColumn,
		X:           c.XColumn,
		Y:           c.YColumn,
		Animal:      c.AnimalColumn,
		Measurement: c.MeasurementColumn,
	}
}

// Location resolves LightsOutZone. An empty zone is UTC.
func (c *Global) Location() (*time.Location, error) {
	if c.LightsOutZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.LightsOutZone)
	if err != nil {
		return nil, fmt.Errorf("lights_out_zone: %w", err)
	}
	return loc, nil
}

// Set assigns one configuration key from its string form.
func (c *Global) Set(key, value string) error {
	atoi := func(dst *int) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}
	switch strings.ToLower(key) {
	case "key_column":
		c.KeyColumn = value
	case "x_column":
		c.XColumn = value
	case "y_column":
		c.YColumn = value
	case "animal_column":
		c.AnimalColumn = value
	case "measurement_column":
		c.MeasurementColumn = value
	case "output_format":
		v := strings.ToLower(value)
		if v != "json" && v != "yaml" {
			return fmt.Errorf("output_format must be json or yaml, got %q", value)
		}
		c.OutputFormat = v
	case "percent_precision":
		return atoi(&c.PercentPrecision)
	case "precision":
		return atoi(&c.Precision)
	case "lights_out_hour":
		if err := atoi(&c.LightsOutHour); err != nil {
			return err
		}
		if c.LightsOutHour < 0 || c.LightsOutHour > 23 {
			return fmt.Errorf("lights_out_hour must be within 0-23, got %d", c.LightsOutHour)
		}
	case "lights_out_zone":
		if _, err := time.LoadLocation(value); err != nil {
			return fmt.Errorf("lights_out_zone: %w", err)
		}
		c.LightsOutZone = value
	case "log_level":
		c.LogLevel = value
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// Dir returns ~/.phenoqc.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".phenoqc"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.phenoqc/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("PHENOQC")
	v.AutomaticEnv()

	cols := analysis.DefaultColumns()
	v.SetDefault("key_column", cols.Key)
	v.SetDefault("x_column", cols.X)
	v.SetDefault("y_column", cols.Y)
	v.SetDefault("animal_column", cols.Animal)
	v.SetDefault("measurement_column", cols.Measurement)
	v.SetDefault("output_format", "json")
	v.SetDefault("percent_precision", 2)
	v.SetDefault("precision", 4)
	v.SetDefault("lights_out_hour", 19)
	v.SetDefault("lights_out_zone", "UTC")
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
