package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the defaults file (~/.config/mdf4-export/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	ColumnHeader *bool   `yaml:"column_header"`
	UnitRow      *bool   `yaml:"unit_row"`
	Delimiter    *string `yaml:"delimiter"`
	RowDelimiter *string `yaml:"row_delimiter"`
	Concurrency  *int64  `yaml:"concurrency"`
	LogLevel     string  `yaml:"log_level"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mdf4-export", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file doesn't exist.
func LoadConfig() Config {
	return loadConfigFile(configPath())
}

func loadConfigFile(path string) Config {
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// applyConfig copies config defaults into the flag variables for every flag
// not set on the command line.
func applyConfig(c *cli.Command, cfg Config) {
	if cfg.ColumnHeader != nil && !c.IsSet("column-header") && !c.IsSet("no-column-header") {
		columnHeader = *cfg.ColumnHeader
	}
	if cfg.UnitRow != nil && !c.IsSet("unit-row") && !c.IsSet("no-unit-row") {
		unitRow = *cfg.UnitRow
	}
	if cfg.Delimiter != nil && !c.IsSet("delimiter") {
		delimiter = *cfg.Delimiter
	}
	if cfg.RowDelimiter != nil && !c.IsSet("row-delimiter") {
		rowDelimiter = *cfg.RowDelimiter
	}
	if cfg.Concurrency != nil && !c.IsSet("concurrency") {
		concurrency = *cfg.Concurrency
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
}

// resolveInverseFlags lets -S and -U override their positive counterparts.
func resolveInverseFlags() {
	if noColumnHeader {
		columnHeader = false
	}
	if noUnitRow {
		unitRow = false
	}
}
