package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/rosterctl.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// PathsConfig contains the file system layout of one course directory.
type PathsConfig struct {
	DataDir       string `yaml:"data_dir" envconfig:"DATA_DIR" default:"." validate:"required"`
	StudentsFile  string `yaml:"students_file" envconfig:"STUDENTS_FILE" default:"students.xml" validate:"required"`
	MetadataFile  string `yaml:"metadata_file" envconfig:"METADATA_FILE" default:"metadata.xml" validate:"required"`
	GradingFile   string `yaml:"grading_file" envconfig:"GRADING_FILE" default:"GradingPoints.txt" validate:"required"`
	// SpreadsheetTemplate names generated spreadsheet files. Both the
	// {group} and {assignment} parameters are mandatory.
	SpreadsheetTemplate string `yaml:"spreadsheet_template" envconfig:"SPREADSHEET_TEMPLATE" default:"group{group}-{assignment}.csv" validate:"required"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Environment variables establish the baseline
	if err := envconfig.Process("ROSTERCTL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// A config file beside the data fills in fields the environment left
	// alone; explicitly set ROSTERCTL_* variables always win.
	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs fills env-default fields from the config file. The env
// config carries envconfig defaults for everything the environment did not
// set, so a file value applies only where the variable itself is absent;
// set environment variables take precedence.
func mergeConfigs(fileConfig, envConfig Config) Config {
	merged := envConfig
	overlay := func(envVar, fileValue string, dst *string) {
		if fileValue == "" {
			return
		}
		if _, set := os.LookupEnv(envVar); set {
			return
		}
		*dst = fileValue
	}
	overlay("ROSTERCTL_LOGGING_LEVEL", fileConfig.Logging.Level, &merged.Logging.Level)
	overlay("ROSTERCTL_LOGGING_FORMAT", fileConfig.Logging.Format, &merged.Logging.Format)
	overlay("ROSTERCTL_LOGGING_OUTPUT", fileConfig.Logging.Output, &merged.Logging.Output)
	overlay("ROSTERCTL_LOGGING_FILE_PATH", fileConfig.Logging.FilePath, &merged.Logging.FilePath)
	overlay("ROSTERCTL_PATHS_DATA_DIR", fileConfig.Paths.DataDir, &merged.Paths.DataDir)
	overlay("ROSTERCTL_PATHS_STUDENTS_FILE", fileConfig.Paths.StudentsFile, &merged.Paths.StudentsFile)
	overlay("ROSTERCTL_PATHS_METADATA_FILE", fileConfig.Paths.MetadataFile, &merged.Paths.MetadataFile)
	overlay("ROSTERCTL_PATHS_GRADING_FILE", fileConfig.Paths.GradingFile, &merged.Paths.GradingFile)
	overlay("ROSTERCTL_PATHS_SPREADSHEET_TEMPLATE", fileConfig.Paths.SpreadsheetTemplate, &merged.Paths.SpreadsheetTemplate)
	if _, set := os.LookupEnv("ROSTERCTL_LOGGING_DEVELOPMENT"); !set && fileConfig.Logging.Development {
		merged.Logging.Development = true
	}
	return merged
}

// configFilePath returns the config file location, overridable via env.
func configFilePath() string {
	if path := os.Getenv("ROSTERCTL_CONFIG"); path != "" {
		return path
	}
	return "rosterctl.yaml"
}

var validate = validator.New()

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	// Tags cannot express the template placeholder requirement.
	tmpl := c.Paths.SpreadsheetTemplate
	if !strings.Contains(tmpl, "{group}") || !strings.Contains(tmpl, "{assignment}") {
		return fmt.Errorf("spreadsheet_template must contain {group} and {assignment}: %q", tmpl)
	}
	return nil
}
