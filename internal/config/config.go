package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// SeasonConfig describes how game dates recur
type SeasonConfig struct {
	// RRule is an RFC 5545 recurrence rule, e.g. "FREQ=WEEKLY;BYDAY=SA"
	RRule string `yaml:"rrule,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL    string   `yaml:"databaseURL" validate:"required"`
	HTTPAddr       string   `yaml:"httpAddr" validate:"required"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`

	// Departments is the closed set of department tags for this deployment
	Departments []string `yaml:"departments" validate:"required,min=1"`

	Season SeasonConfig `yaml:"season,omitempty"`

	// Google Sheets integration, only needed by importRoster / exportReport
	RosterSheetID string `yaml:"rosterSheetID,omitempty"`
	RosterTab     string `yaml:"rosterTab,omitempty"`
	ReportSheetID string `yaml:"reportSheetID,omitempty"`
	ReportTab     string `yaml:"reportTab,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// HasDepartment reports whether dept belongs to the configured closed set
func (c *Config) HasDepartment(dept string) bool {
	for _, d := range c.Departments {
		if d == dept {
			return true
		}
	}
	return false
}

// LoadWithEnv loads and validates the configuration for an environment.
// For example, env="prod" looks for "gameday_config.prod.yaml". The file
// is searched for in the current directory first, then the home directory.
// DATABASE_URL in the environment overrides the configured databaseURL.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DatabaseURL = url
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Season.RRule != "" {
		if _, err := rrule.StrToRRule(cfg.Season.RRule); err != nil {
			return fmt.Errorf("invalid rrule in season config: %w", err)
		}
	}

	return nil
}

// findConfigFile searches for the config file in the current directory and
// the home directory. If env is provided it is added as an extension,
// e.g. "gameday_config.prod.yaml".
func findConfigFile(env string) (string, error) {
	configFileName := "gameday_config.yaml"
	if env != "" {
		configFileName = "gameday_config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
