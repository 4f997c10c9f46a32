package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for cmdb-analyzer.
// Configuration can come from a YAML file (config.yaml) or environment
// variables. Environment variables always override YAML values.
type Config struct {
	// Env selects the logger profile ("local" for development output).
	Env string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`

	// LogLevel is the minimum level emitted ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	// Version is set at load time, not from config.
	Version string `yaml:"-"`

	// Import configures workbook ingestion.
	Import ImportConfig `yaml:"import"`

	// Catalog configures reference-data loading.
	Catalog CatalogConfig `yaml:"catalog"`

	// Validation configures the rule engine.
	Validation ValidationConfig `yaml:"validation"`

	// Report configures finding output.
	Report ReportConfig `yaml:"report"`
}

// ImportConfig holds workbook ingestion settings.
type ImportConfig struct {
	// WorkbooksStr is a comma-separated list of XLSX files to import.
	WorkbooksStr string `yaml:"workbooks" env:"CMDB_WORKBOOKS" env-default:""`

	// Workbooks is the parsed list from WorkbooksStr (not from config file).
	Workbooks []string `yaml:"-"`
}

// CatalogConfig holds reference-data settings.
type CatalogConfig struct {
	// Path is the YAML file of valid classes, relationship types, locations,
	// and environments. Empty means no catalog; catalog-driven rules then
	// stay silent rather than flag everything.
	Path string `yaml:"path" env:"CMDB_CATALOG" env-default:""`
}

// ValidationConfig holds rule-engine settings.
type ValidationConfig struct {
	// MaxConcurrentRules caps how many rules evaluate in parallel over one
	// snapshot. Zero or negative means unbounded.
	MaxConcurrentRules int `yaml:"max_concurrent_rules" env:"CMDB_MAX_CONCURRENT_RULES" env-default:"4"`

	// DependencyTypesStr is a comma-separated list of relationship types
	// treated as dependency-style for cycle detection. Empty means every
	// relationship type participates.
	DependencyTypesStr string `yaml:"dependency_types" env:"CMDB_DEPENDENCY_TYPES" env-default:""`

	// DependencyTypes is the parsed list from DependencyTypesStr.
	DependencyTypes []string `yaml:"-"`
}

// ReportConfig holds finding-output settings.
type ReportConfig struct {
	// JSONPath, when set, writes the full finding list as JSON to this file
	// in addition to the console summary.
	JSONPath string `yaml:"json_path" env:"CMDB_REPORT_JSON" env-default:""`
}

// Load reads configuration from config.yaml with environment variable
// overrides. A missing config.yaml is fine; environment variables and
// defaults then apply alone. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	cfg.Import.Workbooks = splitList(cfg.Import.WorkbooksStr)
	cfg.Validation.DependencyTypes = splitList(cfg.Validation.DependencyTypesStr)

	return cfg, nil
}

// splitList parses a comma-separated list, trimming whitespace and dropping
// empty entries.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
