package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/dotcommander/agentfolio/internal/project"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the agentfolio configuration
type Config struct {
	ProfilesDir    string         `mapstructure:"profilesDir" json:"profilesDir"`
	ScoresDir      string         `mapstructure:"scoresDir" json:"scoresDir"`
	ProfilePattern string         `mapstructure:"profilePattern" json:"profilePattern"`
	Format         string         `mapstructure:"format" json:"format"`
	Output         string         `mapstructure:"output" json:"output,omitempty"`
	Quiet          bool           `mapstructure:"quiet" json:"quiet"`
	Verbose        bool           `mapstructure:"verbose" json:"verbose"`
	Concurrency    int            `mapstructure:"concurrency" json:"concurrency"`
	Decay          DecayConfig    `mapstructure:"decay" json:"decay"`
	Boost          BoostConfig    `mapstructure:"boost" json:"boost"`
	Featured       FeaturedConfig `mapstructure:"featured" json:"featured"`
}

// DecayConfig toggles time decay
type DecayConfig struct {
	Enabled bool `mapstructure:"enabled" json:"enabled"`
}

// BoostConfig toggles the skills boost
type BoostConfig struct {
	Enabled bool `mapstructure:"enabled" json:"enabled"`
}

// FeaturedConfig contains agent-of-the-week settings
type FeaturedConfig struct {
	File               string `mapstructure:"file" json:"file"`
	MinScore           int    `mapstructure:"minScore" json:"minScore"`
	ExcludeRecentWeeks int    `mapstructure:"excludeRecentWeeks" json:"excludeRecentWeeks"`
}

// Defaults
const (
	DefaultProfilesDir        = "data/profiles"
	DefaultScoresDir          = "data/scores"
	DefaultProfilePattern     = "**/*.{json,yaml,yml}"
	DefaultFeaturedFile       = "data/featured.json"
	DefaultFeaturedMinScore   = 20
	DefaultExcludeRecentWeeks = 4
	DefaultConcurrency        = 10
)

// LoadConfig loads configuration from defaults, an rc file and AGENTFOLIO_* environment variables.
// Without an explicit configFile the rc file is looked up in the workspace root
// (the nearest directory above the working directory holding an rc file or .git).
// An explicit configFile must exist and parse.
func LoadConfig(configFile string) (*Config, error) {
	viper.SetDefault("profilesDir", DefaultProfilesDir)
	viper.SetDefault("scoresDir", DefaultScoresDir)
	viper.SetDefault("profilePattern", DefaultProfilePattern)
	viper.SetDefault("format", "console")
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("concurrency", DefaultConcurrency)
	viper.SetDefault("decay.enabled", true)
	viper.SetDefault("boost.enabled", true)
	viper.SetDefault("featured.file", DefaultFeaturedFile)
	viper.SetDefault("featured.minScore", DefaultFeaturedMinScore)
	viper.SetDefault("featured.excludeRecentWeeks", DefaultExcludeRecentWeeks)

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	} else if rc, err := findRCFile(); err != nil {
		return nil, err
	} else if rc != "" {
		viper.SetConfigFile(rc)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", rc, err)
		}
	}

	viper.SetEnvPrefix("AGENTFOLIO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func findRCFile() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("error getting working directory: %w", err)
	}
	root, err := project.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("error finding workspace root: %w", err)
	}
	return project.Detect(root).RCFile, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	switch config.Format {
	case "console", "json", "markdown":
	default:
		return fmt.Errorf("%w: format %q must be 'console', 'json', or 'markdown'", ErrInvalidConfig, config.Format)
	}

	if config.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1", ErrInvalidConfig)
	}

	if config.Featured.MinScore < 0 {
		return fmt.Errorf("%w: featured.minScore must not be negative", ErrInvalidConfig)
	}

	if config.Featured.ExcludeRecentWeeks < 0 {
		return fmt.Errorf("%w: featured.excludeRecentWeeks must not be negative", ErrInvalidConfig)
	}

	return nil
}

// SaveConfig saves the current configuration to a file
func SaveConfig(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
