package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetViper resets viper to a clean state for each test
func resetViper() {
	viper.Reset()
}

// chdirTemp moves into a fresh temp dir so no rc files are picked up
func chdirTemp(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() {
		_ = os.Chdir(oldWd)
	})
	return tmpDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadConfigDefaults(t *testing.T) {
	resetViper()
	chdirTemp(t)

	config, err := LoadConfig("")
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, DefaultProfilesDir, config.ProfilesDir)
	assert.Equal(t, DefaultScoresDir, config.ScoresDir)
	assert.Equal(t, DefaultProfilePattern, config.ProfilePattern)
	assert.Equal(t, "console", config.Format)
	assert.Empty(t, config.Output)
	assert.False(t, config.Quiet)
	assert.False(t, config.Verbose)
	assert.Equal(t, DefaultConcurrency, config.Concurrency)
	assert.True(t, config.Decay.Enabled)
	assert.True(t, config.Boost.Enabled)
	assert.Equal(t, DefaultFeaturedFile, config.Featured.File)
	assert.Equal(t, 20, config.Featured.MinScore)
	assert.Equal(t, 4, config.Featured.ExcludeRecentWeeks)
}

func TestLoadConfigFromJSON(t *testing.T) {
	resetViper()
	dir := chdirTemp(t)

	writeFile(t, filepath.Join(dir, ".agentfoliorc.json"), `{
  "profilesDir": "agents",
  "scoresDir": "out/scores",
  "format": "json",
  "concurrency": 4,
  "decay": {"enabled": false},
  "featured": {"minScore": 35}
}`)

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "agents", config.ProfilesDir)
	assert.Equal(t, "out/scores", config.ScoresDir)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, 4, config.Concurrency)
	assert.False(t, config.Decay.Enabled)
	assert.True(t, config.Boost.Enabled)
	assert.Equal(t, 35, config.Featured.MinScore)
	assert.Equal(t, 4, config.Featured.ExcludeRecentWeeks)
}

func TestLoadConfigFromYAML(t *testing.T) {
	resetViper()
	dir := chdirTemp(t)

	writeFile(t, filepath.Join(dir, ".agentfoliorc.yaml"), `
format: markdown
boost:
  enabled: false
featured:
  excludeRecentWeeks: 8
`)

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "markdown", config.Format)
	assert.False(t, config.Boost.Enabled)
	assert.Equal(t, 8, config.Featured.ExcludeRecentWeeks)
}

func TestLoadConfigExplicitFile(t *testing.T) {
	resetViper()
	dir := chdirTemp(t)

	path := filepath.Join(dir, "custom.yml")
	writeFile(t, path, "scoresDir: elsewhere\n")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "elsewhere", config.ScoresDir)

	resetViper()
	_, err = LoadConfig(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestLoadConfigEnvironment(t *testing.T) {
	resetViper()
	chdirTemp(t)

	t.Setenv("AGENTFOLIO_SCORESDIR", "/tmp/env-scores")
	t.Setenv("AGENTFOLIO_CONCURRENCY", "3")

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env-scores", config.ScoresDir)
	assert.Equal(t, 3, config.Concurrency)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{Format: "console", Concurrency: 1, Featured: FeaturedConfig{MinScore: 0}}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid console", func(*Config) {}, false},
		{"valid json", func(c *Config) { c.Format = "json" }, false},
		{"valid markdown", func(c *Config) { c.Format = "markdown" }, false},
		{"invalid format", func(c *Config) { c.Format = "xml" }, true},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, true},
		{"negative min score", func(c *Config) { c.Featured.MinScore = -1 }, true},
		{"negative exclusion window", func(c *Config) { c.Featured.ExcludeRecentWeeks = -2 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfigInvalidFormat(t *testing.T) {
	resetViper()
	dir := chdirTemp(t)
	writeFile(t, filepath.Join(dir, ".agentfoliorc.json"), `{"format": "html"}`)

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSaveConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	cfg := &Config{ProfilesDir: "p", ScoresDir: "s", Format: "json", Concurrency: 2, Decay: DecayConfig{Enabled: true}}
	require.NoError(t, SaveConfig(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Config
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, *cfg, loaded)
}

func TestLoadConfigFromWorkspaceRoot(t *testing.T) {
	resetViper()
	dir := chdirTemp(t)

	writeFile(t, filepath.Join(dir, ".agentfoliorc.json"), `{"scoresDir": "root-scores"}`)
	sub := filepath.Join(dir, "data", "profiles")
	require.NoError(t, os.MkdirAll(sub, 0755))
	require.NoError(t, os.Chdir(sub))

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "root-scores", config.ScoresDir)
}

func TestLoadConfigMalformedRCFile(t *testing.T) {
	resetViper()
	dir := chdirTemp(t)
	writeFile(t, filepath.Join(dir, ".agentfoliorc.json"), `{"format": `)

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}
