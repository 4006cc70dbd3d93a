package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/agentfolio/internal/profile"
	"github.com/dotcommander/agentfolio/internal/store"
)

func withScoreFlags(t *testing.T, save, noDecay, noBoost bool) {
	t.Helper()
	oldSave, oldDecay, oldBoost := scoreSave, scoreNoDecay, scoreNoBoost
	scoreSave, scoreNoDecay, scoreNoBoost = save, noDecay, noBoost
	t.Cleanup(func() { scoreSave, scoreNoDecay, scoreNoBoost = oldSave, oldDecay, oldBoost })
}

func TestScoreCmd(t *testing.T) {
	assert.Equal(t, "score <profile>", scoreCmd.Use)
	assert.NotEmpty(t, scoreCmd.Short)
	assert.NotEmpty(t, scoreCmd.Long)
	assert.NotNil(t, scoreCmd.Run)
	for _, flag := range []string{"save", "no-decay", "no-boost"} {
		assert.NotNil(t, scoreCmd.Flags().Lookup(flag), flag)
	}
}

func TestRunScore(t *testing.T) {
	env := setupEnv(t)
	withScoreFlags(t, false, true, true)
	path := writeFile(t, filepath.Join(env.profiles, "helper.json"), githubProfile)

	out, err := captureStdout(t, func() error { return runScore(path) })
	require.NoError(t, err)

	doc := decodeJSON(t, out)
	assert.Equal(t, "Helper", doc["handle"])
	assert.Equal(t, "Helper Bot", doc["name"])

	categories := doc["category_scores"].(map[string]any)
	code := categories["code"].(map[string]any)
	assert.Equal(t, float64(95), code["score"])
	economic := categories["economic"].(map[string]any)
	assert.Equal(t, float64(10), economic["score"])

	metadata := doc["metadata"].(map[string]any)
	assert.NotContains(t, metadata, "decay_applied")
	assert.NotContains(t, metadata, "skills_boost")

	_, statErr := os.Stat(env.scores)
	assert.True(t, os.IsNotExist(statErr), "nothing is saved without --save")
}

func TestRunScore_Save(t *testing.T) {
	env := setupEnv(t)
	withScoreFlags(t, true, false, false)
	path := writeFile(t, filepath.Join(env.profiles, "helper.json"), githubProfile)

	_, err := captureStdout(t, func() error { return runScore(path) })
	require.NoError(t, err)

	saved, err := store.New(env.scores).Load("helper")
	require.NoError(t, err)
	assert.Equal(t, "Helper", saved.Handle)
	assert.Len(t, saved.CategoryScores, 6)
	assert.NotEmpty(t, saved.Tier.Label)
}

func TestRunScore_Errors(t *testing.T) {
	env := setupEnv(t)
	withScoreFlags(t, false, false, false)

	tests := []struct {
		name    string
		path    string
		content string
		wantErr error
	}{
		{name: "missing file", path: filepath.Join(env.profiles, "nope.json"), wantErr: profile.ErrProfileNotFound},
		{name: "invalid json", path: filepath.Join(env.profiles, "bad.json"), content: "{not json", wantErr: profile.ErrInvalidProfile},
		{name: "no handle", path: filepath.Join(env.profiles, "anon.json"), content: `{"platforms": {}}`, wantErr: profile.ErrInvalidProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.content != "" {
				writeFile(t, tt.path, tt.content)
			}
			_, err := captureStdout(t, func() error { return runScore(tt.path) })
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestScoreCmd_ExitsOnError(t *testing.T) {
	env := setupEnv(t)
	withScoreFlags(t, false, false, false)
	code := mockExit(t)

	scoreCmd.Run(scoreCmd, []string{filepath.Join(env.profiles, "missing.json")})

	assert.Equal(t, 1, *code)
}
