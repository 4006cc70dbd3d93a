package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// testEnv points the configuration at temp directories and selects JSON output
type testEnv struct {
	profiles string
	scores   string
	featured string
}

func setupEnv(t *testing.T) testEnv {
	t.Helper()
	t.Chdir(t.TempDir())

	env := testEnv{
		profiles: t.TempDir(),
		scores:   filepath.Join(t.TempDir(), "scores"),
		featured: filepath.Join(t.TempDir(), "featured.json"),
	}
	t.Setenv("AGENTFOLIO_FORMAT", "json")
	t.Setenv("AGENTFOLIO_PROFILESDIR", env.profiles)
	t.Setenv("AGENTFOLIO_SCORESDIR", env.scores)
	t.Setenv("AGENTFOLIO_FEATURED_FILE", env.featured)
	return env
}

// mockExit replaces exitFunc and returns a pointer to the recorded code (-1 when not called)
func mockExit(t *testing.T) *int {
	t.Helper()
	code := -1
	original := exitFunc
	exitFunc = func(c int) { code = c }
	t.Cleanup(func() { exitFunc = original })
	return &code
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	fnErr := fn()
	w.Close()
	os.Stdout = old
	return <-done, fnErr
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func decodeJSON(t *testing.T, out string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc), out)
	return doc
}

const githubProfile = `{
  "handle": "Helper",
  "name": "Helper Bot",
  "platforms": {
    "github": {
      "status": "ok",
      "public_repos": 12,
      "recent_commits": 15,
      "stars": 80,
      "bio_has_agent_keywords": true,
      "prs_merged": 6
    }
  }
}`

const cardProfile = `handle: carded
name: Carded Agent
platforms:
  a2a:
    status: ok
    card:
      name: Carded
      schema_version: "1.0"
`
