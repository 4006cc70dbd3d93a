package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFilterProfiles(t *testing.T) {
	gitOutput := `agents/helper.json
agents/helper.json
cards/bot.YAML
notes.txt
main.go

nested/deep/profile.yml
README.md
`
	got := filterProfiles(gitOutput)
	want := []string{"README.md", "agents/helper.json", "cards/bot.YAML", "nested/deep/profile.yml"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("filterProfiles() = %v, want %v", got, want)
	}
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func gitCmd(t *testing.T, dir string, args ...string) {
	t.Helper()
	args = append([]string{"-c", "user.email=test@example.com", "-c", "user.name=Test", "-c", "commit.gpgsign=false"}, args...)
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v: %s", args, err, out)
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestChangedProfilesNotARepo(t *testing.T) {
	requireGit(t)
	got, err := ChangedProfiles(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil outside a repository, got %v", got)
	}
}

func TestChangedProfiles(t *testing.T) {
	requireGit(t)
	repo := t.TempDir()
	gitCmd(t, repo, "init", "-q")

	profiles := filepath.Join(repo, "profiles")
	write(t, filepath.Join(profiles, "stable.json"), `{"handle": "stable"}`)
	write(t, filepath.Join(profiles, "edited.json"), `{"handle": "edited"}`)

	// Before the first commit everything counts.
	got, err := ChangedProfiles(profiles)
	if err != nil {
		t.Fatalf("ChangedProfiles() error = %v", err)
	}
	if want := []string{"edited.json", "stable.json"}; !reflect.DeepEqual(got, want) {
		t.Errorf("before commit: got %v, want %v", got, want)
	}

	gitCmd(t, repo, "add", ".")
	gitCmd(t, repo, "commit", "-q", "-m", "initial")

	write(t, filepath.Join(profiles, "edited.json"), `{"handle": "edited", "name": "Edited"}`)
	write(t, filepath.Join(profiles, "new", "fresh.yaml"), "handle: fresh\n")
	write(t, filepath.Join(profiles, "notes.txt"), "ignored")
	write(t, filepath.Join(repo, "outside.json"), `{}`)

	got, err = ChangedProfiles(profiles)
	if err != nil {
		t.Fatalf("ChangedProfiles() error = %v", err)
	}
	if want := []string{"edited.json", "new/fresh.yaml"}; !reflect.DeepEqual(got, want) {
		t.Errorf("after commit: got %v, want %v", got, want)
	}
}
