package git

import (
	"fmt"
	"os/exec"
	"path"
	"sort"
	"strings"
)

// profileExts are the file extensions a profile document can have
var profileExts = map[string]bool{".json": true, ".yaml": true, ".yml": true, ".md": true}

// ChangedProfiles returns the profile documents under dir that differ from HEAD,
// staged or not, plus untracked ones. Paths are slash-separated and relative to dir.
// Outside a git repository it returns nil and no error.
func ChangedProfiles(dir string) ([]string, error) {
	if !IsGitRepo(dir) {
		return nil, nil
	}

	var outputs []string
	if hasCommits(dir) {
		diff, err := run(dir, "diff", "--name-only", "--relative", "HEAD")
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, diff)

		untracked, err := run(dir, "ls-files", "--others", "--exclude-standard")
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, untracked)
	} else {
		// No commits yet: every tracked or untracked file counts as changed.
		all, err := run(dir, "ls-files", "--cached", "--others", "--exclude-standard")
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, all)
	}

	return filterProfiles(strings.Join(outputs, "\n")), nil
}

// IsGitRepo checks if the given directory is within a git repository.
func IsGitRepo(dir string) bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = dir
	return cmd.Run() == nil
}

func hasCommits(dir string) bool {
	cmd := exec.Command("git", "rev-parse", "--verify", "HEAD")
	cmd.Dir = dir
	return cmd.Run() == nil
}

func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w: %s", strings.Join(args, " "), err, out)
	}
	return string(out), nil
}

// filterProfiles keeps lines with a profile extension, deduplicated and sorted
func filterProfiles(gitOutput string) []string {
	seen := make(map[string]bool)
	var files []string
	for _, line := range strings.Split(gitOutput, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || seen[line] {
			continue
		}
		if !profileExts[strings.ToLower(path.Ext(line))] {
			continue
		}
		seen[line] = true
		files = append(files, line)
	}
	sort.Strings(files)
	return files
}
