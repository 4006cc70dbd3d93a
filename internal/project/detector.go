package project

import (
	"os"
	"path/filepath"
)

// RCFiles are the config file names looked up in a workspace root, in order of preference
var RCFiles = []string{".agentfoliorc.json", ".agentfoliorc.yaml", ".agentfoliorc.yml"}

// Info describes an agentfolio workspace.
// Named 'Info' instead of 'ProjectInfo' to avoid stuttering (project.Info vs project.ProjectInfo).
type Info struct {
	Root   string
	RCFile string
	HasGit bool
}

// FindRoot climbs from startPath to the nearest directory holding an rc file
// or a .git directory. It returns the absolute startPath when neither is found.
func FindRoot(startPath string) (string, error) {
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return "", err
	}

	currentDir := absPath
	for {
		if isRoot(currentDir) {
			return currentDir, nil
		}
		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}
		currentDir = parent
	}
	return absPath, nil
}

func isRoot(path string) bool {
	if rcFile(path) != "" {
		return true
	}
	return exists(filepath.Join(path, ".git"))
}

// Detect reports what the workspace at rootPath contains
func Detect(rootPath string) *Info {
	info := &Info{
		Root:   rootPath,
		HasGit: exists(filepath.Join(rootPath, ".git")),
	}
	if name := rcFile(rootPath); name != "" {
		info.RCFile = filepath.Join(rootPath, name)
	}
	return info
}

// rcFile returns the first rc file name present in dir
func rcFile(dir string) string {
	for _, name := range RCFiles {
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil && !info.IsDir() {
			return name
		}
	}
	return ""
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
