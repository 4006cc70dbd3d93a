package discovery

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrFileNotFound is returned when a path given on the command line does not exist
var ErrFileNotFound = errors.New("file not found")

// FileType categorizes discovered files
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeProfile
	FileTypeAgentCard
	FileTypeScore
)

// String returns the human-readable name of the file type.
func (ft FileType) String() string {
	switch ft {
	case FileTypeProfile:
		return "profile"
	case FileTypeAgentCard:
		return "agent-card"
	case FileTypeScore:
		return "score"
	default:
		return "unknown"
	}
}

// TypePattern maps a glob pattern to a FileType for type detection.
// Patterns are matched in order; first match wins.
type TypePattern struct {
	Pattern  string
	FileType FileType
}

// typePatterns are matched against slash-separated paths relative to the root.
// Agent cards come first so a card inside the profiles tree is not read as a profile.
var typePatterns = []TypePattern{
	{"**/.well-known/agent.json", FileTypeAgentCard},
	{"**/agent.json", FileTypeAgentCard},
	{"**/agent-card.json", FileTypeAgentCard},
	{"**/scores/*.json", FileTypeScore},
	{"**/*.json", FileTypeProfile},
	{"**/*.yaml", FileTypeProfile},
	{"**/*.yml", FileTypeProfile},
	{"**/README.md", FileTypeUnknown},
	{"**/*.md", FileTypeProfile},
}

// DetectFileType determines the type of a path relative to the discovery root.
func DetectFileType(relPath string) FileType {
	relPath = filepath.ToSlash(relPath)
	for _, tp := range typePatterns {
		if matched, err := doublestar.Match(tp.Pattern, relPath); err == nil && matched {
			return tp.FileType
		}
	}
	return FileTypeUnknown
}

// ValidateFilePath checks that path names a readable, non-empty text file and returns its absolute path.
// Symlinks are resolved.
func ValidateFilePath(path string) (absPath string, err error) {
	absPath, err = filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}

	info, err := os.Lstat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, absPath)
		}
		if os.IsPermission(err) {
			return "", fmt.Errorf("permission denied: %s", absPath)
		}
		return "", fmt.Errorf("cannot access file: %s: %w", absPath, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		realPath, evalErr := filepath.EvalSymlinks(absPath)
		if evalErr != nil {
			return "", fmt.Errorf("cannot resolve symlink %s: %w", absPath, evalErr)
		}
		absPath = realPath
		info, err = os.Stat(absPath)
		if err != nil {
			return "", fmt.Errorf("symlink target inaccessible: %s: %w", absPath, err)
		}
	}

	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", absPath)
	}

	if info.Size() == 0 {
		return "", fmt.Errorf("file is empty: %s", absPath)
	}

	f, err := os.Open(absPath)
	if err != nil {
		return "", fmt.Errorf("cannot read file: %s: %w", absPath, err)
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil {
		return "", fmt.Errorf("cannot read file: %s: %w", absPath, err)
	}

	// Null bytes mean binary content
	if bytes.Contains(buf[:n], []byte{0}) {
		return "", fmt.Errorf("file appears to be binary, not text: %s", absPath)
	}

	return absPath, nil
}

// File represents a discovered file
type File struct {
	Path    string
	RelPath string
	Size    int64
	Type    FileType
}

// FileDiscovery finds profile documents under a root directory
type FileDiscovery struct {
	rootPath       string
	pattern        string
	followSymlinks bool
}

// NewFileDiscovery creates a FileDiscovery. An empty pattern matches every JSON and YAML file.
func NewFileDiscovery(rootPath, pattern string, followSymlinks bool) *FileDiscovery {
	if pattern == "" {
		pattern = "**/*.{json,yaml,yml}"
	}
	return &FileDiscovery{
		rootPath:       rootPath,
		pattern:        pattern,
		followSymlinks: followSymlinks,
	}
}

// DiscoverFiles returns every regular file matching the pattern, sorted by relative path.
func (fd *FileDiscovery) DiscoverFiles() ([]File, error) {
	if !doublestar.ValidatePattern(fd.pattern) {
		return nil, fmt.Errorf("invalid pattern %q", fd.pattern)
	}

	info, err := os.Stat(fd.rootPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, fd.rootPath)
		}
		return nil, fmt.Errorf("cannot access %s: %w", fd.rootPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", fd.rootPath)
	}

	matches, err := doublestar.Glob(os.DirFS(fd.rootPath), fd.pattern)
	if err != nil {
		return nil, fmt.Errorf("error evaluating pattern %s: %w", fd.pattern, err)
	}

	var files []File
	for _, match := range matches {
		if f, ok := fd.processMatch(match); ok {
			files = append(files, f)
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// DiscoverProfiles returns only the discovered files that look like profile documents.
func (fd *FileDiscovery) DiscoverProfiles() ([]File, error) {
	files, err := fd.DiscoverFiles()
	if err != nil {
		return nil, err
	}
	profiles := files[:0]
	for _, f := range files {
		if f.Type == FileTypeProfile {
			profiles = append(profiles, f)
		}
	}
	return profiles, nil
}

// processMatch converts a glob match into a File, returning false if the match should be skipped.
func (fd *FileDiscovery) processMatch(match string) (File, bool) {
	fullPath := filepath.Join(fd.rootPath, match)

	info, err := os.Lstat(fullPath)
	if err != nil || info.IsDir() {
		return File{}, false
	}

	if info.Mode()&os.ModeSymlink != 0 {
		resolvedInfo, ok := fd.resolveSymlink(fullPath)
		if !ok {
			return File{}, false
		}
		info = resolvedInfo
	}

	if info.IsDir() || info.Size() == 0 {
		return File{}, false
	}

	return File{
		Path:    fullPath,
		RelPath: filepath.ToSlash(match),
		Size:    info.Size(),
		Type:    DetectFileType(match),
	}, true
}

// resolveSymlink follows a symlink if configured. Links leaving the root are skipped.
func (fd *FileDiscovery) resolveSymlink(fullPath string) (os.FileInfo, bool) {
	if !fd.followSymlinks {
		return nil, false
	}

	realPath, err := filepath.EvalSymlinks(fullPath)
	if err != nil {
		return nil, false
	}

	root, err := filepath.EvalSymlinks(fd.rootPath)
	if err != nil {
		return nil, false
	}
	if realPath != root && !strings.HasPrefix(realPath, root+string(filepath.Separator)) {
		return nil, false
	}

	info, err := os.Stat(realPath)
	if err != nil {
		return nil, false
	}
	return info, true
}
