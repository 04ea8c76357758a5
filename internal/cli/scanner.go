package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/toyz/taglib/internal/errors"
	"github.com/toyz/taglib/internal/utils"
)

// DirectoryScanner handles directory scanning for Go packages
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// DirectoryPattern is a resolved command line directory argument
type DirectoryPattern struct {
	Dir       string
	Recursive bool
}

// ResolvePatterns resolves Go-style arguments: "./..." scans recursively, a plain
// directory only scans itself
func ResolvePatterns(args []string) ([]DirectoryPattern, error) {
	patterns := make([]DirectoryPattern, 0, len(args))

	for _, arg := range args {
		recursive := false
		dir := arg
		if arg == "..." || strings.HasSuffix(filepath.ToSlash(arg), "/...") {
			recursive = true
			dir = strings.TrimSuffix(strings.TrimSuffix(filepath.ToSlash(arg), "..."), "/")
			if dir == "" {
				dir = "."
			}
		}

		cleanPath, err := filepath.Abs(filepath.FromSlash(dir))
		if err != nil {
			return nil, errors.WrapWithOperation("process", fmt.Sprintf("path resolution %s", dir), err)
		}
		patterns = append(patterns, DirectoryPattern{Dir: cleanPath, Recursive: recursive})
	}

	return patterns, nil
}

// ScanDirectories returns the package directories matched by the given patterns, each once
func (s *DirectoryScanner) ScanDirectories(args []string) ([]string, error) {
	patterns, err := ResolvePatterns(args)
	if err != nil {
		return nil, err
	}

	var result []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		dirs, err := s.fileProcessor.ScanDirectoriesWithGoFiles([]string{pattern.Dir}, pattern.Recursive)
		if err != nil {
			return nil, err
		}
		for _, dir := range dirs {
			if !seen[dir] {
				seen[dir] = true
				result = append(result, dir)
			}
		}
	}

	return result, nil
}
