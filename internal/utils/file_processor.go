package utils

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/taglib/internal/errors"
)

// DirectoryFilter decides whether a directory is descended into
type DirectoryFilter func(path string, info os.DirEntry) bool

// FileProcessor walks source trees for the scanner and the cleaner
type FileProcessor struct {
	directoryFilter DirectoryFilter
}

// NewFileProcessor creates a file processor with the default directory filter
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{directoryFilter: sourceDirectoryFilter()}
}

// sourceDirectoryFilter skips hidden, underscore-prefixed, vendored and build output directories
func sourceDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		"testdata":     true,
		"build":        true,
		"dist":         true,
	}

	return func(path string, info os.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			return false
		}
		return !skipDirs[name]
	}
}

// ScanDirectoriesWithGoFiles returns rootDirs and their subdirectories that contain scannable Go
// files, each directory once, in walk order
func (fp *FileProcessor) ScanDirectoriesWithGoFiles(rootDirs []string, recursive bool) ([]string, error) {
	var packageDirs []string
	visited := make(map[string]bool)

	for _, rootDir := range rootDirs {
		err := fp.walk(rootDir, recursive, func(dir string, entries []os.DirEntry) error {
			if visited[dir] {
				return nil
			}
			visited[dir] = true
			for _, entry := range entries {
				if !entry.IsDir() && IsScannableGoFile(entry.Name()) {
					packageDirs = append(packageDirs, dir)
					break
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return packageDirs, nil
}

// CleanDirectories removes generated proxy files and returns the removed paths, sorted
func (fp *FileProcessor) CleanDirectories(rootDirs []string, recursive bool) ([]string, error) {
	var removed []string

	for _, rootDir := range rootDirs {
		err := fp.walk(rootDir, recursive, func(dir string, entries []os.DirEntry) error {
			for _, entry := range entries {
				if entry.IsDir() || !IsGeneratedFile(entry.Name()) {
					continue
				}
				path := filepath.Join(dir, entry.Name())
				if err := os.Remove(path); err != nil {
					return errors.WrapFileSystemError("remove", path, err)
				}
				removed = append(removed, path)
			}
			return nil
		})
		if err != nil {
			return removed, err
		}
	}

	sort.Strings(removed)
	return removed, nil
}

func (fp *FileProcessor) walk(dir string, recursive bool, visit func(dir string, entries []os.DirEntry) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.WrapFileSystemError("read directory", dir, err)
	}

	if err := visit(dir, entries); err != nil {
		return err
	}
	if !recursive {
		return nil
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !fp.directoryFilter(path, entry) {
			continue
		}
		if err := fp.walk(path, true, visit); err != nil {
			return err
		}
	}
	return nil
}
