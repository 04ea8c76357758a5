package cli

import (
	"os"
	"path/filepath"

	"github.com/toyz/taglib/internal/errors"
	"github.com/toyz/taglib/internal/models"
)

// DiskFiler writes proxy sources to their package directories and resources below an
// output directory
type DiskFiler struct {
	outputDir string
	written   []string
}

// NewDiskFiler creates a filer placing resource files below outputDir
func NewDiskFiler(outputDir string) *DiskFiler {
	if outputDir == "" {
		outputDir = "."
	}
	return &DiskFiler{outputDir: outputDir}
}

type stagedFile struct {
	temp   string
	target string
}

// Commit stages every file as a temporary sibling of its target and renames them into
// place only after all were written. A failed staging removes every temporary file.
func (f *DiskFiler) Commit(files []*models.GeneratedFile) error {
	staged := make([]stagedFile, 0, len(files))
	cleanup := func() {
		for _, s := range staged {
			os.Remove(s.temp)
		}
	}

	for _, file := range files {
		target := f.targetPath(file)
		temp, err := stage(target, file.Content)
		if err != nil {
			cleanup()
			return err
		}
		staged = append(staged, stagedFile{temp: temp, target: target})
	}

	for i, s := range staged {
		if err := os.Rename(s.temp, s.target); err != nil {
			cleanup()
			return errors.WrapFileSystemError("write", s.target, err)
		}
		staged[i].temp = ""
		f.written = append(f.written, s.target)
	}
	return nil
}

// Written returns the paths written so far
func (f *DiskFiler) Written() []string {
	return f.written
}

func (f *DiskFiler) targetPath(file *models.GeneratedFile) string {
	if file.Kind == models.ResourceFile && !filepath.IsAbs(file.Path) {
		return filepath.Join(f.outputDir, filepath.FromSlash(file.Path))
	}
	return file.Path
}

func stage(target string, content []byte) (string, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.WrapFileSystemError("create directory for", target, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return "", errors.WrapFileSystemError("create", target, err)
	}

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", errors.WrapFileSystemError("write", target, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", errors.WrapFileSystemError("write", target, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", errors.WrapFileSystemError("write", target, err)
	}
	return tmp.Name(), nil
}
