package cli

import (
	"fmt"

	"github.com/toyz/taglib/internal/utils"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// CleanGeneratedFiles removes all autogen_*_proxy.go files matched by the directory
// patterns and returns the removed paths
func (c *Cleaner) CleanGeneratedFiles(args []string) ([]string, error) {
	patterns, err := ResolvePatterns(args)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, pattern := range patterns {
		files, err := c.fileProcessor.CleanDirectories([]string{pattern.Dir}, pattern.Recursive)
		removed = append(removed, files...)
		if err != nil {
			return removed, fmt.Errorf("failed to clean directory %s: %w", pattern.Dir, err)
		}
	}

	return removed, nil
}
