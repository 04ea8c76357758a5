package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/toyz/taglib/internal/errors"
)

// DefaultConfigFile is read when it exists in the working directory and no -config is given
const DefaultConfigFile = "taglib.yaml"

// Config holds the configuration for the CLI generator
type Config struct {
	// Directories is the list of directories to scan for annotated Go files
	Directories []string `yaml:"directories"`

	// ModuleName is the custom module name for imports
	// If empty, will be determined from go.mod file
	ModuleName string `yaml:"module"`

	// OutputDir is the root the descriptor path is resolved against
	OutputDir string `yaml:"output"`

	// Verbose enables detailed logging and error reporting
	Verbose bool `yaml:"verbose"`

	Quiet bool `yaml:"quiet"`

	// Clean removes generated proxy files instead of generating
	Clean bool `yaml:"-"`
}

// LoadConfig reads a YAML config file
func LoadConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapConfigurationError(path, "read", err)
	}

	var config Config
	if err := yaml.Unmarshal(content, &config); err != nil {
		return nil, errors.WrapConfigurationError(path, "parse", err)
	}
	return &config, nil
}

// Merge overlays the non-zero values of override onto c. A verbosity set in override
// replaces the one of c as a whole, so -quiet wins over verbose: true in the file.
func (c *Config) Merge(override Config) {
	if len(override.Directories) > 0 {
		c.Directories = override.Directories
	}
	if override.ModuleName != "" {
		c.ModuleName = override.ModuleName
	}
	if override.OutputDir != "" {
		c.OutputDir = override.OutputDir
	}
	if override.Verbose || override.Quiet {
		c.Verbose = override.Verbose
		c.Quiet = override.Quiet
	}
	c.Clean = c.Clean || override.Clean
}

// Validate checks that the configuration can drive a run and fills in defaults
func (c *Config) Validate() error {
	if len(c.Directories) == 0 {
		return errors.ConfigurationError("directories", "at least one directory path is required").
			WithSuggestion("Pass directories as arguments, e.g. taglib ./...")
	}
	if c.Verbose && c.Quiet {
		return errors.ConfigurationError("verbosity", "-verbose and -quiet are mutually exclusive")
	}
	for _, dir := range c.Directories {
		if dir == "" {
			return errors.ConfigurationError("directories", "empty directory path")
		}
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("directories=%v module=%q output=%q", c.Directories, c.ModuleName, c.OutputDir)
}
