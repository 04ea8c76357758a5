package utils

import "strings"

const (
	// GeneratedFilePrefix and GeneratedFileSuffix frame the names of generated proxy files
	GeneratedFilePrefix = "autogen_"
	GeneratedFileSuffix = "_proxy.go"
)

// IsGeneratedFile reports whether name is a proxy file written by the generator
func IsGeneratedFile(name string) bool {
	return strings.HasPrefix(name, GeneratedFilePrefix) && strings.HasSuffix(name, GeneratedFileSuffix)
}

// GeneratedFileName returns the proxy file name for a snake_cased type name
func GeneratedFileName(snakeType string) string {
	return GeneratedFilePrefix + snakeType + GeneratedFileSuffix
}

// IsScannableGoFile reports whether name is Go source that may carry directives
func IsScannableGoFile(name string) bool {
	return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go") && !IsGeneratedFile(name)
}
