package models

// FileKind tells a Filer where an artifact belongs
type FileKind int

const (
	// SourceFile is Go source written next to the package it belongs to
	SourceFile FileKind = iota
	// ResourceFile is written below the output directory
	ResourceFile
)

// GeneratedFile is one artifact rendered by a generator
type GeneratedFile struct {
	Kind    FileKind
	Name    string // proxy class name, or descriptor name
	Path    string // package dir joined with the file name, or the descriptor path
	Content []byte
}
