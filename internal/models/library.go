package models

import (
	"fmt"
	"sort"
)

// Library is the aggregate of one processing pass. It owns every Tag and keeps two
// indices over them: by tag name and by implementation class name.
type Library struct {
	TLibVersion    string
	JSPVersion     string
	ShortName      string
	URI            string
	Info           string
	DescriptorName string
	FactoryKey     string

	tags       map[string]*Tag
	classIndex map[string]*Tag
}

// NewLibrary creates an empty library with the descriptor defaults
func NewLibrary() *Library {
	return &Library{
		JSPVersion:     DefaultEngineVersion,
		DescriptorName: DefaultDescriptorName,
		tags:           make(map[string]*Tag),
		classIndex:     make(map[string]*Tag),
	}
}

// AddTag registers a tag. A duplicate tag name is rejected and leaves both indices untouched.
func (l *Library) AddTag(tag *Tag) error {
	if _, exists := l.tags[tag.Name()]; exists {
		return fmt.Errorf("Tag '%s' already defined", tag.Name())
	}
	l.tags[tag.Name()] = tag
	l.classIndex[tag.ClassName()] = tag
	return nil
}

// Tag returns the tag registered under name
func (l *Library) Tag(name string) (*Tag, bool) {
	tag, ok := l.tags[name]
	return tag, ok
}

// TagForClass returns the tag implemented by the fully qualified className
func (l *Library) TagForClass(className string) (*Tag, bool) {
	tag, ok := l.classIndex[className]
	return tag, ok
}

// Len returns the number of registered tags
func (l *Library) Len() int {
	return len(l.tags)
}

// SortedTags returns the tags in ascending name order
func (l *Library) SortedTags() []*Tag {
	tags := make([]*Tag, 0, len(l.tags))
	for _, tag := range l.tags {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Less(tags[j]) })
	return tags
}
