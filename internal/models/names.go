package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TagNameFor derives a tag name from a class name unless explicit is set.
// "example.com/ui.WidgetTag" and "example.com/ui.Widget" both become "widget".
func TagNameFor(explicit, className string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	name := strings.TrimSuffix(Unqualify(className), "Tag")
	return Uncapitalize(name)
}

// BeanNameFor derives the container bean name from a class name unless explicit is set
func BeanNameFor(explicit, className string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	return Uncapitalize(Unqualify(className))
}

// AttributeNameFor returns explicit, or the field name the attribute is stored in
func AttributeNameFor(explicit, fieldName string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	return fieldName
}

// Unqualify strips everything up to the last dot
func Unqualify(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// PackageOf strips the last dot-segment. Returns "" for unqualified names.
func PackageOf(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i]
	}
	return ""
}

// Uncapitalize lowers the first rune
func Uncapitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// Capitalize uppercases the first rune
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// SnakeCase converts a Go identifier to snake_case, used for generated file names
func SnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
