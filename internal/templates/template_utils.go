package templates

import (
	"strconv"
	"strings"
	"text/template"
)

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", `"`, "&quot;")

// EscapeText escapes free text for the descriptor. Only &, < and " are replaced.
func EscapeText(s string) string {
	return xmlEscaper.Replace(s)
}

// FuncMap returns the helpers available to every template
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"quote":  strconv.Quote,
		"escape": EscapeText,
	}
}
