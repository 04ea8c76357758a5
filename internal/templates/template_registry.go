package templates

import (
	"bytes"
	"fmt"
	"text/template"
)

// Template names
const (
	ProxyTemplate      = "proxy"
	DescriptorTemplate = "descriptor"
)

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
	parsed    map[string]*template.Template
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
		parsed:    make(map[string]*template.Template),
	}

	registry.templates[ProxyTemplate] = proxyTemplate
	registry.templates[DescriptorTemplate] = descriptorTemplate

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

// Execute renders the named template with data
func (tr *TemplateRegistry) Execute(name string, data interface{}) ([]byte, error) {
	tmpl, err := tr.lookup(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (tr *TemplateRegistry) lookup(name string) (*template.Template, error) {
	if tmpl, ok := tr.parsed[name]; ok {
		return tmpl, nil
	}

	text, ok := tr.Get(name)
	if !ok {
		return nil, fmt.Errorf("template not found: %s", name)
	}

	tmpl, err := template.New(name).Funcs(FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	tr.parsed[name] = tmpl
	return tmpl, nil
}
