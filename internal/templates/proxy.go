package templates

// ProxyData is the input of the proxy template
type ProxyData struct {
	PackageName    string
	Imports        []ImportSpec
	Runtime        string // qualifier of the runtime package in the generated file
	ProxyName      string
	ProxyClassName string
	TypeName       string
	TagName        string
	Base           string
	BeanName       string
	FactoryKey     string
	TryCatch       bool
	Attributes     []AttributeData
}

// AttributeData describes one generated setter
type AttributeData struct {
	Name   string
	Method string
	Field  string
	Type   string
}

const proxyTemplate = `// Code generated by taglib. DO NOT EDIT.

package {{.PackageName}}

import (
{{- range .Imports}}
	{{if .Name}}{{.Name}} {{end}}{{quote .Path}}
{{- end}}
)

// {{.ProxyName}} is the handler the page engine instantiates for the {{quote .TagName}} tag.
// Every call is delegated to a fresh {{.TypeName}} bean from the container.
type {{.ProxyName}} struct {
	{{.Runtime}}.{{.Base}}[*{{.TypeName}}]
}

// New{{.ProxyName}} creates an unbound proxy
func New{{.ProxyName}}() *{{.ProxyName}} {
	p := &{{.ProxyName}}{}
	p.Bind(p)
	return p
}

// BeanName returns the container name of the target bean
func (p *{{.ProxyName}}) BeanName() string {
	return {{quote .BeanName}}
}
{{- if .FactoryKey}}

// BeanFactory returns the container stored under the {{quote .FactoryKey}} attribute
func (p *{{.ProxyName}}) BeanFactory(pc {{.Runtime}}.PageContext) ({{.Runtime}}.BeanFactory, error) {
	return {{.Runtime}}.AttributeFactory(pc, {{quote .FactoryKey}})
}
{{- end}}
{{- range .Attributes}}

// {{.Method}} assigns the {{quote .Name}} attribute. It fails with ErrNotInitialized until the
// page context is set.
func (p *{{$.ProxyName}}) {{.Method}}(v {{.Type}}) error {
	if !p.Resolved() {
		return {{$.Runtime}}.ErrNotInitialized
	}
	p.TargetBean().{{.Field}} = v
	return nil
}
{{- end}}

// SetParameter assigns an attribute by its descriptor name
func (p *{{.ProxyName}}) SetParameter(name string, value any) error {
	if !p.Resolved() {
		return {{.Runtime}}.ErrNotInitialized
	}
	switch name {
{{- range .Attributes}}
	case {{quote .Name}}:
		v, ok := value.({{.Type}})
		if !ok {
			return &{{$.Runtime}}.ParameterTypeError{Tag: {{quote $.TagName}}, Name: name, Want: {{quote .Type}}, Value: value}
		}
		return p.{{.Method}}(v)
{{- end}}
	}
	return &{{.Runtime}}.UnknownParameterError{Tag: {{quote .TagName}}, Name: name}
}
{{- if .TryCatch}}

func (p *{{.ProxyName}}) DoCatch(err error) error {
	return p.Catch(err)
}

func (p *{{.ProxyName}}) DoFinally() {
	p.Finally()
}

var _ {{.Runtime}}.TryCatchFinally = (*{{.ProxyName}})(nil)
{{- end}}

func init() {
	{{.Runtime}}.RegisterTag({{quote .ProxyClassName}}, func() {{.Runtime}}.JspTag {
		return New{{.ProxyName}}()
	})
}
`
