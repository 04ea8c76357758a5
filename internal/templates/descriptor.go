package templates

// DescriptorData is the input of the descriptor template
type DescriptorData struct {
	TLibVersion string
	JSPVersion  string
	ShortName   string
	URI         string
	Info        string
	Tags        []DescriptorTag
}

// DescriptorTag is one <tag> block
type DescriptorTag struct {
	Name        string
	TagClass    string
	BodyContent string
	Info        string
	HasInfo     bool
	Attributes  []DescriptorAttribute
}

// DescriptorAttribute is one <attribute> block
type DescriptorAttribute struct {
	Name        string
	Required    bool
	RTExprValue bool
}

const descriptorTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE taglib PUBLIC "-//Sun Microsystems, Inc.//DTD JSP Tag Library 1.1//EN" "http://java.sun.com/j2ee/dtds/web-jsptaglibrary_1_1.dtd">
<!-- Generated file, do not edit! -->
<taglib>
  <tlibversion>{{.TLibVersion}}</tlibversion>
  <jspversion>{{.JSPVersion}}</jspversion>
  <shortname>{{.ShortName}}</shortname>
  <uri>{{escape .URI}}</uri>
  <info>{{escape .Info}}</info>
{{- range .Tags}}
  <tag>
    <name>{{.Name}}</name>
    <tagclass>{{.TagClass}}</tagclass>
    <bodycontent>{{.BodyContent}}</bodycontent>
{{- if .HasInfo}}
    <info>{{escape .Info}}</info>
{{- end}}
{{- range .Attributes}}
    <attribute>
      <name>{{.Name}}</name>
      <required>{{.Required}}</required>
      <rtexprvalue>{{.RTExprValue}}</rtexprvalue>
    </attribute>
{{- end}}
  </tag>
{{- end}}
</taglib>
`
