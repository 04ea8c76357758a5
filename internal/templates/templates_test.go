package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeText(t *testing.T) {
	assert.Equal(t, `a &amp; b &lt;c> &quot;d&quot; 'e'`, EscapeText(`a & b <c> "d" 'e'`))
	assert.Equal(t, "", EscapeText(""))
}

func TestImportManager_RuntimeQualifier(t *testing.T) {
	tests := []struct {
		name    string
		imports []ImportSpec
		want    string
		alias   string
	}{
		{
			name: "no clash",
			imports: []ImportSpec{
				{Path: "fmt"},
			},
			want: "taglib",
		},
		{
			name: "runtime already imported",
			imports: []ImportSpec{
				{Name: "rt", Path: RuntimeImportPath},
			},
			want:  "rt",
			alias: "rt",
		},
		{
			name: "another taglib package",
			imports: []ImportSpec{
				{Path: "example.com/other/taglib"},
			},
			want:  "taglibrt",
			alias: "taglibrt",
		},
		{
			name: "every candidate taken",
			imports: []ImportSpec{
				{Path: "example.com/other/taglib"},
				{Name: "taglibrt", Path: "example.com/rt"},
			},
			want:  "taglibrt2",
			alias: "taglibrt2",
		},
		{
			name: "versioned path",
			imports: []ImportSpec{
				{Path: "example.com/taglib/v2"},
			},
			want:  "taglibrt",
			alias: "taglibrt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			im := NewImportManager()
			for _, imp := range tt.imports {
				im.AddImport(imp.Name, imp.Path)
			}

			assert.Equal(t, tt.want, im.RuntimeQualifier())
			assert.Equal(t, tt.want, im.RuntimeQualifier(), "qualifier must be stable")
			assert.Contains(t, im.Imports(), ImportSpec{Name: tt.alias, Path: RuntimeImportPath})
		})
	}
}

func TestImportManager_Imports(t *testing.T) {
	im := NewImportManager()
	im.AddImport("", "strings")
	im.AddImport("str", "strings")
	im.AddImport("_", "embed")
	im.AddImport(".", "example.com/dot")
	im.AddImport("yaml", "gopkg.in/yaml.v3")
	im.AddImport("", "")

	assert.Equal(t, []ImportSpec{
		{Name: "yaml", Path: "gopkg.in/yaml.v3"},
		{Path: "strings"},
	}, im.Imports())
}

func TestEffectiveName(t *testing.T) {
	assert.Equal(t, "yaml", effectiveName("", "gopkg.in/yaml.v3"))
	assert.Equal(t, "echo", effectiveName("", "github.com/labstack/echo/v4"))
	assert.Equal(t, "isatty", effectiveName("", "github.com/mattn/go-isatty"))
	assert.Equal(t, "x", effectiveName("x", "github.com/labstack/echo/v4"))
}

func TestTemplateRegistry(t *testing.T) {
	registry := NewTemplateRegistry()

	_, ok := registry.Get(ProxyTemplate)
	assert.True(t, ok)
	assert.Panics(t, func() { registry.MustGet("nope") })

	_, err := registry.Execute("nope", nil)
	assert.EqualError(t, err, "template not found: nope")

	out, err := registry.Execute(DescriptorTemplate, &DescriptorData{
		TLibVersion: "1.0",
		JSPVersion:  "1.1",
		ShortName:   "x",
		URI:         "urn:a&b",
		Tags: []DescriptorTag{
			{Name: "t", TagClass: "p.TProxy", BodyContent: "empty"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<uri>urn:a&amp;b</uri>")
	assert.Contains(t, string(out), "  <tag>\n    <name>t</name>\n    <tagclass>p.TProxy</tagclass>\n    <bodycontent>empty</bodycontent>\n  </tag>\n")
}
