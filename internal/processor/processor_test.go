package processor

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/taglib/internal/errors"
	"github.com/toyz/taglib/internal/models"
	"github.com/toyz/taglib/internal/parser"
)

type recordingReporter struct {
	errors   []errors.TaglibError
	warnings []string
	notes    []string
}

func (r *recordingReporter) Error(err errors.TaglibError) {
	r.errors = append(r.errors, err)
}

func (r *recordingReporter) Warning(loc errors.SourceLocation, format string, args ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Note(format string, args ...interface{}) {
	r.notes = append(r.notes, fmt.Sprintf(format, args...))
}

type failingFiler struct{}

func (failingFiler) Commit([]*models.GeneratedFile) error {
	return fmt.Errorf("disk full")
}

func scan(t *testing.T, sources ...string) *models.Batch {
	t.Helper()
	batch := &models.Batch{}
	p := parser.NewParser()
	for i, src := range sources {
		parsed, err := p.ParseSource(fmt.Sprintf("/src/demo/file%d.go", i), src, "example.com/demo")
		require.NoError(t, err)
		batch.Merge(parsed)
	}
	return batch
}

const demoLibrary = `//taglib::library -Version=1.0 -ShortName=demo -Descriptor=demo.tld
//taglib::info Demo tags
package demo
`

const helloTag = `package demo

//taglib::tag -Type=tag
//taglib::info Prints a greeting
type HelloTag struct {
	//taglib::param -Required
	Name string

	//taglib::param
	Greeting string
}
`

func TestProcess_HelloScenario(t *testing.T) {
	filer := NewMemoryFiler()
	reporter := &recordingReporter{}

	result, err := NewProcessor(filer, reporter).Process(scan(t, demoLibrary, helloTag))
	require.NoError(t, err)
	assert.Empty(t, reporter.errors)
	assert.Empty(t, reporter.warnings)

	assert.Equal(t, 1, result.TagCount())
	assert.Equal(t, []string{"example.com/demo.HelloTagProxy", "demo.tld"}, result.Names())
	assert.Equal(t, []string{"/src/demo/autogen_hello_tag_proxy.go", "demo.tld"}, filer.Paths())

	descriptor, ok := filer.File("demo.tld")
	require.True(t, ok)
	tld := string(descriptor.Content)
	assert.Contains(t, tld, "<shortname>demo</shortname>")
	assert.Contains(t, tld, "<tlibversion>1.0</tlibversion>")
	assert.Contains(t, tld, "<info>Demo tags</info>")
	assert.Contains(t, tld, "<name>hello</name>")
	assert.Contains(t, tld, "<tagclass>example.com/demo.HelloTagProxy</tagclass>")
	assert.Contains(t, tld, "<info>Prints a greeting</info>")
	assert.Equal(t, 1, strings.Count(tld, "<tag>"))
	assert.Equal(t, 2, strings.Count(tld, "<attribute>"))

	greeting := strings.Index(tld, "<name>greeting</name>")
	name := strings.Index(tld, "<name>name</name>")
	require.True(t, greeting > 0 && name > 0)
	assert.Less(t, greeting, name)
	assert.Contains(t, tld, "<name>name</name>\n      <required>true</required>")
	assert.Contains(t, tld, "<name>greeting</name>\n      <required>false</required>")

	proxy, ok := filer.File("/src/demo/autogen_hello_tag_proxy.go")
	require.True(t, ok)
	assert.Contains(t, string(proxy.Content), "p.TargetBean().Name = v")
	assert.Contains(t, string(proxy.Content), `return "helloTag"`)
}

func TestProcess_DerivedAndExplicitNames(t *testing.T) {
	src := `package demo

//taglib::tag -Type=simple -Name=hi -Bean=greeter -BodyContent=empty
type Widget struct {
	//taglib::param -Name=label -Dynamic=false
	Text string
}

//taglib::tag -Type=body
type WidgetTag struct{}
`
	filer := NewMemoryFiler()
	result, err := NewProcessor(filer, &recordingReporter{}).Process(scan(t, demoLibrary, src))
	require.NoError(t, err)

	hi, ok := result.Library.Tag("hi")
	require.True(t, ok)
	assert.Equal(t, "greeter", hi.BeanName)
	assert.Equal(t, models.BodyContentEmpty, hi.BodyContent())
	assert.Equal(t, models.TypeCategorySimple, hi.Category())

	label, ok := hi.Attribute("label")
	require.True(t, ok)
	assert.Equal(t, "Text", label.Field())
	assert.False(t, label.Dynamic())
	assert.False(t, label.Required())

	widget, ok := result.Library.Tag("widget")
	require.True(t, ok)
	assert.Equal(t, "widgetTag", widget.BeanName)
	assert.Equal(t, models.BodyContentJSP, widget.BodyContent())
}

func TestProcess_Failures(t *testing.T) {
	tests := []struct {
		name    string
		sources []string
		message string
		code    errors.ErrorCode
	}{
		{
			name: "duplicate tag name",
			sources: []string{demoLibrary, `package demo

//taglib::tag -Type=tag
type HelloTag struct{}

//taglib::tag -Type=tag -Name=hello
type Greeter struct{}
`},
			message: "Tag 'hello' already defined",
			code:    errors.DuplicateErrorCode,
		},
		{
			name: "duplicate library factory",
			sources: []string{`//taglib::factory appContainer
package demo
`, `//taglib::factory otherContainer
package demo
`, helloTag},
			message: "Package //taglib::factory already defined",
			code:    errors.DuplicateErrorCode,
		},
		{
			name: "duplicate library",
			sources: []string{demoLibrary, `//taglib::library -Version=2.0 -ShortName=other
package demo
`, helloTag},
			message: "//taglib::library already defined",
			code:    errors.DuplicateErrorCode,
		},
		{
			name: "param without tag",
			sources: []string{`package demo

type Plain struct {
	//taglib::param
	Name string
}
`},
			message: "Missing //taglib::tag on type: example.com/demo.Plain",
			code:    errors.MissingDeclarationErrorCode,
		},
		{
			name: "info without tag",
			sources: []string{`package demo

//taglib::info Orphan
type Plain struct{}
`},
			message: "Missing //taglib::tag on type: example.com/demo.Plain",
			code:    errors.MissingDeclarationErrorCode,
		},
		{
			name: "unsupported type",
			sources: []string{`package demo

//taglib::tag -Type=fragment
type HelloTag struct{}
`},
			message: "No proxy for tag type fragment",
			code:    errors.ConfigurationErrorCode,
		},
		{
			name: "duplicate attribute",
			sources: []string{`package demo

//taglib::tag -Type=tag
type HelloTag struct {
	//taglib::param
	Name string

	//taglib::param -Name=name
	Other string
}
`},
			message: "Tag hello: parameter name already defined",
			code:    errors.DuplicateErrorCode,
		},
		{
			name: "setter clash between attributes",
			sources: []string{`package demo

//taglib::tag -Type=tag
type HelloTag struct {
	//taglib::param
	Name string

	//taglib::param -Name=Name
	Other string
}
`},
			message: "Tag hello: parameter Name clashes with parameter name on SetName",
			code:    errors.ValidationErrorCode,
		},
		{
			name: "try catch on simple tag",
			sources: []string{`package demo

//taglib::tag -Type=simple -TryCatchFinally
type HelloTag struct{}
`},
			message: "-TryCatchFinally is not available for simple tags",
			code:    errors.ValidationErrorCode,
		},
		{
			name: "reserved setter",
			sources: []string{`package demo

//taglib::tag -Type=tag
type HelloTag struct {
	//taglib::param
	PageContext string
}
`},
			message: "parameter pageContext clashes with proxy method SetPageContext",
			code:    errors.ValidationErrorCode,
		},
		{
			name: "empty derived tag name",
			sources: []string{`package demo

//taglib::tag -Type=tag
type Tag struct{}
`},
			message: "Tag name of example.com/demo.Tag must not be empty",
			code:    errors.ValidationErrorCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filer := NewMemoryFiler()
			reporter := &recordingReporter{}

			result, err := NewProcessor(filer, reporter).Process(scan(t, tt.sources...))
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Contains(t, err.Error(), tt.message)
			assert.Zero(t, filer.Len(), "no artifact is committed on failure")

			require.Len(t, reporter.errors, 1)
			assert.Equal(t, tt.code, reporter.errors[0].ErrorCode())
			assert.NotEmpty(t, reporter.errors[0].Location().File)
		})
	}
}

func TestProcess_FactoryKeys(t *testing.T) {
	src := `//taglib::factory appContainer
package demo

//taglib::tag -Type=tag
type HelloTag struct{}

//taglib::tag -Type=tag
//taglib::factory adminContainer
type AdminTag struct{}
`
	filer := NewMemoryFiler()
	result, err := NewProcessor(filer, &recordingReporter{}).Process(scan(t, demoLibrary, src))
	require.NoError(t, err)
	assert.Equal(t, "appContainer", result.Library.FactoryKey)

	hello, _ := filer.File("/src/demo/autogen_hello_tag_proxy.go")
	admin, _ := filer.File("/src/demo/autogen_admin_tag_proxy.go")
	require.NotNil(t, hello)
	require.NotNil(t, admin)
	assert.Contains(t, string(hello.Content), `AttributeFactory(pc, "appContainer")`)
	assert.Contains(t, string(admin.Content), `AttributeFactory(pc, "adminContainer")`)
}

func TestProcess_NoTags(t *testing.T) {
	filer := NewMemoryFiler()
	result, err := NewProcessor(filer, &recordingReporter{}).Process(scan(t, demoLibrary))
	require.NoError(t, err)
	assert.Zero(t, result.TagCount())
	assert.Empty(t, result.Files)
	assert.Zero(t, filer.Len())
}

func TestProcess_MissingLibraryWarns(t *testing.T) {
	filer := NewMemoryFiler()
	reporter := &recordingReporter{}

	_, err := NewProcessor(filer, reporter).Process(scan(t, helloTag))
	require.NoError(t, err)
	require.Len(t, reporter.warnings, 1)
	assert.Contains(t, reporter.warnings[0], "no //taglib::library declared")

	_, ok := filer.File(models.DefaultDescriptorName)
	assert.True(t, ok)
}

func TestProcess_CommitFailure(t *testing.T) {
	reporter := &recordingReporter{}

	_, err := NewProcessor(failingFiler{}, reporter).Process(scan(t, demoLibrary, helloTag))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	require.Len(t, reporter.errors, 1)
	assert.Equal(t, errors.FileSystemErrorCode, reporter.errors[0].ErrorCode())
}

func TestProcess_ProxyPathCollision(t *testing.T) {
	src := `package demo

//taglib::tag -Type=tag
type HTMLTag struct{}

//taglib::tag -Type=tag
type HtmlTag struct{}
`
	filer := NewMemoryFiler()
	reporter := &recordingReporter{}

	result, err := NewProcessor(filer, reporter).Process(scan(t, demoLibrary, src))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "would both be written to /src/demo/autogen_html_tag_proxy.go")
	assert.Zero(t, filer.Len())

	require.Len(t, reporter.errors, 1)
	assert.Equal(t, errors.DuplicateErrorCode, reporter.errors[0].ErrorCode())
}

func TestProcess_StateResetBetweenBatches(t *testing.T) {
	p := NewProcessor(NewMemoryFiler(), &recordingReporter{})

	_, err := p.Process(scan(t, demoLibrary, helloTag))
	require.NoError(t, err)

	// a second batch declaring the same library and tag again starts clean
	result, err := p.Process(scan(t, demoLibrary, helloTag))
	require.NoError(t, err)
	assert.Equal(t, 1, result.TagCount())

	_, err = p.Process(scan(t, demoLibrary, demoLibrary))
	require.Error(t, err)

	result, err = p.Process(scan(t, demoLibrary, helloTag))
	require.NoError(t, err)
	assert.Equal(t, 1, result.TagCount())
}
