package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-help"}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr.String(), "Usage: taglib [options] <directory-paths...>")
	assert.Contains(t, stderr.String(), "-module")
	assert.Contains(t, stderr.String(), "-clean")
}

func TestRun_NoArguments(t *testing.T) {
	t.Chdir(t.TempDir())
	var stdout, stderr bytes.Buffer

	code := run(nil, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "At least one directory path is required")
}

func TestRun_UnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-bogus"}, &stdout, &stderr))
}

func setupModule(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"go.mod": "module example.com/demo\n\ngo 1.25\n",
		"tags/lib.go": `//taglib::library -Version=1.0 -ShortName=demo -URI="http://example.com/demo"
package tags
`,
		"tags/hello.go": `package tags

//taglib::tag -Type=tag
type HelloTag struct {
	//taglib::param
	Name string
}
`,
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	t.Chdir(root)
	return root
}

func TestRun_GenerateAndClean(t *testing.T) {
	root := setupModule(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-out", "web", "./..."}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Generation complete!")
	assert.FileExists(t, filepath.Join(root, "tags", "autogen_hello_tag_proxy.go"))
	assert.FileExists(t, filepath.Join(root, "web", "META-INF", "taglib.tld"))

	stdout.Reset()
	code = run([]string{"-clean", "./..."}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Removed 1 generated files")
	assert.NoFileExists(t, filepath.Join(root, "tags", "autogen_hello_tag_proxy.go"))
}

func TestRun_ConfigFile(t *testing.T) {
	root := setupModule(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "taglib.yaml"),
		[]byte("directories: [./tags]\noutput: resources\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-quiet"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Empty(t, stdout.String())
	assert.FileExists(t, filepath.Join(root, "resources", "META-INF", "taglib.tld"))
}

func TestRun_QuietFlagOverridesVerboseConfig(t *testing.T) {
	root := setupModule(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "taglib.yaml"),
		[]byte("directories: [./tags]\nverbose: true\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-quiet"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
	assert.FileExists(t, filepath.Join(root, "tags", "autogen_hello_tag_proxy.go"))
}

func TestRun_ProcessingError(t *testing.T) {
	root := setupModule(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "tags", "bad.go"), []byte(`package tags

type Plain struct {
	//taglib::param
	Name string
}
`), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"./..."}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Missing //taglib::tag on type: example.com/demo/tags.Plain")
	assert.NoFileExists(t, filepath.Join(root, "tags", "autogen_hello_tag_proxy.go"))
}
