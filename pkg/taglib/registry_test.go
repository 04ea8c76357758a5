package taglib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRegistry(t *testing.T) {
	registry := NewInMemoryRegistry()
	registry.Register("example.com/tags.HelloTagProxy", func() JspTag { return newRecordingProxy("helloTag") })
	registry.Register("example.com/tags.AnchorTagProxy", func() JspTag { return newRecordingProxy("anchorTag") })

	assert.Equal(t, []string{"example.com/tags.AnchorTagProxy", "example.com/tags.HelloTagProxy"}, registry.ClassNames())

	tag, err := registry.New("example.com/tags.HelloTagProxy")
	require.NoError(t, err)
	proxy, ok := tag.(*recordingProxy)
	require.True(t, ok)
	assert.Equal(t, "helloTag", proxy.BeanName())

	other, err := registry.New("example.com/tags.HelloTagProxy")
	require.NoError(t, err)
	assert.NotSame(t, tag, other)

	_, err = registry.New("example.com/tags.Missing")
	assert.Error(t, err)
}
