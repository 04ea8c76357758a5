package taglib

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formTag struct {
	recordingTag
}

func TestFindAncestorWithType(t *testing.T) {
	app := NewApplication()
	factory := newFakeFactory()
	factory.prototypes["formTag"] = func() any { return &formTag{} }
	app.Set(ContainerAttributePrefix+"root", factory)

	var out strings.Builder
	pc := newTestPageContext(app, &out)

	outer := &formProxy{}
	outer.Bind(outer)
	require.NoError(t, outer.SetPageContext(pc))

	middle := &recordingTag{}
	middle.SetParent(outer)
	child := &recordingTag{}
	child.SetParent(middle)

	form, ok := FindAncestorWithType[*formTag](child)
	require.True(t, ok)
	assert.Same(t, outer.TargetBean(), form)

	_, ok = FindAncestorWithType[*catchingTag](child)
	assert.False(t, ok)

	_, ok = FindAncestorWithType[*formTag](nil)
	assert.False(t, ok)
}

type formProxy struct {
	TagProxy[*formTag]
}

func (p *formProxy) BeanName() string {
	return "formTag"
}
