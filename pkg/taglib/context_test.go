package taglib

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopedPageContext_FindAttributeOrder(t *testing.T) {
	app := NewApplication()
	session := make(MapStore)
	pc := NewPageContext(context.Background(), &strings.Builder{}, Scopes{
		Request:     make(MapStore),
		Session:     session,
		Application: app,
	})

	pc.SetAttribute("name", "application", ApplicationScope)
	assert.Equal(t, "application", pc.FindAttribute("name"))

	pc.SetAttribute("name", "session", SessionScope)
	assert.Equal(t, "session", pc.FindAttribute("name"))

	pc.SetAttribute("name", "request", RequestScope)
	assert.Equal(t, "request", pc.FindAttribute("name"))

	pc.SetAttribute("name", "page", PageScope)
	assert.Equal(t, "page", pc.FindAttribute("name"))

	pc.RemoveAttribute("name", PageScope)
	assert.Equal(t, "request", pc.FindAttribute("name"))
	assert.Nil(t, pc.FindAttribute("missing"))
}

func TestScopedPageContext_MissingScope(t *testing.T) {
	pc := NewPageContext(nil, &strings.Builder{}, Scopes{})
	require.NotNil(t, pc.Context())

	pc.SetAttribute("dropped", true, SessionScope)
	assert.Nil(t, pc.Attribute("dropped", SessionScope))
	assert.Empty(t, pc.AttributeNamesInScope(ApplicationScope))
}

func TestScopedPageContext_NamesSorted(t *testing.T) {
	app := NewApplication()
	app.Set("b", 2)
	app.Set("c", 3)
	app.Set("a", 1)
	pc := NewPageContext(context.Background(), &strings.Builder{}, Scopes{Application: app})

	assert.Equal(t, []string{"a", "b", "c"}, pc.AttributeNamesInScope(ApplicationScope))
}

func TestScopedPageContext_BodyStack(t *testing.T) {
	var out strings.Builder
	pc := NewPageContext(context.Background(), &out, Scopes{})

	body := pc.PushBody()
	fmt.Fprint(pc.Out(), "buffered")
	assert.Equal(t, "buffered", body.String())
	assert.Empty(t, out.String())

	restored := pc.PopBody()
	assert.Same(t, &out, restored)
	require.NoError(t, body.WriteOut(restored))
	assert.Equal(t, "buffered", out.String())

	// popping an empty stack keeps the page writer
	assert.Same(t, &out, pc.PopBody())
}

func TestApplication_ConcurrentAccess(t *testing.T) {
	app := NewApplication()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			app.Set(ContainerCacheAttribute, i)
			app.Get(ContainerCacheAttribute)
			app.Names()
		}(i)
	}
	wg.Wait()

	_, ok := app.Get(ContainerCacheAttribute)
	assert.True(t, ok)
}

func TestScope_String(t *testing.T) {
	assert.Equal(t, "page", PageScope.String())
	assert.Equal(t, "application", ApplicationScope.String())
	assert.Equal(t, "unknown", Scope(42).String())
}
