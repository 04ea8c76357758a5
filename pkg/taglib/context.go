package taglib

import (
	"context"
	"io"
	"sort"
	"sync"
)

// Scope identifies one of the attribute namespaces visible to a page
type Scope int

const (
	PageScope Scope = iota + 1
	RequestScope
	SessionScope
	ApplicationScope
)

// String returns the string representation of the scope
func (s Scope) String() string {
	switch s {
	case PageScope:
		return "page"
	case RequestScope:
		return "request"
	case SessionScope:
		return "session"
	case ApplicationScope:
		return "application"
	default:
		return "unknown"
	}
}

// PageContext gives tag handlers access to the scoped attributes and the output of the page being rendered
type PageContext interface {
	// Context returns the context of the request rendering the page
	Context() context.Context

	// Out returns the current output writer (the innermost body buffer, if any)
	Out() io.Writer

	Attribute(name string, scope Scope) any
	SetAttribute(name string, value any, scope Scope)
	RemoveAttribute(name string, scope Scope)

	// FindAttribute searches page, request, session and application scope in that order
	FindAttribute(name string) any

	// AttributeNamesInScope returns the attribute names of a scope, sorted
	AttributeNamesInScope(scope Scope) []string

	// PushBody starts a new body buffer that becomes the current output
	PushBody() BodyContent

	// PopBody discards the innermost body buffer and returns the restored output
	PopBody() io.Writer
}

// AttributeStore is the backing storage of one scope
type AttributeStore interface {
	Get(name string) (any, bool)
	Set(name string, value any)
	Delete(name string)
	Names() []string
}

// MapStore is an AttributeStore for single-goroutine scopes (page, request)
type MapStore map[string]any

func (m MapStore) Get(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

func (m MapStore) Set(name string, value any) {
	m[name] = value
}

func (m MapStore) Delete(name string) {
	delete(m, name)
}

func (m MapStore) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names
}

// Application is the application scope shared by all requests; it is safe for concurrent use
type Application struct {
	mu    sync.RWMutex
	attrs map[string]any
}

// NewApplication creates an empty application scope
func NewApplication() *Application {
	return &Application{attrs: make(map[string]any)}
}

func (a *Application) Get(name string) (any, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.attrs[name]
	return v, ok
}

func (a *Application) Set(name string, value any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.attrs[name] = value
}

func (a *Application) Delete(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.attrs, name)
}

func (a *Application) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	names := make([]string, 0, len(a.attrs))
	for name := range a.attrs {
		names = append(names, name)
	}
	return names
}

// Scopes holds the stores backing the non-page scopes of a PageContext.
// A nil store makes the scope read as empty and drops writes.
type Scopes struct {
	Request     AttributeStore
	Session     AttributeStore
	Application AttributeStore
}

// ScopedPageContext is the PageContext implementation used by the render bridge and the adapters
type ScopedPageContext struct {
	ctx    context.Context
	out    io.Writer
	page   MapStore
	scopes Scopes
	bodies []BodyContent
}

// NewPageContext creates a page context writing to out. Page scope always starts empty.
func NewPageContext(ctx context.Context, out io.Writer, scopes Scopes) *ScopedPageContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return &ScopedPageContext{
		ctx:    ctx,
		out:    out,
		page:   make(MapStore),
		scopes: scopes,
	}
}

func (c *ScopedPageContext) Context() context.Context {
	return c.ctx
}

func (c *ScopedPageContext) Out() io.Writer {
	if n := len(c.bodies); n > 0 {
		return c.bodies[n-1]
	}
	return c.out
}

func (c *ScopedPageContext) store(scope Scope) AttributeStore {
	switch scope {
	case PageScope:
		return c.page
	case RequestScope:
		return c.scopes.Request
	case SessionScope:
		return c.scopes.Session
	case ApplicationScope:
		return c.scopes.Application
	default:
		return nil
	}
}

func (c *ScopedPageContext) Attribute(name string, scope Scope) any {
	store := c.store(scope)
	if store == nil {
		return nil
	}
	v, _ := store.Get(name)
	return v
}

func (c *ScopedPageContext) SetAttribute(name string, value any, scope Scope) {
	if store := c.store(scope); store != nil {
		store.Set(name, value)
	}
}

func (c *ScopedPageContext) RemoveAttribute(name string, scope Scope) {
	if store := c.store(scope); store != nil {
		store.Delete(name)
	}
}

func (c *ScopedPageContext) FindAttribute(name string) any {
	for _, scope := range []Scope{PageScope, RequestScope, SessionScope, ApplicationScope} {
		if v := c.Attribute(name, scope); v != nil {
			return v
		}
	}
	return nil
}

func (c *ScopedPageContext) AttributeNamesInScope(scope Scope) []string {
	store := c.store(scope)
	if store == nil {
		return nil
	}
	names := store.Names()
	sort.Strings(names)
	return names
}

func (c *ScopedPageContext) PushBody() BodyContent {
	body := NewBodyContent(c.Out())
	c.bodies = append(c.bodies, body)
	return body
}

func (c *ScopedPageContext) PopBody() io.Writer {
	if n := len(c.bodies); n > 0 {
		c.bodies = c.bodies[:n-1]
	}
	return c.Out()
}
