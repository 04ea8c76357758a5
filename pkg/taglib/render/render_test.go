package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/taglib/pkg/taglib"
)

type greetTag struct {
	pc       taglib.PageContext
	parent   taglib.Tag
	Greeting string
	Name     string
	events   *[]string
}

func (t *greetTag) SetPageContext(pc taglib.PageContext) error {
	t.pc = pc
	t.record("setPageContext")
	return nil
}

func (t *greetTag) SetParent(parent taglib.Tag) {
	t.parent = parent
	t.record("setParent")
}

func (t *greetTag) Parent() taglib.Tag { return t.parent }

func (t *greetTag) DoStartTag() (int, error) {
	t.record("doStartTag")
	return taglib.EvalBodyInclude, nil
}

func (t *greetTag) DoEndTag() (int, error) {
	t.record("doEndTag")
	_, err := fmt.Fprintf(t.pc.Out(), "%s, %s!", t.Greeting, t.Name)
	return taglib.EvalPage, err
}

func (t *greetTag) Release() { t.record("release") }

func (t *greetTag) record(event string) {
	if t.events != nil {
		*t.events = append(*t.events, event)
	}
}

type greetTagProxy struct {
	taglib.TagProxy[*greetTag]
}

func newGreetTagProxy() taglib.JspTag {
	p := &greetTagProxy{}
	p.Bind(p)
	return p
}

func (p *greetTagProxy) BeanName() string { return "greetTag" }

func (p *greetTagProxy) SetParameter(name string, value any) error {
	s, ok := value.(string)
	if !ok {
		return &taglib.ParameterTypeError{Tag: "greetTag", Name: name, Want: "string", Value: value}
	}
	switch name {
	case "greeting":
		p.TargetBean().Greeting = s
	case "name":
		p.TargetBean().Name = s
	default:
		return &taglib.UnknownParameterError{Tag: "greetTag", Name: name}
	}
	return nil
}

type loopTag struct {
	greetTag
	Count int
}

func (t *loopTag) DoStartTag() (int, error) {
	if t.Count <= 0 {
		return taglib.SkipBody, nil
	}
	return taglib.EvalBodyInclude, nil
}

func (t *loopTag) DoAfterBody() (int, error) {
	t.Count--
	if t.Count > 0 {
		return taglib.EvalBodyAgain, nil
	}
	return taglib.SkipBody, nil
}

func (t *loopTag) DoEndTag() (int, error) { return taglib.EvalPage, nil }

type upperTag struct {
	greetTag
	body taglib.BodyContent
}

func (t *upperTag) DoStartTag() (int, error) { return taglib.EvalBodyBuffered, nil }

func (t *upperTag) DoAfterBody() (int, error) { return taglib.SkipBody, nil }

func (t *upperTag) SetBodyContent(bc taglib.BodyContent) { t.body = bc }

func (t *upperTag) DoInitBody() error { return nil }

func (t *upperTag) DoEndTag() (int, error) {
	_, err := io.WriteString(t.body.EnclosingWriter(), strings.ToUpper(t.body.String()))
	return taglib.EvalPage, err
}

type bufferingTag struct {
	greetTag
}

func (t *bufferingTag) DoStartTag() (int, error) { return taglib.EvalBodyBuffered, nil }

type failingTag struct {
	greetTag
	caught   error
	finished bool
	rethrow  bool
}

func (t *failingTag) DoStartTag() (int, error) { return 0, errors.New("boom") }

func (t *failingTag) DoCatch(err error) error {
	t.caught = err
	if t.rethrow {
		return err
	}
	return nil
}

func (t *failingTag) DoFinally() { t.finished = true }

type skipTag struct {
	greetTag
}

func (t *skipTag) DoEndTag() (int, error) { return taglib.SkipPage, nil }

type wrapTag struct {
	pc     taglib.PageContext
	parent taglib.JspTag
	body   taglib.Fragment
}

func (t *wrapTag) SetJspContext(pc taglib.PageContext) error {
	t.pc = pc
	return nil
}

func (t *wrapTag) SetParent(parent taglib.JspTag) { t.parent = parent }

func (t *wrapTag) Parent() taglib.JspTag { return t.parent }

func (t *wrapTag) SetJspBody(body taglib.Fragment) { t.body = body }

func (t *wrapTag) DoTag() error {
	if _, err := io.WriteString(t.pc.Out(), "["); err != nil {
		return err
	}
	if t.body != nil {
		if err := t.body.Invoke(nil); err != nil {
			return err
		}
	}
	_, err := io.WriteString(t.pc.Out(), "]")
	return err
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func newPage(t *testing.T, factory taglib.BeanFactory) (*taglib.ScopedPageContext, *strings.Builder) {
	t.Helper()
	app := taglib.NewApplication()
	if factory != nil {
		taglib.RegisterContainer(app, "test", factory)
	}
	out := &strings.Builder{}
	return taglib.NewPageContext(context.Background(), out, taglib.Scopes{
		Request:     make(taglib.MapStore),
		Application: app,
	}), out
}

func greetFactory(events *[]string) *taglib.MapBeanFactory {
	return taglib.NewMapBeanFactory().Prototype("greetTag", func() any {
		return &greetTag{events: events}
	})
}

func TestInvoke_ClassicLifecycle(t *testing.T) {
	var events []string
	pc, out := newPage(t, greetFactory(&events))

	err := Invoke(pc, newGreetTagProxy(), Options{
		Attributes: map[string]any{"greeting": "Hello", "name": "World"},
		Body:       text("> "),
	})
	require.NoError(t, err)

	assert.Equal(t, "> Hello, World!", out.String())
	assert.Equal(t, []string{"setPageContext", "setParent", "doStartTag", "doEndTag", "release"}, events)
}

func TestInvoke_AttributesOnTagWithoutSetter(t *testing.T) {
	pc, _ := newPage(t, nil)

	err := Invoke(pc, &greetTag{}, Options{Attributes: map[string]any{"name": "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not accept attributes")
}

func TestInvoke_UnknownAttribute(t *testing.T) {
	pc, _ := newPage(t, greetFactory(nil))

	err := Invoke(pc, newGreetTagProxy(), Options{Attributes: map[string]any{"color": "red"}})

	var unknown *taglib.UnknownParameterError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "color", unknown.Name)
}

func TestInvoke_MissingContainer(t *testing.T) {
	pc, _ := newPage(t, nil)

	err := Invoke(pc, newGreetTagProxy(), Options{})
	assert.ErrorIs(t, err, taglib.ErrContainerNotFound)
}

func TestInvoke_IterationTag(t *testing.T) {
	pc, out := newPage(t, nil)

	require.NoError(t, Invoke(pc, &loopTag{Count: 3}, Options{Body: text("x")}))
	assert.Equal(t, "xxx", out.String())

	out.Reset()
	require.NoError(t, Invoke(pc, &loopTag{Count: 0}, Options{Body: text("x")}))
	assert.Empty(t, out.String())
}

func TestInvoke_BodyTagBuffersBody(t *testing.T) {
	pc, out := newPage(t, nil)

	require.NoError(t, Invoke(pc, &upperTag{}, Options{Body: text("quiet")}))

	assert.Equal(t, "QUIET", out.String())
	assert.Same(t, out, pc.Out(), "body buffer must be popped")
}

func TestInvoke_BufferedBodyRequiresBodyTag(t *testing.T) {
	pc, _ := newPage(t, nil)

	err := Invoke(pc, &bufferingTag{}, Options{Body: text("x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a taglib.BodyTag")
}

func TestInvoke_TryCatchFinally(t *testing.T) {
	pc, _ := newPage(t, nil)

	handled := &failingTag{}
	require.NoError(t, Invoke(pc, handled, Options{}))
	assert.EqualError(t, handled.caught, "boom")
	assert.True(t, handled.finished)

	rethrown := &failingTag{rethrow: true}
	assert.EqualError(t, Invoke(pc, rethrown, Options{}), "boom")
	assert.True(t, rethrown.finished)
}

func TestInvoke_SkipPage(t *testing.T) {
	pc, _ := newPage(t, nil)

	assert.ErrorIs(t, Invoke(pc, &skipTag{}, Options{}), ErrSkipPage)
}

func TestInvoke_SimpleTag(t *testing.T) {
	pc, out := newPage(t, nil)
	parent := &greetTag{}

	tag := &wrapTag{}
	require.NoError(t, Invoke(pc, tag, Options{Parent: parent, Body: text("inside")}))

	assert.Equal(t, "[inside]", out.String())
	assert.Same(t, parent, tag.Parent())
}

func TestInvoke_NotATag(t *testing.T) {
	pc, _ := newPage(t, nil)

	err := Invoke(pc, struct{}{}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither")
}

func TestComponent_NestedTagsSeeTheirParent(t *testing.T) {
	registry := taglib.NewInMemoryRegistry()
	registry.Register("GreetTagProxy", newGreetTagProxy)

	var inner *wrapTag
	registry.Register("WrapTag", func() taglib.JspTag {
		inner = &wrapTag{}
		return inner
	})

	pc, out := newPage(t, greetFactory(nil))
	page := Component("GreetTagProxy", Options{
		Registry:   registry,
		Attributes: map[string]any{"greeting": "Hi", "name": "there"},
		Body:       Component("WrapTag", Options{Registry: registry, Body: text("body")}),
	})

	require.NoError(t, Page(pc, page))

	assert.Equal(t, "[body]Hi, there!", out.String())
	require.NotNil(t, inner)
	_, isProxy := inner.Parent().(*greetTagProxy)
	assert.True(t, isProxy)
}

func TestComponent_ForeignWriter(t *testing.T) {
	pc, out := newPage(t, nil)
	registry := taglib.NewInMemoryRegistry()
	registry.Register("WrapTag", func() taglib.JspTag { return &wrapTag{} })

	var elsewhere strings.Builder
	ctx := WithPageContext(context.Background(), pc)
	err := Component("WrapTag", Options{Registry: registry, Body: text("x")}).Render(ctx, &elsewhere)
	require.NoError(t, err)

	assert.Equal(t, "[x]", elsewhere.String())
	assert.Empty(t, out.String())
}

func TestComponent_Errors(t *testing.T) {
	err := Component("WrapTag", Options{}).Render(context.Background(), io.Discard)
	assert.ErrorIs(t, err, ErrNoPageContext)

	pc, _ := newPage(t, nil)
	err = Page(pc, Component("Missing", Options{Registry: taglib.NewInMemoryRegistry()}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tag class registered as Missing")
}

func TestComponent_SkipPageKeepsOutput(t *testing.T) {
	pc, _ := newPage(t, nil)
	registry := taglib.NewInMemoryRegistry()
	registry.Register("SkipTag", func() taglib.JspTag { return &skipTag{} })

	var elsewhere strings.Builder
	ctx := WithPageContext(context.Background(), pc)
	err := Component("SkipTag", Options{Registry: registry, Body: text("partial")}).Render(ctx, &elsewhere)

	assert.ErrorIs(t, err, ErrSkipPage)
	assert.Equal(t, "partial", elsewhere.String())
}
