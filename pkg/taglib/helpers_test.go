package taglib

import (
	"context"
	"errors"
	"io"
	"strings"
)

type fakeFactory struct {
	prototypes map[string]func() any
	singletons map[string]any
	calls      int
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		prototypes: make(map[string]func() any),
		singletons: make(map[string]any),
	}
}

func (f *fakeFactory) IsPrototype(name string) (bool, error) {
	if _, ok := f.prototypes[name]; ok {
		return true, nil
	}
	if _, ok := f.singletons[name]; ok {
		return false, nil
	}
	return false, errors.New("no bean named " + name)
}

func (f *fakeFactory) Bean(name string) (any, error) {
	f.calls++
	if ctor, ok := f.prototypes[name]; ok {
		return ctor(), nil
	}
	if bean, ok := f.singletons[name]; ok {
		return bean, nil
	}
	return nil, errors.New("no bean named " + name)
}

type recordingTag struct {
	pc       PageContext
	parent   Tag
	events   []string
	start    int
	startErr error
	greeting string
}

func (t *recordingTag) SetPageContext(pc PageContext) error {
	t.pc = pc
	t.events = append(t.events, "setPageContext")
	return nil
}

func (t *recordingTag) SetParent(parent Tag) {
	t.parent = parent
	t.events = append(t.events, "setParent")
}

func (t *recordingTag) Parent() Tag {
	return t.parent
}

func (t *recordingTag) DoStartTag() (int, error) {
	t.events = append(t.events, "doStartTag")
	return t.start, t.startErr
}

func (t *recordingTag) DoEndTag() (int, error) {
	t.events = append(t.events, "doEndTag")
	if _, err := io.WriteString(t.pc.Out(), "hello "+t.greeting); err != nil {
		return SkipPage, err
	}
	return EvalPage, nil
}

func (t *recordingTag) Release() {
	t.events = append(t.events, "release")
}

type catchingTag struct {
	recordingTag
	caught   error
	finished bool
}

func (t *catchingTag) DoCatch(err error) error {
	t.caught = err
	return nil
}

func (t *catchingTag) DoFinally() {
	t.finished = true
}

type recordingProxy struct {
	TagProxy[*recordingTag]
	name string
}

func newRecordingProxy(name string) *recordingProxy {
	p := &recordingProxy{name: name}
	p.Bind(p)
	return p
}

func (p *recordingProxy) BeanName() string {
	return p.name
}

type keyedProxy struct {
	TagProxy[*recordingTag]
	key string
}

func (p *keyedProxy) BeanName() string {
	return "recordingTag"
}

func (p *keyedProxy) BeanFactory(pc PageContext) (BeanFactory, error) {
	return AttributeFactory(pc, p.key)
}

func newTestPageContext(app *Application, out *strings.Builder) *ScopedPageContext {
	return NewPageContext(context.Background(), out, Scopes{
		Request:     make(MapStore),
		Application: app,
	})
}
