package taglib

import (
	"bytes"
	"io"
)

// Return codes of the tag lifecycle methods
const (
	// SkipBody tells the engine to skip the tag body (doStartTag, doAfterBody)
	SkipBody = 0

	// EvalBodyInclude evaluates the body into the current output (doStartTag)
	EvalBodyInclude = 1

	// EvalBodyBuffered evaluates the body into a BodyContent (doStartTag on BodyTag)
	EvalBodyBuffered = 2

	// EvalBodyAgain re-evaluates the body once more (doAfterBody)
	EvalBodyAgain = 2

	// SkipPage stops rendering of the rest of the page (doEndTag)
	SkipPage = 5

	// EvalPage continues rendering the page (doEndTag)
	EvalPage = 6
)

// JspTag is the marker for every tag handler the page engine can instantiate
type JspTag interface{}

// Tag is the classic tag handler contract
type Tag interface {
	SetPageContext(pc PageContext) error
	SetParent(parent Tag)
	Parent() Tag
	DoStartTag() (int, error)
	DoEndTag() (int, error)
	Release()
}

// IterationTag adds body re-evaluation to Tag
type IterationTag interface {
	Tag
	DoAfterBody() (int, error)
}

// BodyTag adds buffered body content to IterationTag
type BodyTag interface {
	IterationTag
	SetBodyContent(bc BodyContent)
	DoInitBody() error
}

// SimpleTag is the single-shot tag handler contract
type SimpleTag interface {
	SetJspContext(pc PageContext) error
	SetParent(parent JspTag)
	Parent() JspTag
	SetJspBody(body Fragment)
	DoTag() error
}

// TryCatchFinally is the optional exception callback capability of classic tags.
// DoCatch returns nil when the error was handled, or the error to propagate.
type TryCatchFinally interface {
	DoCatch(err error) error
	DoFinally()
}

// ProxiedTag is implemented by every generated proxy and exposes the resolved bean
type ProxiedTag interface {
	ProxyTarget() any
}

// ParameterSetter is implemented by generated proxies so engines can assign
// attributes by their descriptor name
type ParameterSetter interface {
	SetParameter(name string, value any) error
}

// Fragment is an invokable piece of page content, e.g. the body of a simple tag
type Fragment interface {
	// Invoke renders the fragment to w, or to the page output when w is nil
	Invoke(w io.Writer) error
}

// FragmentFunc adapts a function to Fragment
type FragmentFunc func(w io.Writer) error

// Invoke calls f(w)
func (f FragmentFunc) Invoke(w io.Writer) error {
	return f(w)
}

// BodyContent buffers the evaluated body of a BodyTag
type BodyContent interface {
	io.Writer
	String() string
	Clear()
	WriteOut(w io.Writer) error
	EnclosingWriter() io.Writer
}

// BufferedBodyContent is the default BodyContent implementation
type BufferedBodyContent struct {
	buf       bytes.Buffer
	enclosing io.Writer
}

// NewBodyContent creates a body buffer nested in the enclosing writer
func NewBodyContent(enclosing io.Writer) *BufferedBodyContent {
	return &BufferedBodyContent{enclosing: enclosing}
}

func (b *BufferedBodyContent) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

func (b *BufferedBodyContent) String() string {
	return b.buf.String()
}

func (b *BufferedBodyContent) Clear() {
	b.buf.Reset()
}

// WriteOut copies the buffered content to w without clearing it
func (b *BufferedBodyContent) WriteOut(w io.Writer) error {
	_, err := w.Write(b.buf.Bytes())
	return err
}

func (b *BufferedBodyContent) EnclosingWriter() io.Writer {
	return b.enclosing
}
