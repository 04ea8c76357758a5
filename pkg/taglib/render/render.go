// Package render hosts tag handlers inside templ pages. It drives the classic and the
// simple tag lifecycle the way a page engine would, so generated proxies can be used as
// templ components.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"

	"github.com/a-h/templ"

	"github.com/toyz/taglib/pkg/taglib"
)

var (
	// ErrSkipPage is returned when a tag's DoEndTag asked to stop rendering the page
	ErrSkipPage = errors.New("tag requested to skip the rest of the page")

	// ErrNoPageContext is returned when a component is rendered outside Page
	ErrNoPageContext = errors.New("no page context in render context: render the page with render.Page")
)

// Options are the per-use settings of a tag
type Options struct {
	// Attributes are assigned through taglib.ParameterSetter in name order
	Attributes map[string]any

	// Body is the tag body; nil means the tag has an empty body
	Body templ.Component

	// Parent is the enclosing tag handler, if any
	Parent taglib.JspTag

	// Registry resolves class names for Component; defaults to taglib.DefaultRegistry
	Registry taglib.Registry
}

type contextKey int

const (
	pageContextKey contextKey = iota
	parentKey
)

// WithPageContext returns a context carrying pc
func WithPageContext(ctx context.Context, pc taglib.PageContext) context.Context {
	return context.WithValue(ctx, pageContextKey, pc)
}

// PageContextFrom returns the page context carried by ctx
func PageContextFrom(ctx context.Context) (taglib.PageContext, bool) {
	pc, ok := ctx.Value(pageContextKey).(taglib.PageContext)
	return pc, ok
}

func parentFrom(ctx context.Context) taglib.JspTag {
	return ctx.Value(parentKey)
}

func bodyContext(pc taglib.PageContext, tag taglib.JspTag) context.Context {
	return context.WithValue(WithPageContext(pc.Context(), pc), parentKey, tag)
}

// Page renders c to the page output with pc available to every nested Component
func Page(pc taglib.PageContext, c templ.Component) error {
	return c.Render(WithPageContext(pc.Context(), pc), pc.Out())
}

// Component returns a templ component that instantiates the tag registered under
// className and invokes it. The enclosing Component, if any, becomes its parent.
func Component(className string, opts Options) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pc, ok := PageContextFrom(ctx)
		if !ok {
			return ErrNoPageContext
		}

		registry := opts.Registry
		if registry == nil {
			registry = taglib.DefaultRegistry
		}
		tag, err := registry.New(className)
		if err != nil {
			return err
		}

		use := opts
		if use.Parent == nil {
			use.Parent = parentFrom(ctx)
		}

		if sameWriter(w, pc.Out()) {
			return Invoke(pc, tag, use)
		}

		// the caller renders into its own writer; capture the tag output and copy it there
		body := pc.PushBody()
		err = Invoke(pc, tag, use)
		pc.PopBody()
		if err != nil && !errors.Is(err, ErrSkipPage) {
			return err
		}
		if werr := body.WriteOut(w); werr != nil {
			return werr
		}
		return err
	})
}

func sameWriter(a, b io.Writer) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}

// Invoke runs one complete lifecycle of handler, which must be a taglib.Tag or a
// taglib.SimpleTag
func Invoke(pc taglib.PageContext, handler taglib.JspTag, opts Options) error {
	switch tag := handler.(type) {
	case taglib.Tag:
		return invokeClassic(pc, tag, opts)
	case taglib.SimpleTag:
		return invokeSimple(pc, tag, opts)
	default:
		return fmt.Errorf("%T is neither a taglib.Tag nor a taglib.SimpleTag", handler)
	}
}

func invokeClassic(pc taglib.PageContext, tag taglib.Tag, opts Options) error {
	if err := tag.SetPageContext(pc); err != nil {
		return err
	}
	defer tag.Release()

	parent, _ := opts.Parent.(taglib.Tag)
	tag.SetParent(parent)

	if err := setAttributes(tag, opts.Attributes); err != nil {
		return err
	}

	skip, err := runClassic(pc, tag, opts.Body)
	if tcf, ok := tag.(taglib.TryCatchFinally); ok {
		if err != nil {
			err = tcf.DoCatch(err)
		}
		tcf.DoFinally()
	}
	if err != nil {
		return err
	}
	if skip {
		return ErrSkipPage
	}
	return nil
}

func runClassic(pc taglib.PageContext, tag taglib.Tag, body templ.Component) (bool, error) {
	start, err := tag.DoStartTag()
	if err != nil {
		return false, err
	}

	if start != taglib.SkipBody && body != nil {
		if err := evalBody(pc, tag, start, body); err != nil {
			return false, err
		}
	}

	end, err := tag.DoEndTag()
	if err != nil {
		return false, err
	}
	return end == taglib.SkipPage, nil
}

func evalBody(pc taglib.PageContext, tag taglib.Tag, start int, body templ.Component) error {
	if start == taglib.EvalBodyBuffered {
		bodyTag, ok := tag.(taglib.BodyTag)
		if !ok {
			return fmt.Errorf("%T returned EvalBodyBuffered but is not a taglib.BodyTag", tag)
		}
		bc := pc.PushBody()
		defer pc.PopBody()

		bodyTag.SetBodyContent(bc)
		if err := bodyTag.DoInitBody(); err != nil {
			return err
		}
	}

	iteration, _ := tag.(taglib.IterationTag)
	ctx := bodyContext(pc, tag)
	for {
		if err := body.Render(ctx, pc.Out()); err != nil {
			return err
		}
		if iteration == nil {
			return nil
		}
		next, err := iteration.DoAfterBody()
		if err != nil {
			return err
		}
		if next != taglib.EvalBodyAgain {
			return nil
		}
	}
}

func invokeSimple(pc taglib.PageContext, tag taglib.SimpleTag, opts Options) error {
	if err := tag.SetJspContext(pc); err != nil {
		return err
	}
	if opts.Parent != nil {
		tag.SetParent(opts.Parent)
	}

	if err := setAttributes(tag, opts.Attributes); err != nil {
		return err
	}

	if opts.Body != nil {
		tag.SetJspBody(&fragment{pc: pc, tag: tag, body: opts.Body})
	}
	return tag.DoTag()
}

type fragment struct {
	pc   taglib.PageContext
	tag  taglib.JspTag
	body templ.Component
}

func (f *fragment) Invoke(w io.Writer) error {
	if w == nil {
		w = f.pc.Out()
	}
	return f.body.Render(bodyContext(f.pc, f.tag), w)
}

func setAttributes(handler taglib.JspTag, attributes map[string]any) error {
	if len(attributes) == 0 {
		return nil
	}

	setter, ok := handler.(taglib.ParameterSetter)
	if !ok {
		return fmt.Errorf("%T does not accept attributes", handler)
	}

	names := make([]string, 0, len(attributes))
	for name := range attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := setter.SetParameter(name, attributes[name]); err != nil {
			return err
		}
	}
	return nil
}
