package taglib

import "fmt"

// AbstractTagProxy holds the bean a generated proxy delegates to. The bean is resolved
// from the container on the first lifecycle call that receives the page context and
// dropped again on release.
type AbstractTagProxy[T any] struct {
	locator  BeanLocator
	target   T
	resolved bool
}

// Bind sets the locator naming the target bean. Generated constructors bind the proxy itself.
func (p *AbstractTagProxy[T]) Bind(locator BeanLocator) {
	p.locator = locator
}

// InitTargetBean resolves a fresh target bean for this page
func (p *AbstractTagProxy[T]) InitTargetBean(pc PageContext) error {
	if p.locator == nil {
		return ErrNotBound
	}

	factory, err := p.beanFactory(pc)
	if err != nil {
		return err
	}

	name := p.locator.BeanName()
	prototype, err := factory.IsPrototype(name)
	if err != nil {
		return fmt.Errorf("failed to inspect bean %s: %w", name, err)
	}
	if !prototype {
		return &ScopeError{BeanName: name}
	}

	bean, err := factory.Bean(name)
	if err != nil {
		return fmt.Errorf("failed to create bean %s: %w", name, err)
	}

	target, ok := bean.(T)
	if !ok {
		var zero T
		return &BeanTypeError{Name: name, Want: fmt.Sprintf("%T", zero), Got: bean}
	}

	p.target = target
	p.resolved = true
	return nil
}

func (p *AbstractTagProxy[T]) beanFactory(pc PageContext) (BeanFactory, error) {
	if locator, ok := p.locator.(FactoryLocator); ok {
		return locator.BeanFactory(pc)
	}
	return DiscoverContainer(pc)
}

// TargetBean returns the resolved bean, or the zero value before resolution
func (p *AbstractTagProxy[T]) TargetBean() T {
	return p.target
}

// Resolved reports whether a target bean is currently held
func (p *AbstractTagProxy[T]) Resolved() bool {
	return p.resolved
}

// ProxyTarget implements ProxiedTag
func (p *AbstractTagProxy[T]) ProxyTarget() any {
	if !p.resolved {
		return nil
	}
	return p.target
}

func (p *AbstractTagProxy[T]) reset() {
	var zero T
	p.target = zero
	p.resolved = false
}

// TagProxy delegates the classic Tag lifecycle
type TagProxy[T Tag] struct {
	AbstractTagProxy[T]
}

func (p *TagProxy[T]) SetPageContext(pc PageContext) error {
	if err := p.InitTargetBean(pc); err != nil {
		return err
	}
	return p.TargetBean().SetPageContext(pc)
}

func (p *TagProxy[T]) SetParent(parent Tag) {
	p.TargetBean().SetParent(parent)
}

func (p *TagProxy[T]) Parent() Tag {
	return p.TargetBean().Parent()
}

func (p *TagProxy[T]) DoStartTag() (int, error) {
	return p.TargetBean().DoStartTag()
}

func (p *TagProxy[T]) DoEndTag() (int, error) {
	return p.TargetBean().DoEndTag()
}

// Release forwards to the target and forgets it; the next cycle resolves a new bean
func (p *TagProxy[T]) Release() {
	if p.resolved {
		p.TargetBean().Release()
	}
	p.reset()
}

// Catch offers err to the target's TryCatchFinally capability, or returns it unchanged
func (p *TagProxy[T]) Catch(err error) error {
	if tcf, ok := any(p.TargetBean()).(TryCatchFinally); ok && p.resolved {
		return tcf.DoCatch(err)
	}
	return err
}

// Finally forwards to the target's TryCatchFinally capability, if any
func (p *TagProxy[T]) Finally() {
	if tcf, ok := any(p.TargetBean()).(TryCatchFinally); ok && p.resolved {
		tcf.DoFinally()
	}
}

// IterationTagProxy delegates the IterationTag lifecycle
type IterationTagProxy[T IterationTag] struct {
	TagProxy[T]
}

func (p *IterationTagProxy[T]) DoAfterBody() (int, error) {
	return p.TargetBean().DoAfterBody()
}

// BodyTagProxy delegates the BodyTag lifecycle
type BodyTagProxy[T BodyTag] struct {
	IterationTagProxy[T]
}

func (p *BodyTagProxy[T]) SetBodyContent(bc BodyContent) {
	p.TargetBean().SetBodyContent(bc)
}

func (p *BodyTagProxy[T]) DoInitBody() error {
	return p.TargetBean().DoInitBody()
}

// SimpleTagProxy delegates the SimpleTag lifecycle
type SimpleTagProxy[T SimpleTag] struct {
	AbstractTagProxy[T]
}

func (p *SimpleTagProxy[T]) SetJspContext(pc PageContext) error {
	if err := p.InitTargetBean(pc); err != nil {
		return err
	}
	return p.TargetBean().SetJspContext(pc)
}

func (p *SimpleTagProxy[T]) SetParent(parent JspTag) {
	p.TargetBean().SetParent(parent)
}

func (p *SimpleTagProxy[T]) Parent() JspTag {
	return p.TargetBean().Parent()
}

func (p *SimpleTagProxy[T]) SetJspBody(body Fragment) {
	p.TargetBean().SetJspBody(body)
}

func (p *SimpleTagProxy[T]) DoTag() error {
	return p.TargetBean().DoTag()
}
