// Package taglib is the runtime half of the taglib generator.
//
// Tag handlers are written as ordinary structs managed by a dependency injection
// container. The generator emits a proxy per handler that the page engine can
// instantiate directly; the proxy embeds one of TagProxy, IterationTagProxy,
// BodyTagProxy or SimpleTagProxy, fetches a fresh handler bean from the container
// when it receives the page context, and forwards every lifecycle call to it.
//
// The container is located through the page context: either a BeanFactory stored
// under a //taglib::factory key in any scope, or the first application attribute
// whose name starts with ContainerAttributePrefix.
package taglib
