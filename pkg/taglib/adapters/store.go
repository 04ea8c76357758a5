// Package adapters builds taglib page contexts on top of the request stores of the
// supported web frameworks and serves templ pages through them.
package adapters

import (
	"sort"

	"github.com/toyz/taglib/pkg/taglib"
)

// RequestNamesKey is the framework context key holding the names written through request scope
const RequestNamesKey = "taglib.request.names"

// contextStore exposes a framework's request-local key/value store as request scope.
// Reads see every value in the store; Names only lists what was written through taglib,
// since none of the frameworks can enumerate their keys.
type contextStore struct {
	get func(key string) any
	set func(key string, value any)
}

func (s contextStore) names() map[string]struct{} {
	if names, ok := s.get(RequestNamesKey).(map[string]struct{}); ok {
		return names
	}
	names := make(map[string]struct{})
	s.set(RequestNamesKey, names)
	return names
}

func (s contextStore) Get(name string) (any, bool) {
	v := s.get(name)
	return v, v != nil
}

func (s contextStore) Set(name string, value any) {
	s.set(name, value)
	s.names()[name] = struct{}{}
}

func (s contextStore) Delete(name string) {
	s.set(name, nil)
	delete(s.names(), name)
}

func (s contextStore) Names() []string {
	tracked := s.names()
	names := make([]string, 0, len(tracked))
	for name := range tracked {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func scopes(request taglib.AttributeStore, app *taglib.Application) taglib.Scopes {
	s := taglib.Scopes{Request: request}
	if app != nil {
		s.Application = app
	}
	return s
}
