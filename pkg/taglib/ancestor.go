package taglib

// FindAncestorWithType walks up the parents of from and returns the first one of type T.
// Proxies are unwrapped, so T names the implementation type, not the generated proxy.
func FindAncestorWithType[T any](from Tag) (T, bool) {
	var zero T
	if from == nil {
		return zero, false
	}

	parent := from.Parent()
	for parent != nil {
		if proxied, ok := parent.(ProxiedTag); ok {
			target, ok := proxied.ProxyTarget().(Tag)
			if !ok {
				return zero, false
			}
			parent = target
		}
		if match, ok := parent.(T); ok {
			return match, true
		}
		parent = parent.Parent()
	}
	return zero, false
}
