package caip25

import "errors"

// ScopeSupport bundles the injected predicates the assertion, filter and
// bucket operations evaluate scopes against.
type ScopeSupport struct {
	IsChainIDSupported ChainIDSupportedFn
	IsMethodKnown      MethodKnownFn
}

// AssertScopeSupported raises a CAIP-25 error when any part of the scope is
// unsupported. Checks run in fixed order (chains, then methods, then
// notifications) and the first failure wins.
func AssertScopeSupported(scope ScopeString, obj ScopeObject, support ScopeSupport) error {
	if !IsSupportedScopeString(scope, support.IsChainIDSupported) {
		return ErrChainsNotSupported()
	}
	for _, method := range obj.Methods {
		if !IsSupportedMethod(scope, method, support.IsMethodKnown) {
			return ErrMethodsNotSupported()
		}
	}
	for _, notification := range obj.Notifications {
		if !IsSupportedNotification(notification) {
			return ErrNotificationsNotSupported()
		}
	}
	return nil
}

// FilterScopesSupported returns a new scopes map keeping only fully supported
// entries. Unsupported entries are dropped silently.
func FilterScopesSupported(scopes ScopesObject, support ScopeSupport) ScopesObject {
	supported, _ := BucketScopesSupported(scopes, support)
	return supported
}

// BucketScopesSupported partitions a scopes map into supported and
// unsupported halves. The two halves are disjoint and their key sets union to
// the input's key set.
func BucketScopesSupported(scopes ScopesObject, support ScopeSupport) (supported, unsupported ScopesObject) {
	supported = make(ScopesObject)
	unsupported = make(ScopesObject)
	for scope, obj := range scopes {
		if err := AssertScopeSupported(scope, obj, support); err != nil {
			unsupported[scope] = obj
		} else {
			supported[scope] = obj
		}
	}
	return supported, unsupported
}

// FilterSupportedMethodsAndNotifications returns a copy of the scopes map
// with methods and notifications the wallet does not recognize removed.
// Entries themselves are kept even when emptied; chain support is judged
// separately by bucketing.
func FilterSupportedMethodsAndNotifications(scopes ScopesObject, isMethodKnown MethodKnownFn) ScopesObject {
	out := make(ScopesObject, len(scopes))
	for scope, obj := range scopes {
		kept := obj.Clone()
		kept.Methods = filterItems(obj.Methods, func(m string) bool {
			return IsSupportedMethod(scope, m, isMethodKnown)
		})
		kept.Notifications = filterItems(obj.Notifications, IsSupportedNotification)
		out[scope] = kept
	}
	return out
}

// IsCaip25Error reports whether err carries one of the CAIP-25 defined codes.
func IsCaip25Error(err error) bool {
	var caipErr *Error
	if !errors.As(err, &caipErr) {
		return false
	}
	switch caipErr.Code {
	case CodeChainsNotSupported, CodeMethodsNotSupported,
		CodeNotificationsNotSupported, CodeInvalidSessionProperties:
		return true
	}
	return false
}

func filterItems[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, v := range items {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
