package caip25

// FlattenScope expands a namespace-scoped entry into one entry per concrete
// chain reference. A chain-qualified scope string, or an object without a
// References list, passes through under its original key. Each produced entry
// is a deep clone so downstream per-chain merges never alias siblings; the
// References field never survives flattening.
func FlattenScope(scope ScopeString, obj ExternalScopeObject) ScopesObject {
	namespace, reference := scope.Parse()
	if reference != "" || len(obj.References) == 0 {
		return ScopesObject{scope: obj.ScopeObject.Clone()}
	}
	out := make(ScopesObject, len(obj.References))
	for _, ref := range obj.References {
		out[MakeScopeString(namespace, ref)] = obj.ScopeObject.Clone()
	}
	return out
}

// MergeScopeObjects merges two scope objects. Methods and notifications are
// set-unioned with deduplication. Accounts, rpcDocuments and rpcEndpoints are
// unioned only when at least one side defines the field; absent on both sides
// means absent on the result.
func MergeScopeObjects(a, b ScopeObject) ScopeObject {
	merged := ScopeObject{
		Methods:       unionUnique(a.Methods, b.Methods),
		Notifications: unionUnique(a.Notifications, b.Notifications),
	}
	if a.Accounts != nil || b.Accounts != nil {
		merged.Accounts = unionUnique(a.Accounts, b.Accounts)
	}
	if a.RPCDocuments != nil || b.RPCDocuments != nil {
		merged.RPCDocuments = unionUnique(a.RPCDocuments, b.RPCDocuments)
	}
	if a.RPCEndpoints != nil || b.RPCEndpoints != nil {
		merged.RPCEndpoints = unionUnique(a.RPCEndpoints, b.RPCEndpoints)
	}
	return merged
}

// MergeScopes merges two scopes maps. Keys present in both are merged via
// MergeScopeObjects; keys present in only one are copied through. The result
// key set is the union of both inputs.
func MergeScopes(a, b ScopesObject) ScopesObject {
	out := make(ScopesObject, len(a)+len(b))
	for scope, objA := range a {
		if objB, ok := b[scope]; ok {
			out[scope] = MergeScopeObjects(objA, objB)
		} else {
			out[scope] = objA.Clone()
		}
	}
	for scope, objB := range b {
		if _, ok := a[scope]; !ok {
			out[scope] = objB.Clone()
		}
	}
	return out
}

// FlattenMergeScopes flattens every entry of a raw scopes object and folds
// the results into a single map. A request like
//
//	{ eip155: {references: [1, 5], ...}, eip155:1: {...} }
//
// collapses into eip155:1 (both sources merged) and eip155:5.
func FlattenMergeScopes(scopes ExternalScopesObject) ScopesObject {
	out := make(ScopesObject)
	for scope, obj := range scopes {
		out = MergeScopes(out, FlattenScope(scope, obj))
	}
	return out
}

// unionUnique returns the set union of two slices, first-seen order.
func unionUnique[T comparable](a, b []T) []T {
	seen := make(map[T]struct{}, len(a)+len(b))
	out := make([]T, 0, len(a)+len(b))
	for _, s := range [][]T{a, b} {
		for _, v := range s {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
