package caip25

import (
	"sort"
	"testing"
)

func sortedStrings(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

func equalStringSets(t *testing.T, a, b []string) bool {
	t.Helper()
	a, b = sortedStrings(a), sortedStrings(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFlattenScopeConcretePassthrough(t *testing.T) {
	obj := ExternalScopeObject{
		ScopeObject: ScopeObject{
			Methods:       []string{"eth_sendTransaction"},
			Notifications: []string{"accountsChanged"},
		},
	}

	flattened := FlattenScope("eip155:1", obj)
	if len(flattened) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(flattened))
	}
	got, ok := flattened["eip155:1"]
	if !ok {
		t.Fatal("expected key eip155:1")
	}
	if !equalStringSets(t, got.Methods, obj.Methods) ||
		!equalStringSets(t, got.Notifications, obj.Notifications) {
		t.Error("contents changed during passthrough flatten")
	}
}

func TestFlattenScopeNamespaceExpansion(t *testing.T) {
	obj := ExternalScopeObject{
		ScopeObject: ScopeObject{
			Methods:       []string{"eth_call"},
			Notifications: []string{},
		},
		References: []string{"1", "5"},
	}

	flattened := FlattenScope("eip155", obj)
	if len(flattened) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(flattened))
	}

	one, ok1 := flattened["eip155:1"]
	five, ok5 := flattened["eip155:5"]
	if !ok1 || !ok5 {
		t.Fatalf("expected keys eip155:1 and eip155:5, got %v", flattened.Keys())
	}

	// Entries must be independent clones: mutating one must not affect
	// the other.
	one.Methods[0] = "mutated"
	if five.Methods[0] != "eth_call" {
		t.Error("sibling entries alias the same methods array")
	}
}

func TestMergeScopeObjectsCommutativeSets(t *testing.T) {
	a := ScopeObject{
		Methods:       []string{"eth_call", "eth_sendTransaction"},
		Notifications: []string{"accountsChanged"},
	}
	b := ScopeObject{
		Methods:       []string{"eth_sendTransaction", "eth_getBalance"},
		Notifications: []string{"chainChanged", "accountsChanged"},
	}

	ab := MergeScopeObjects(a, b)
	ba := MergeScopeObjects(b, a)

	if !equalStringSets(t, ab.Methods, ba.Methods) {
		t.Errorf("method sets differ: %v vs %v", ab.Methods, ba.Methods)
	}
	if !equalStringSets(t, ab.Notifications, ba.Notifications) {
		t.Errorf("notification sets differ: %v vs %v", ab.Notifications, ba.Notifications)
	}
	if !equalStringSets(t, ab.Methods, []string{"eth_call", "eth_sendTransaction", "eth_getBalance"}) {
		t.Errorf("unexpected merged methods: %v", ab.Methods)
	}
}

func TestMergeScopeObjectsOptionalFields(t *testing.T) {
	a := ScopeObject{Methods: []string{}, Notifications: []string{}}
	b := ScopeObject{Methods: []string{}, Notifications: []string{}}

	merged := MergeScopeObjects(a, b)
	if merged.Accounts != nil {
		t.Error("accounts should stay absent when absent on both sides")
	}
	if merged.RPCDocuments != nil || merged.RPCEndpoints != nil {
		t.Error("rpc fields should stay absent when absent on both sides")
	}

	b.Accounts = []CaipAccountID{"eip155:1:0xabc"}
	merged = MergeScopeObjects(a, b)
	if len(merged.Accounts) != 1 {
		t.Errorf("expected accounts union when one side defines the field, got %v", merged.Accounts)
	}
}

func TestMergeScopesKeyUnion(t *testing.T) {
	a := ScopesObject{
		"eip155:1": {Methods: []string{"eth_call"}, Notifications: []string{}},
		"eip155:5": {Methods: []string{"eth_getBalance"}, Notifications: []string{}},
	}
	b := ScopesObject{
		"eip155:1":   {Methods: []string{"eth_sendTransaction"}, Notifications: []string{}},
		"eip155:137": {Methods: []string{"eth_call"}, Notifications: []string{}},
	}

	merged := MergeScopes(a, b)
	if len(merged) != 3 {
		t.Fatalf("expected union of 3 keys, got %d", len(merged))
	}
	if !equalStringSets(t, merged["eip155:1"].Methods, []string{"eth_call", "eth_sendTransaction"}) {
		t.Errorf("shared key not merged: %v", merged["eip155:1"].Methods)
	}
	if len(merged["eip155:5"].Methods) != 1 || len(merged["eip155:137"].Methods) != 1 {
		t.Error("exclusive keys not copied through")
	}
}

func TestFlattenMergeScopes(t *testing.T) {
	scopes := ExternalScopesObject{
		"eip155": {
			ScopeObject: ScopeObject{
				Methods:       []string{"eth_call"},
				Notifications: []string{},
			},
			References: []string{"1", "5"},
		},
		"eip155:1": {
			ScopeObject: ScopeObject{
				Methods:       []string{"eth_sendTransaction"},
				Notifications: []string{},
			},
		},
	}

	merged := FlattenMergeScopes(scopes)
	if len(merged) != 2 {
		t.Fatalf("expected keys eip155:1 and eip155:5, got %v", merged.Keys())
	}
	if !equalStringSets(t, merged["eip155:1"].Methods, []string{"eth_call", "eth_sendTransaction"}) {
		t.Errorf("eip155:1 methods not merged from both sources: %v", merged["eip155:1"].Methods)
	}
	if !equalStringSets(t, merged["eip155:5"].Methods, []string{"eth_call"}) {
		t.Errorf("eip155:5 methods: %v", merged["eip155:5"].Methods)
	}
	for scope := range merged {
		if scope.IsNamespaceScoped() {
			t.Errorf("namespace key %s survived flattening", scope)
		}
	}
}
