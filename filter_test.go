package caip25

import (
	"errors"
	"testing"
)

func testSupport() ScopeSupport {
	return ScopeSupport{
		IsChainIDSupported: chainOne,
		IsMethodKnown: func(scope ScopeString, method string) bool {
			return method == "eth_call" || method == "eth_sendTransaction"
		},
	}
}

func TestAssertScopeSupportedErrorCodes(t *testing.T) {
	support := testSupport()
	okObj := ScopeObject{Methods: []string{"eth_call"}, Notifications: []string{"accountsChanged"}}

	tests := []struct {
		name     string
		scope    ScopeString
		obj      ScopeObject
		wantCode int
	}{
		{"unsupported chain", "wallet:badref", okObj, CodeChainsNotSupported},
		{"unsupported eip155 chain", "eip155:137", okObj, CodeChainsNotSupported},
		{
			"unsupported method",
			"eip155:1",
			ScopeObject{Methods: []string{"eth_mine"}, Notifications: []string{"accountsChanged"}},
			CodeMethodsNotSupported,
		},
		{
			"unsupported notification",
			"eip155:1",
			ScopeObject{Methods: []string{"eth_call"}, Notifications: []string{"blockChanged"}},
			CodeNotificationsNotSupported,
		},
		{
			// Chain check runs first, even when methods would also fail.
			"chain failure wins",
			"eip155:137",
			ScopeObject{Methods: []string{"eth_mine"}, Notifications: []string{"blockChanged"}},
			CodeChainsNotSupported,
		},
		{
			// Method check runs before notifications.
			"method failure beats notification",
			"eip155:1",
			ScopeObject{Methods: []string{"eth_mine"}, Notifications: []string{"blockChanged"}},
			CodeMethodsNotSupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AssertScopeSupported(tt.scope, tt.obj, support)
			var caipErr *Error
			if !errors.As(err, &caipErr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if caipErr.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", caipErr.Code, tt.wantCode)
			}
		})
	}

	if err := AssertScopeSupported("eip155:1", okObj, support); err != nil {
		t.Errorf("expected supported scope, got %v", err)
	}
}

func TestBucketScopesSupportedPartition(t *testing.T) {
	scopes := ScopesObject{
		"eip155:1":   {Methods: []string{"eth_call"}, Notifications: []string{}},
		"eip155:137": {Methods: []string{"eth_call"}, Notifications: []string{}},
		"wallet":     {Methods: []string{"eth_call"}, Notifications: []string{}},
		"cosmos:hub": {Methods: []string{}, Notifications: []string{}},
	}

	supported, unsupported := BucketScopesSupported(scopes, testSupport())

	if len(supported)+len(unsupported) != len(scopes) {
		t.Fatalf("partition key count %d+%d != %d", len(supported), len(unsupported), len(scopes))
	}
	for scope := range supported {
		if _, dup := unsupported[scope]; dup {
			t.Errorf("scope %s in both buckets", scope)
		}
		if _, ok := scopes[scope]; !ok {
			t.Errorf("scope %s not in input", scope)
		}
	}
	if _, ok := supported["eip155:1"]; !ok {
		t.Error("eip155:1 should be supported")
	}
	if _, ok := supported["wallet"]; !ok {
		t.Error("wallet should be supported")
	}
	if _, ok := unsupported["eip155:137"]; !ok {
		t.Error("eip155:137 should be unsupported")
	}
	if _, ok := unsupported["cosmos:hub"]; !ok {
		t.Error("cosmos:hub should be unsupported")
	}
}

func TestFilterScopesSupportedDropsSilently(t *testing.T) {
	scopes := ScopesObject{
		"eip155:1":   {Methods: []string{"eth_call"}, Notifications: []string{}},
		"eip155:137": {Methods: []string{"eth_call"}, Notifications: []string{}},
	}

	filtered := FilterScopesSupported(scopes, testSupport())
	if len(filtered) != 1 {
		t.Fatalf("expected 1 surviving scope, got %d", len(filtered))
	}
	if _, ok := filtered["eip155:1"]; !ok {
		t.Error("supported scope dropped")
	}
}

func TestFilterSupportedMethodsAndNotifications(t *testing.T) {
	scopes := ScopesObject{
		"eip155:1": {
			Methods:       []string{"eth_call", "eth_mine"},
			Notifications: []string{"accountsChanged", "blockChanged"},
		},
	}
	registry := func(scope ScopeString, method string) bool { return method == "eth_call" }

	filtered := FilterSupportedMethodsAndNotifications(scopes, registry)
	obj := filtered["eip155:1"]
	if len(obj.Methods) != 1 || obj.Methods[0] != "eth_call" {
		t.Errorf("methods = %v", obj.Methods)
	}
	if len(obj.Notifications) != 1 || obj.Notifications[0] != "accountsChanged" {
		t.Errorf("notifications = %v", obj.Notifications)
	}

	// Input must not be mutated.
	if len(scopes["eip155:1"].Methods) != 2 {
		t.Error("input scopes mutated")
	}
}
