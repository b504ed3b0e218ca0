package caip25

import "testing"

func TestGrantableAccountsIntersection(t *testing.T) {
	scopes := ScopesObject{
		"eip155:1": {
			Methods:       []string{"eth_call"},
			Notifications: []string{},
			Accounts: []CaipAccountID{
				"eip155:1:0xDEADbeef00000000000000000000000000000001",
				"eip155:1:0xdeadbeef00000000000000000000000000000002",
				"eip155:1:0xdeadbeef00000000000000000000000000000004",
			},
		},
	}
	unlocked := []string{
		"0xdeadBEEF00000000000000000000000000000001",
		"0xdeadbeef00000000000000000000000000000002",
		"0xdeadbeef00000000000000000000000000000003",
	}

	granted := GrantableAccounts(scopes, unlocked)
	accounts := granted["eip155:1"].Accounts
	if len(accounts) != 2 {
		t.Fatalf("expected 2 granted accounts, got %v", accounts)
	}
	// Original input untouched.
	if len(scopes["eip155:1"].Accounts) != 3 {
		t.Error("input scopes mutated")
	}
}

func TestGrantableAccountsAbsentFieldPreserved(t *testing.T) {
	scopes := ScopesObject{
		"eip155:1": {Methods: []string{"eth_call"}, Notifications: []string{}},
	}
	granted := GrantableAccounts(scopes, []string{"0xdeadbeef00000000000000000000000000000001"})
	if granted["eip155:1"].Accounts != nil {
		t.Error("absent accounts field materialized")
	}
}

func TestRequestedAddresses(t *testing.T) {
	scopes := ScopesObject{
		"eip155:1": {
			Accounts: []CaipAccountID{
				"eip155:1:0xdeadbeef00000000000000000000000000000001",
				"eip155:1:0xDEADBEEF00000000000000000000000000000001", // same address, different case
			},
		},
		"eip155:137": {
			Accounts: []CaipAccountID{
				"eip155:137:0xdeadbeef00000000000000000000000000000002",
			},
		},
	}

	addresses := RequestedAddresses(scopes)
	if len(addresses) != 2 {
		t.Errorf("expected 2 distinct addresses, got %v", addresses)
	}
}
