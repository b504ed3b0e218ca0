package caip25

import "github.com/ethereum/go-ethereum/common"

// GrantableAccounts returns a copy of the scopes map with each scope's
// accounts reduced to those whose address matches an unlocked wallet account.
// Address comparison is case-insensitive. Only this intersection is eligible
// for grant.
func GrantableAccounts(scopes ScopesObject, unlockedAddresses []string) ScopesObject {
	unlocked := make(map[common.Address]struct{}, len(unlockedAddresses))
	for _, addr := range unlockedAddresses {
		if common.IsHexAddress(addr) {
			unlocked[common.HexToAddress(addr)] = struct{}{}
		}
	}

	out := make(ScopesObject, len(scopes))
	for scope, obj := range scopes {
		kept := obj.Clone()
		if obj.Accounts != nil {
			kept.Accounts = filterItems(obj.Accounts, func(a CaipAccountID) bool {
				address := a.Address()
				if !common.IsHexAddress(address) {
					return false
				}
				_, ok := unlocked[common.HexToAddress(address)]
				return ok
			})
		}
		out[scope] = kept
	}
	return out
}

// RequestedAddresses collects the distinct EVM addresses named across all
// scopes' accounts, first-seen order. Used for the first-connection metrics
// payload.
func RequestedAddresses(scopes ScopesObject) []string {
	seen := make(map[common.Address]struct{})
	var out []string
	for _, obj := range scopes {
		for _, account := range obj.Accounts {
			address := account.Address()
			if !common.IsHexAddress(address) {
				continue
			}
			key := common.HexToAddress(address)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, address)
		}
	}
	return out
}
