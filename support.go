package caip25

import (
	"github.com/ethereum/go-ethereum/common"
)

// ChainIDSupportedFn reports whether a network client exists for the given
// 0x-prefixed hex chain id. Backed by the network-controller collaborator.
type ChainIDSupportedFn func(hexChainID string) bool

// MethodKnownFn reports whether the wallet's JSON-RPC method registry
// recognizes a method for the given scope.
type MethodKnownFn func(scope ScopeString, method string) bool

// InternalAccount is a wallet-held account as reported by the keyring
// collaborator.
type InternalAccount struct {
	Address string
	Type    string
}

// Internal account types eligible for CAIP-25 authorization.
const (
	AccountTypeEOA     = "eip155:eoa"
	AccountTypeERC4337 = "eip155:erc4337"
)

// Notifications the wallet can emit, regardless of chain.
var supportedNotifications = map[string]struct{}{
	"accountsChanged": {},
	"chainChanged":    {},
}

// IsSupportedScopeString reports whether the wallet can offer the given scope.
// Bare "wallet" and "eip155" namespaces are always offerable; chain-qualified
// scopes are evaluated only for eip155, delegating to the injected chain-id
// predicate. Every other namespace is unsupported.
func IsSupportedScopeString(scope ScopeString, isChainIDSupported ChainIDSupportedFn) bool {
	namespace, reference := scope.Parse()
	if namespace == "" {
		return false
	}
	if reference == "" {
		return namespace == NamespaceWallet || namespace == NamespaceEIP155
	}
	if namespace != NamespaceEIP155 {
		return false
	}
	hexChainID, ok := ReferenceToHexChainID(reference)
	if !ok {
		return false
	}
	return isChainIDSupported(hexChainID)
}

// IsSupportedMethod reports whether the wallet's RPC method registry
// recognizes the method for the given scope.
func IsSupportedMethod(scope ScopeString, method string, isMethodKnown MethodKnownFn) bool {
	return isMethodKnown(scope, method)
}

// IsSupportedNotification reports whether the notification is in the wallet's
// fixed allow-list.
func IsSupportedNotification(notification string) bool {
	_, ok := supportedNotifications[notification]
	return ok
}

// IsSupportedAccount reports whether the account id resolves to an internal
// EOA or ERC-4337 account. Address comparison is case-insensitive; only
// eip155 accounts (including the wallet:eip155 synthetic form) qualify.
func IsSupportedAccount(account CaipAccountID, getInternalAccounts func() []InternalAccount) bool {
	namespace, reference, address, err := account.Parse()
	if err != nil {
		return false
	}
	isEvm := namespace == NamespaceEIP155 ||
		(namespace == NamespaceWallet && reference == NamespaceEIP155)
	if !isEvm || !common.IsHexAddress(address) {
		return false
	}
	want := common.HexToAddress(address)
	for _, acct := range getInternalAccounts() {
		if acct.Type != AccountTypeEOA && acct.Type != AccountTypeERC4337 {
			continue
		}
		if common.IsHexAddress(acct.Address) && common.HexToAddress(acct.Address) == want {
			return true
		}
	}
	return false
}
