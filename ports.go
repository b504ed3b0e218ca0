package caip25

import "context"

// Collaborator ports consumed by the session controller. Each is injected at
// construction; the controller never reaches into ambient wallet state.

// ChainSupport answers whether a network client exists for a chain, and
// whether one could be provisioned on demand. Backed by the
// network-controller.
type ChainSupport interface {
	IsChainIDSupported(hexChainID string) bool

	// IsChainIDSupportable is the extension point for eip3085
	// auto-provisioning. The wallet's current implementation returns a
	// fixed false; bucket call sites still consult it.
	IsChainIDSupportable(hexChainID string) bool
}

// ChainSupportFunc adapts a bare supported-predicate into a ChainSupport
// whose supportable check is the fixed false of the current wallet behavior.
type ChainSupportFunc func(hexChainID string) bool

func (f ChainSupportFunc) IsChainIDSupported(hexChainID string) bool { return f(hexChainID) }

func (f ChainSupportFunc) IsChainIDSupportable(string) bool { return false }

// MethodRegistry answers whether the wallet's JSON-RPC middleware table
// recognizes a method for a scope.
type MethodRegistry interface {
	IsMethodKnown(scope ScopeString, method string) bool
}

// MethodRegistryFunc adapts a function into a MethodRegistry.
type MethodRegistryFunc func(scope ScopeString, method string) bool

func (f MethodRegistryFunc) IsMethodKnown(scope ScopeString, method string) bool {
	return f(scope, method)
}

// Accounts exposes the wallet's account state.
type Accounts interface {
	// ListUnlockedAccounts returns the addresses of currently unlocked
	// EVM accounts.
	ListUnlockedAccounts() []string

	// ListInternalAccounts returns all wallet-held accounts with their
	// keyring types.
	ListInternalAccounts() []InternalAccount
}

// PermissionGrant runs the permission-controller approval flow and returns
// the caveat value the user actually granted.
type PermissionGrant interface {
	RequestPermissions(ctx context.Context, origin string, requested CaveatValue) (*CaveatValue, error)
}

// NetworkProvisioning creates and tears down network clients for eip3085
// scoped properties. RemoveNetwork is the compensating action when a grant
// fails after provisioning.
type NetworkProvisioning interface {
	AddNetwork(ctx context.Context, params AddEthereumChainParams) (networkClientID string, err error)
	RemoveNetwork(ctx context.Context, hexChainID string) error
}

// Metrics is the analytics sink for the one-shot first-connection event.
type Metrics interface {
	Track(event MetricsEvent)
}

// MetricsEvent is the payload sent on an origin's first-ever connection.
type MetricsEvent struct {
	Name       string
	Origin     string
	MetricsID  string
	Properties map[string]any
}

// WalletSnapshot is a read-only view of wallet state used for the first-visit
// metrics decision. Writes to permission history belong to the
// permission-controller.
type WalletSnapshot struct {
	MetricsID         string
	PermissionHistory map[string]struct{}
	AccountCount      int
}
