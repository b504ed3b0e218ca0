package caip25

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CaipAccountID is a chain-qualified account identifier in CAIP-10 format:
// namespace:reference:address (e.g. "eip155:1:0xabc..."). Wallet-level EVM
// accounts use the synthetic "wallet:eip155:0xabc..." form.
type CaipAccountID string

// Parse splits the account id into namespace, reference and address components.
func (a CaipAccountID) Parse() (namespace, reference, address string, err error) {
	parts := strings.Split(string(a), ":")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", fmt.Errorf("invalid account id format: %s", a)
	}
	return parts[0], parts[1], parts[2], nil
}

// Address returns the address component, or "" when unparseable.
func (a CaipAccountID) Address() string {
	_, _, address, err := a.Parse()
	if err != nil {
		return ""
	}
	return address
}

// MakeAccountID joins a chain-qualified scope string and an address into a
// CAIP-10 account id.
func MakeAccountID(scope ScopeString, address string) CaipAccountID {
	return CaipAccountID(fmt.Sprintf("%s:%s", scope, address))
}

// ScopeObject is the internal, normalized form of a scope authorization.
// Methods and Notifications never contain duplicates. Accounts, RPCDocuments
// and RPCEndpoints are omitted (nil) when never supplied, as opposed to empty.
type ScopeObject struct {
	Methods       []string        `json:"methods"`
	Notifications []string        `json:"notifications"`
	Accounts      []CaipAccountID `json:"accounts,omitempty"`
	RPCDocuments  []string        `json:"rpcDocuments,omitempty"`
	RPCEndpoints  []string        `json:"rpcEndpoints,omitempty"`
}

// Clone returns a deep copy of the scope object. Flattening a namespace scope
// into per-chain entries relies on this so sibling entries never alias.
func (o ScopeObject) Clone() ScopeObject {
	return ScopeObject{
		Methods:       cloneSlice(o.Methods),
		Notifications: cloneSlice(o.Notifications),
		Accounts:      cloneSlice(o.Accounts),
		RPCDocuments:  cloneSlice(o.RPCDocuments),
		RPCEndpoints:  cloneSlice(o.RPCEndpoints),
	}
}

// ExternalScopeObject is the raw, dApp-supplied form of a scope authorization.
// It may carry a References list when keyed by a bare namespace; flattening
// expands it into one concrete ScopeObject per reference.
type ExternalScopeObject struct {
	ScopeObject
	References []string `json:"references,omitempty"`
}

// ScopesObject maps scope strings to their normalized scope objects. This is
// the unit passed between every negotiation stage.
type ScopesObject map[ScopeString]ScopeObject

// Clone returns a deep copy of the scopes object.
func (s ScopesObject) Clone() ScopesObject {
	out := make(ScopesObject, len(s))
	for scope, obj := range s {
		out[scope] = obj.Clone()
	}
	return out
}

// Keys returns the scope strings present in the map, unordered.
func (s ScopesObject) Keys() []ScopeString {
	keys := make([]ScopeString, 0, len(s))
	for scope := range s {
		keys = append(keys, scope)
	}
	return keys
}

// ExternalScopesObject maps scope strings to raw dApp-supplied scope objects.
type ExternalScopesObject map[ScopeString]ExternalScopeObject

// ScopedProperties maps scope strings to requester-supplied property bags.
// The only recognized property today is "eip3085".
type ScopedProperties map[ScopeString]map[string]json.RawMessage

// CaveatValue is the persisted CAIP-25 authorization artifact handed to the
// permission system. Constructed fresh per wallet_createSession request;
// never shared across requests.
type CaveatValue struct {
	RequiredScopes     ScopesObject   `json:"requiredScopes"`
	OptionalScopes     ScopesObject   `json:"optionalScopes"`
	IsMultichainOrigin bool           `json:"isMultichainOrigin"`
	SessionProperties  map[string]any `json:"sessionProperties,omitempty"`
}

// SessionScopes returns the merged view of required and optional scopes used
// to build the wallet_createSession response.
func (v CaveatValue) SessionScopes() ScopesObject {
	return MergeScopes(v.RequiredScopes, v.OptionalScopes)
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
