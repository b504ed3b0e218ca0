package caip25

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ScopeString identifies a chain or chain namespace in CAIP-2 format.
// Either a bare namespace ("eip155", "wallet") or namespace:reference
// ("eip155:1" for Ethereum mainnet).
type ScopeString string

// Well-known CAIP namespaces.
const (
	NamespaceEIP155 = "eip155"
	NamespaceWallet = "wallet"
	NamespaceSolana = "solana"
)

var (
	namespaceRegex = regexp.MustCompile(`^[-a-z0-9]{3,8}$`)
	referenceRegex = regexp.MustCompile(`^[-_a-zA-Z0-9]{1,32}$`)
)

// ParseScopeString splits a scope string into namespace and reference
// components per the CAIP-2 grammar. A bare namespace yields an empty
// reference. Unparseable input yields two empty strings; the function
// is total and never errors.
func ParseScopeString(s string) (namespace, reference string) {
	if namespaceRegex.MatchString(s) {
		return s, ""
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return "", ""
	}
	if !namespaceRegex.MatchString(parts[0]) || !referenceRegex.MatchString(parts[1]) {
		return "", ""
	}
	return parts[0], parts[1]
}

// Parse splits the scope string into namespace and reference components.
func (s ScopeString) Parse() (namespace, reference string) {
	return ParseScopeString(string(s))
}

// Namespace returns the namespace component, or "" when unparseable.
func (s ScopeString) Namespace() string {
	namespace, _ := s.Parse()
	return namespace
}

// Reference returns the reference component, or "" for namespace-only
// or unparseable scope strings.
func (s ScopeString) Reference() string {
	_, reference := s.Parse()
	return reference
}

// IsNamespaceScoped reports whether the scope string is a bare namespace.
func (s ScopeString) IsNamespaceScoped() bool {
	namespace, reference := s.Parse()
	return namespace != "" && reference == ""
}

// MakeScopeString joins a namespace and reference into a chain-qualified
// scope string.
func MakeScopeString(namespace, reference string) ScopeString {
	return ScopeString(fmt.Sprintf("%s:%s", namespace, reference))
}

// ReferenceToHexChainID converts a decimal eip155 reference to the 0x-prefixed
// hex chain id used at the network-controller boundary.
func ReferenceToHexChainID(reference string) (string, bool) {
	n, err := strconv.ParseUint(reference, 10, 64)
	if err != nil {
		return "", false
	}
	return hexutil.EncodeUint64(n), true
}

// HexChainIDToReference converts a 0x-prefixed hex chain id to the decimal
// reference form used in eip155 scope strings.
func HexChainIDToReference(hexChainID string) (string, bool) {
	n, err := hexutil.DecodeUint64(hexChainID)
	if err != nil {
		return "", false
	}
	return strconv.FormatUint(n, 10), true
}
