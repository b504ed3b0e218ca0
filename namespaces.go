package caip25

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
)

// IsValidReference reports whether a reference is syntactically valid for the
// given namespace. eip155 references are decimal chain ids; solana references
// are base58 genesis-hash prefixes; other namespaces fall back to the generic
// CAIP-2 reference grammar. Syntax validity is independent of wallet support,
// which remains eip155-only.
func IsValidReference(namespace, reference string) bool {
	if !referenceRegex.MatchString(reference) {
		return false
	}
	switch namespace {
	case NamespaceEIP155:
		_, err := strconv.ParseUint(reference, 10, 64)
		return err == nil
	default:
		return true
	}
}

// IsValidAddress reports whether an address is syntactically valid for the
// given namespace.
func IsValidAddress(namespace, address string) bool {
	switch namespace {
	case NamespaceEIP155:
		return common.IsHexAddress(address)
	case NamespaceSolana:
		_, err := solana.PublicKeyFromBase58(address)
		return err == nil
	default:
		return address != ""
	}
}

// IsValidAccountID reports whether a CAIP-10 account id is syntactically
// valid. Wallet-level accounts carry a namespace in the reference position
// ("wallet:eip155:0x..."), so the address is validated against that inner
// namespace.
func IsValidAccountID(account CaipAccountID) bool {
	namespace, reference, address, err := account.Parse()
	if err != nil {
		return false
	}
	if !namespaceRegex.MatchString(namespace) {
		return false
	}
	if namespace == NamespaceWallet {
		return namespaceRegex.MatchString(reference) && IsValidAddress(reference, address)
	}
	return IsValidReference(namespace, reference) && IsValidAddress(namespace, address)
}
