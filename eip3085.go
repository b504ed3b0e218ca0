package caip25

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ScopedPropertyEIP3085 is the only scoped property the wallet recognizes:
// wallet_addEthereumChain parameters used to provision a network client as
// part of establishing a session.
const ScopedPropertyEIP3085 = "eip3085"

// AddEthereumChainParams mirrors the wallet_addEthereumChain (EIP-3085)
// parameter schema.
type AddEthereumChainParams struct {
	ChainID           string          `json:"chainId"`
	ChainName         string          `json:"chainName"`
	NativeCurrency    *NativeCurrency `json:"nativeCurrency,omitempty"`
	RPCUrls           []string        `json:"rpcUrls"`
	BlockExplorerUrls []string        `json:"blockExplorerUrls,omitempty"`
	IconUrls          []string        `json:"iconUrls,omitempty"`
}

// NativeCurrency describes a chain's native asset.
type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// ValidScopedProperty holds the validated properties retained for one scope.
type ValidScopedProperty struct {
	EIP3085 *AddEthereumChainParams `json:"eip3085,omitempty"`
}

// ValidScopedProperties maps scope strings to their validated property bags.
type ValidScopedProperties map[ScopeString]ValidScopedProperty

var eip3085Schema = gojsonschema.NewStringLoader(`{
	"type": "object",
	"required": ["chainId", "chainName", "rpcUrls"],
	"properties": {
		"chainId": {"type": "string", "pattern": "^0x[0-9a-fA-F]+$"},
		"chainName": {"type": "string", "minLength": 1},
		"nativeCurrency": {
			"type": "object",
			"required": ["name", "symbol", "decimals"],
			"properties": {
				"name": {"type": "string"},
				"symbol": {"type": "string"},
				"decimals": {"type": "integer", "minimum": 0}
			}
		},
		"rpcUrls": {
			"type": "array",
			"minItems": 1,
			"items": {"type": "string", "format": "uri"}
		},
		"blockExplorerUrls": {
			"type": "array",
			"items": {"type": "string", "format": "uri"}
		},
		"iconUrls": {
			"type": "array",
			"items": {"type": "string", "format": "uri"}
		}
	},
	"additionalProperties": false
}`)

// ValidateScopedProperties keeps only structurally valid scoped-property
// entries. An eip3085 entry survives when its scope appears in the session's
// scopes, the parameters validate against the EIP-3085 schema, and the
// parameter chainId matches the scope's chain reference. Invalid entries and
// unrecognized property keys are dropped silently, never failing the request.
func ValidateScopedProperties(props ScopedProperties, sessionScopes ScopesObject) (ValidScopedProperties, []ValidationIssue) {
	var issues []ValidationIssue
	out := make(ValidScopedProperties)

	for scope, bag := range props {
		drop := func(field string, err error) {
			issues = append(issues, ValidationIssue{
				Scope: scope,
				Field: field,
				Err:   err,
			})
		}

		if _, ok := sessionScopes[scope]; !ok {
			drop("scopeString", fmt.Errorf("scope not present in session scopes"))
			continue
		}

		raw, ok := bag[ScopedPropertyEIP3085]
		if !ok {
			continue
		}
		params, err := validateEIP3085Params(scope, raw)
		if err != nil {
			drop(ScopedPropertyEIP3085, err)
			continue
		}
		out[scope] = ValidScopedProperty{EIP3085: params}
	}

	return out, issues
}

func validateEIP3085Params(scope ScopeString, raw json.RawMessage) (*AddEthereumChainParams, error) {
	result, err := gojsonschema.Validate(eip3085Schema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid eip3085 params: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("invalid eip3085 params: %s", result.Errors()[0].String())
	}

	var params AddEthereumChainParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, fmt.Errorf("invalid eip3085 params: %w", err)
	}

	reference, ok := HexChainIDToReference(params.ChainID)
	if !ok {
		return nil, fmt.Errorf("invalid eip3085 chainId %q", params.ChainID)
	}
	if reference != scope.Reference() {
		return nil, fmt.Errorf("eip3085 chainId %s does not match scope reference %s",
			params.ChainID, scope.Reference())
	}
	return &params, nil
}
