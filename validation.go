package caip25

import (
	"fmt"
	"regexp"
)

// JSON-RPC method and notification names.
var methodNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.\-]*$`)

// ValidationIssue records a single dropped item from the lenient
// normalization pass. Item-level problems never escalate to request-level
// failures; they are collected here so callers can log them.
type ValidationIssue struct {
	Scope ScopeString
	Field string
	Value string
	Err   error
}

// NormalizeScopes validates a raw dApp-supplied scopes object and produces
// the internal normalized form: entries with unparseable scope strings are
// dropped whole, malformed individual methods, notifications, accounts and
// references are dropped item by item, and the survivors are flattened and
// merged into concrete per-chain scopes. The returned issues describe every
// drop.
func NormalizeScopes(scopes ExternalScopesObject) (ScopesObject, []ValidationIssue) {
	var issues []ValidationIssue
	valid := make(ExternalScopesObject, len(scopes))

	for scope, obj := range scopes {
		namespace, reference := scope.Parse()
		if namespace == "" {
			issues = append(issues, ValidationIssue{
				Scope: scope,
				Field: "scopeString",
				Value: string(scope),
				Err:   fmt.Errorf("does not match CAIP-2 grammar"),
			})
			continue
		}
		if reference != "" && !IsValidReference(namespace, reference) {
			issues = append(issues, ValidationIssue{
				Scope: scope,
				Field: "scopeString",
				Value: string(scope),
				Err:   fmt.Errorf("invalid %s reference", namespace),
			})
			continue
		}
		sanitized, objIssues := sanitizeScopeObject(scope, namespace, obj)
		issues = append(issues, objIssues...)
		valid[scope] = sanitized
	}

	return FlattenMergeScopes(valid), issues
}

// sanitizeScopeObject drops malformed items from a single raw scope object.
func sanitizeScopeObject(scope ScopeString, namespace string, obj ExternalScopeObject) (ExternalScopeObject, []ValidationIssue) {
	var issues []ValidationIssue
	drop := func(field, value string, err error) {
		issues = append(issues, ValidationIssue{Scope: scope, Field: field, Value: value, Err: err})
	}

	out := ExternalScopeObject{}
	out.Methods = keepValid(obj.Methods, validateMethodName, func(v string, err error) {
		drop("methods", v, err)
	})
	out.Notifications = keepValid(obj.Notifications, validateMethodName, func(v string, err error) {
		drop("notifications", v, err)
	})

	if obj.Accounts != nil {
		out.Accounts = keepValid(obj.Accounts, func(a CaipAccountID) error {
			return validateScopeAccount(namespace, a)
		}, func(v CaipAccountID, err error) {
			drop("accounts", string(v), err)
		})
	}
	if obj.References != nil {
		out.References = keepValid(obj.References, func(r string) error {
			if !IsValidReference(namespace, r) {
				return fmt.Errorf("invalid %s reference", namespace)
			}
			return nil
		}, func(v string, err error) {
			drop("references", v, err)
		})
	}
	out.RPCDocuments = cloneSlice(obj.RPCDocuments)
	out.RPCEndpoints = cloneSlice(obj.RPCEndpoints)
	return out, issues
}

func validateMethodName(name string) error {
	if !methodNameRegex.MatchString(name) {
		return fmt.Errorf("invalid method name")
	}
	return nil
}

// validateScopeAccount requires CAIP-10 syntax and an account namespace
// consistent with the enclosing scope's namespace.
func validateScopeAccount(scopeNamespace string, account CaipAccountID) error {
	if !IsValidAccountID(account) {
		return fmt.Errorf("does not match CAIP-10 grammar")
	}
	accountNamespace, _, _, _ := account.Parse()
	if accountNamespace != scopeNamespace {
		return fmt.Errorf("account namespace %q does not match scope namespace %q",
			accountNamespace, scopeNamespace)
	}
	return nil
}

// keepValid folds over items, keeping those that pass check and reporting
// each dropped item through onDrop. This is the module's lenient item-level
// policy made explicit.
func keepValid[T any](items []T, check func(T) error, onDrop func(T, error)) []T {
	out := make([]T, 0, len(items))
	for _, v := range items {
		if err := check(v); err != nil {
			onDrop(v, err)
			continue
		}
		out = append(out, v)
	}
	return out
}
