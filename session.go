package caip25

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MethodWalletCreateSession is the JSON-RPC method this controller implements.
const MethodWalletCreateSession = "wallet_createSession"

// SessionPropertySessionID tags each granted session with an identifier when
// the requester did not supply one.
const SessionPropertySessionID = "sessionId"

// EventFirstSessionConnection is emitted at most once per origin, on its
// first-ever connection.
const EventFirstSessionConnection = "session_first_connection"

// CreateSessionRequest is the CAIP-25 Authorization request shape.
type CreateSessionRequest struct {
	RequiredScopes    ExternalScopesObject `json:"requiredScopes,omitempty"`
	OptionalScopes    ExternalScopesObject `json:"optionalScopes,omitempty"`
	SessionProperties map[string]any       `json:"sessionProperties,omitempty"`
	ScopedProperties  ScopedProperties     `json:"scopedProperties,omitempty"`
}

// CreateSessionResult is the wallet_createSession success response. Session
// scopes are derived from the granted caveat value, not the requested one.
type CreateSessionResult struct {
	SessionScopes     ScopesObject   `json:"sessionScopes"`
	SessionProperties map[string]any `json:"sessionProperties,omitempty"`
}

// SessionController orchestrates wallet_createSession: it normalizes and
// buckets requested scopes, resolves eip3085 scoped properties, intersects
// accounts with wallet state, and delegates the final grant to the
// permission system. It keeps no state across requests.
type SessionController struct {
	chains      ChainSupport
	methods     MethodRegistry
	accounts    Accounts
	permissions PermissionGrant
	networks    NetworkProvisioning
	metrics     Metrics
	snapshot    func() WalletSnapshot
	log         *zap.Logger

	beforeGrantHooks    []BeforeGrantHook
	afterGrantHooks     []AfterGrantHook
	onGrantFailureHooks []OnGrantFailureHook
}

// SessionControllerOption configures the controller.
type SessionControllerOption func(*SessionController)

// WithChainSupport injects the network-controller chain predicates.
func WithChainSupport(chains ChainSupport) SessionControllerOption {
	return func(c *SessionController) { c.chains = chains }
}

// WithMethodRegistry injects the wallet's RPC method registry.
func WithMethodRegistry(methods MethodRegistry) SessionControllerOption {
	return func(c *SessionController) { c.methods = methods }
}

// WithAccounts injects the wallet's account state.
func WithAccounts(accounts Accounts) SessionControllerOption {
	return func(c *SessionController) { c.accounts = accounts }
}

// WithPermissionGrant injects the permission-controller approval flow.
func WithPermissionGrant(permissions PermissionGrant) SessionControllerOption {
	return func(c *SessionController) { c.permissions = permissions }
}

// WithNetworkProvisioning injects the network client add/remove operations.
func WithNetworkProvisioning(networks NetworkProvisioning) SessionControllerOption {
	return func(c *SessionController) { c.networks = networks }
}

// WithMetrics injects the analytics sink.
func WithMetrics(metrics Metrics) SessionControllerOption {
	return func(c *SessionController) { c.metrics = metrics }
}

// WithWalletSnapshot injects the read-only wallet state used for the
// first-visit metrics decision.
func WithWalletSnapshot(snapshot func() WalletSnapshot) SessionControllerOption {
	return func(c *SessionController) { c.snapshot = snapshot }
}

// WithLogger sets the controller logger. Defaults to a nop logger.
func WithLogger(log *zap.Logger) SessionControllerOption {
	return func(c *SessionController) { c.log = log }
}

// NewSessionController creates a controller. Without options nothing is
// supported and grants fail; production callers wire every port.
func NewSessionController(opts ...SessionControllerOption) *SessionController {
	c := &SessionController{
		chains:   ChainSupportFunc(func(string) bool { return false }),
		methods:  MethodRegistryFunc(func(ScopeString, string) bool { return false }),
		accounts: nopAccounts{},
		networks: nopNetworks{},
		snapshot: func() WalletSnapshot { return WalletSnapshot{} },
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnBeforeGrant registers a hook run before the approval flow.
func (c *SessionController) OnBeforeGrant(hook BeforeGrantHook) *SessionController {
	c.beforeGrantHooks = append(c.beforeGrantHooks, hook)
	return c
}

// OnAfterGrant registers a hook run after a successful grant.
func (c *SessionController) OnAfterGrant(hook AfterGrantHook) *SessionController {
	c.afterGrantHooks = append(c.afterGrantHooks, hook)
	return c
}

// OnGrantFailure registers a hook run when the approval flow fails.
func (c *SessionController) OnGrantFailure(hook OnGrantFailureHook) *SessionController {
	c.onGrantFailureHooks = append(c.onGrantFailureHooks, hook)
	return c
}

// CreateSession processes one wallet_createSession request. Item-level
// problems (malformed methods, accounts, eip3085 params) are dropped
// silently; request-level failures propagate verbatim to the caller.
func (c *SessionController) CreateSession(ctx context.Context, origin string, req CreateSessionRequest) (*CreateSessionResult, error) {
	// Deliberate CAIP-25 extension point: present-but-empty
	// sessionProperties fails before any scope processing.
	if req.SessionProperties != nil && len(req.SessionProperties) == 0 {
		return nil, ErrInvalidSessionProperties()
	}
	if c.permissions == nil {
		return nil, ErrInternal("no permission system configured")
	}

	requiredScopes := c.normalize(origin, req.RequiredScopes)
	optionalScopes := c.normalize(origin, req.OptionalScopes)

	requiredScopes = FilterSupportedMethodsAndNotifications(requiredScopes, c.methods.IsMethodKnown)
	optionalScopes = FilterSupportedMethodsAndNotifications(optionalScopes, c.methods.IsMethodKnown)

	support := ScopeSupport{
		IsChainIDSupported: c.chains.IsChainIDSupported,
		IsMethodKnown:      c.methods.IsMethodKnown,
	}
	supportedRequired, unsupportedRequired := BucketScopesSupported(requiredScopes, support)
	supportedOptional, unsupportedOptional := BucketScopesSupported(optionalScopes, support)

	// Scopes whose chain has no client but could be provisioned via
	// eip3085. The network controller currently reports nothing as
	// supportable, so these stay empty in production.
	supportableRequired := c.supportableScopes(unsupportedRequired)
	supportableOptional := c.supportableScopes(unsupportedOptional)

	eligible := MergeScopes(
		MergeScopes(supportedRequired, supportedOptional),
		MergeScopes(supportableRequired, supportableOptional),
	)
	validProps, propIssues := ValidateScopedProperties(req.ScopedProperties, eligible)
	c.logIssues(origin, "scopedProperties", propIssues)

	provisioned, requiredProvisioned, optionalProvisioned := c.provisionNetworks(
		ctx, validProps, supportableRequired, supportableOptional)
	grantedRequired := MergeScopes(supportedRequired, requiredProvisioned)
	grantedOptional := MergeScopes(supportedOptional, optionalProvisioned)

	unlocked := c.accounts.ListUnlockedAccounts()
	grantedRequired = GrantableAccounts(grantedRequired, unlocked)
	grantedOptional = GrantableAccounts(grantedOptional, unlocked)

	requested := CaveatValue{
		RequiredScopes:     grantedRequired,
		OptionalScopes:     grantedOptional,
		IsMultichainOrigin: true,
		SessionProperties:  sessionPropertiesWithID(req.SessionProperties),
	}

	grantCtx := GrantContext{Ctx: ctx, Origin: origin, Requested: requested, Timestamp: time.Now()}
	for _, hook := range c.beforeGrantHooks {
		result, err := hook(grantCtx)
		if err != nil {
			c.rollbackNetworks(ctx, provisioned)
			return nil, err
		}
		if result != nil && result.Abort {
			c.rollbackNetworks(ctx, provisioned)
			return nil, ErrInternal(result.Reason)
		}
	}

	start := time.Now()
	granted, err := c.permissions.RequestPermissions(ctx, origin, requested)
	if err != nil || granted == nil {
		c.rollbackNetworks(ctx, provisioned)
		if err == nil {
			err = ErrInternal("permission grant returned no CAIP-25 caveat")
		}
		failureCtx := GrantFailureContext{
			GrantContext: grantCtx,
			Err:          err,
			Duration:     time.Since(start),
		}
		for _, hook := range c.onGrantFailureHooks {
			if hookErr := hook(failureCtx); hookErr != nil {
				c.log.Warn("grant failure hook error", zap.Error(hookErr))
			}
		}
		return nil, err
	}

	resultCtx := GrantResultContext{
		GrantContext: grantCtx,
		Granted:      *granted,
		Duration:     time.Since(start),
	}
	for _, hook := range c.afterGrantHooks {
		if hookErr := hook(resultCtx); hookErr != nil {
			c.log.Warn("after grant hook error", zap.Error(hookErr))
		}
	}

	c.trackFirstConnection(origin, requested, *granted)

	return &CreateSessionResult{
		SessionScopes:     granted.SessionScopes(),
		SessionProperties: granted.SessionProperties,
	}, nil
}

func (c *SessionController) normalize(origin string, scopes ExternalScopesObject) ScopesObject {
	normalized, issues := NormalizeScopes(scopes)
	c.logIssues(origin, "scopes", issues)
	return normalized
}

func (c *SessionController) logIssues(origin, stage string, issues []ValidationIssue) {
	for _, issue := range issues {
		c.log.Debug("dropped invalid item",
			zap.String("origin", origin),
			zap.String("stage", stage),
			zap.String("scope", string(issue.Scope)),
			zap.String("field", issue.Field),
			zap.String("value", issue.Value),
			zap.Error(issue.Err),
		)
	}
}

// supportableScopes keeps the entries of an unsupported bucket whose chain
// the network controller reports as provisionable.
func (c *SessionController) supportableScopes(unsupported ScopesObject) ScopesObject {
	out := make(ScopesObject)
	for scope, obj := range unsupported {
		hexChainID, ok := ReferenceToHexChainID(scope.Reference())
		if !ok || scope.Namespace() != NamespaceEIP155 {
			continue
		}
		if c.chains.IsChainIDSupportable(hexChainID) {
			out[scope] = obj
		}
	}
	return out
}

// provisionNetworks creates network clients for supportable scopes carrying
// valid eip3085 params. Scopes that fail to provision are dropped from the
// grant; successfully provisioned hex chain ids are returned for rollback.
func (c *SessionController) provisionNetworks(
	ctx context.Context,
	props ValidScopedProperties,
	supportableRequired, supportableOptional ScopesObject,
) (provisioned []string, required, optional ScopesObject) {
	required = make(ScopesObject)
	optional = make(ScopesObject)
	done := make(map[ScopeString]bool)

	provision := func(scope ScopeString) bool {
		if ok, seen := done[scope]; seen {
			return ok
		}
		prop, ok := props[scope]
		if !ok || prop.EIP3085 == nil {
			done[scope] = false
			return false
		}
		if _, err := c.networks.AddNetwork(ctx, *prop.EIP3085); err != nil {
			c.log.Warn("network provisioning failed",
				zap.String("scope", string(scope)), zap.Error(err))
			done[scope] = false
			return false
		}
		provisioned = append(provisioned, prop.EIP3085.ChainID)
		done[scope] = true
		return true
	}

	for scope, obj := range supportableRequired {
		if provision(scope) {
			required[scope] = obj
		}
	}
	for scope, obj := range supportableOptional {
		if _, alreadyRequired := supportableRequired[scope]; alreadyRequired {
			if done[scope] {
				optional[scope] = obj
			}
			continue
		}
		if provision(scope) {
			optional[scope] = obj
		}
	}
	return provisioned, required, optional
}

// rollbackNetworks tears down network clients provisioned during this request.
// Compensating action for a failed grant.
func (c *SessionController) rollbackNetworks(ctx context.Context, hexChainIDs []string) {
	for _, hexChainID := range hexChainIDs {
		if err := c.networks.RemoveNetwork(ctx, hexChainID); err != nil {
			c.log.Warn("network rollback failed",
				zap.String("chainId", hexChainID), zap.Error(err))
		}
	}
}

// trackFirstConnection emits the one-shot analytics event for an origin's
// first-ever connection. Fired asynchronously so it never blocks the RPC
// response.
func (c *SessionController) trackFirstConnection(origin string, requested, granted CaveatValue) {
	if c.metrics == nil {
		return
	}
	snap := c.snapshot()
	if _, seen := snap.PermissionHistory[origin]; seen {
		return
	}
	event := MetricsEvent{
		Name:      EventFirstSessionConnection,
		Origin:    origin,
		MetricsID: snap.MetricsID,
		Properties: map[string]any{
			"requested_account_count": len(RequestedAddresses(requested.SessionScopes())),
			"granted_account_count":   len(RequestedAddresses(granted.SessionScopes())),
			"wallet_account_count":    snap.AccountCount,
		},
	}
	go c.metrics.Track(event)
}

// sessionPropertiesWithID copies the requester's session properties and adds
// a generated sessionId when absent.
func sessionPropertiesWithID(props map[string]any) map[string]any {
	out := make(map[string]any, len(props)+1)
	for k, v := range props {
		out[k] = v
	}
	if _, ok := out[SessionPropertySessionID]; !ok {
		out[SessionPropertySessionID] = uuid.NewString()
	}
	return out
}

type nopAccounts struct{}

func (nopAccounts) ListUnlockedAccounts() []string          { return nil }
func (nopAccounts) ListInternalAccounts() []InternalAccount { return nil }

type nopNetworks struct{}

func (nopNetworks) AddNetwork(context.Context, AddEthereumChainParams) (string, error) {
	return "", ErrInternal("network provisioning unavailable")
}

func (nopNetworks) RemoveNetwork(context.Context, string) error { return nil }
