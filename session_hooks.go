package caip25

import (
	"context"
	"time"
)

// GrantContext contains information passed to before-grant hooks.
type GrantContext struct {
	Ctx       context.Context
	Origin    string
	Requested CaveatValue
	Timestamp time.Time
}

// GrantResultContext contains the grant result and its originating context.
type GrantResultContext struct {
	GrantContext
	Granted  CaveatValue
	Duration time.Duration
}

// GrantFailureContext contains a grant failure and its originating context.
type GrantFailureContext struct {
	GrantContext
	Err      error
	Duration time.Duration
}

// BeforeGrantResult is returned by a before-grant hook. If Abort is true the
// approval flow is skipped and the request fails with the given Reason.
type BeforeGrantResult struct {
	Abort  bool
	Reason string
}

// BeforeGrantHook runs before the permission approval flow.
type BeforeGrantHook func(GrantContext) (*BeforeGrantResult, error)

// AfterGrantHook runs after a successful grant. Errors are logged and do not
// affect the session result.
type AfterGrantHook func(GrantResultContext) error

// OnGrantFailureHook runs when the approval flow fails or is rejected, after
// any provisioned network clients have been rolled back. Errors are logged.
type OnGrantFailureHook func(GrantFailureContext) error
