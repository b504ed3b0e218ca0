package caip25

import "fmt"

// Error is a JSON-RPC style error carrying a CAIP-25 defined code. It is
// returned unchanged to the dApp so callers can branch on Code.
type Error struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// JSON-RPC and CAIP-25 error codes.
const (
	CodeInvalidParams = -32602
	CodeInternal      = -32603

	// CAIP-25 section 6.3 codes.
	CodeChainsNotSupported        = 5100
	CodeMethodsNotSupported       = 5101
	CodeNotificationsNotSupported = 5102
	CodeInvalidSessionProperties  = 5302
)

// NewError creates an error with the given code and message.
func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// ErrChainsNotSupported is raised when a requested scope string is not
// supported by the wallet's connected network clients.
func ErrChainsNotSupported() *Error {
	return NewError(CodeChainsNotSupported, "Requested chains are not supported")
}

// ErrMethodsNotSupported is raised when a requested method is not supported
// for its scope.
func ErrMethodsNotSupported() *Error {
	return NewError(CodeMethodsNotSupported, "Requested methods are not supported")
}

// ErrNotificationsNotSupported is raised when a requested notification is not
// in the wallet's allow-list.
func ErrNotificationsNotSupported() *Error {
	return NewError(CodeNotificationsNotSupported, "Requested notifications are not supported")
}

// ErrInvalidSessionProperties is raised when sessionProperties is present but
// empty. Checked before any scope processing.
func ErrInvalidSessionProperties() *Error {
	return NewError(CodeInvalidSessionProperties, "Invalid sessionProperties requested")
}

// ErrInvalidParams is raised for malformed top-level request params.
func ErrInvalidParams(detail string) *Error {
	err := NewError(CodeInvalidParams, "Invalid params")
	if detail != "" {
		err.Data = map[string]any{"detail": detail}
	}
	return err
}

// ErrInternal wraps an unexpected failure, e.g. the permission system
// approving a request but returning no CAIP-25 caveat.
func ErrInternal(message string) *Error {
	return NewError(CodeInternal, message)
}
