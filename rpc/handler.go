package rpc

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/chainagnostic/caip25"
)

// SessionService processes wallet_createSession requests. Implemented by
// caip25.SessionController.
type SessionService interface {
	CreateSession(ctx context.Context, origin string, req caip25.CreateSessionRequest) (*caip25.CreateSessionResult, error)
}

// Handler routes JSON-RPC requests to the session service.
type Handler struct {
	sessions SessionService
	log      *zap.Logger
}

// HandlerOption configures the handler.
type HandlerOption func(*Handler)

// WithLogger sets the handler logger. Defaults to a nop logger.
func WithLogger(log *zap.Logger) HandlerOption {
	return func(h *Handler) { h.log = log }
}

// NewHandler creates a handler backed by the given session service.
func NewHandler(sessions SessionService, opts ...HandlerOption) *Handler {
	h := &Handler{sessions: sessions, log: zap.NewNop()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle processes a single JSON-RPC request on behalf of origin and always
// returns a response envelope. CAIP-25 errors pass through with their code,
// message and data unchanged; anything else becomes an internal error.
func (h *Handler) Handle(ctx context.Context, origin string, req *Request) *Response {
	if req.Method != caip25.MethodWalletCreateSession {
		return errorResponse(req.ID, &ErrorObject{
			Code:    CodeMethodNotFound,
			Message: "The method does not exist / is not available",
		})
	}

	params, errObj := decodeCreateSessionParams(req.Params)
	if errObj != nil {
		return errorResponse(req.ID, errObj)
	}

	result, err := h.sessions.CreateSession(ctx, origin, *params)
	if err != nil {
		h.log.Debug("wallet_createSession failed",
			zap.String("origin", origin), zap.Error(err))
		return errorResponse(req.ID, toErrorObject(err))
	}

	return successResponse(req.ID, result)
}

// decodeCreateSessionParams validates that params is a plain JSON object
// before decoding it. Malformed top-level params are fatal with no partial
// processing.
func decodeCreateSessionParams(raw json.RawMessage) (*caip25.CreateSessionRequest, *ErrorObject) {
	if len(raw) == 0 {
		return nil, invalidParams("params must be an object")
	}

	// Reject arrays, strings and other non-object params up front.
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(raw, &shape); err != nil {
		return nil, invalidParams("params must be an object")
	}
	if shape == nil {
		return nil, invalidParams("params must be an object")
	}

	var params caip25.CreateSessionRequest
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, invalidParams(err.Error())
	}
	return &params, nil
}

func invalidParams(detail string) *ErrorObject {
	return &ErrorObject{Code: CodeInvalidParams, Message: "Invalid params", Data: detail}
}

// toErrorObject maps errors to JSON-RPC error objects, propagating CAIP-25
// errors verbatim.
func toErrorObject(err error) *ErrorObject {
	var caipErr *caip25.Error
	if errors.As(err, &caipErr) {
		var data any
		if caipErr.Data != nil {
			data = caipErr.Data
		}
		return &ErrorObject{Code: caipErr.Code, Message: caipErr.Message, Data: data}
	}
	return &ErrorObject{Code: CodeInternalError, Message: err.Error()}
}
