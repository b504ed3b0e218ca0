// Package stdlib adapts the CAIP-25 JSON-RPC handler to net/http.
package stdlib

import (
	"encoding/json"
	"net/http"

	"github.com/chainagnostic/caip25/rpc"
)

// HandlerOptions configures the net/http adapter.
type HandlerOptions struct {
	// OriginHeader names the header carrying the dApp origin. Defaults to
	// "Origin".
	OriginHeader string
}

// Options mutates HandlerOptions.
type Options func(*HandlerOptions)

// WithOriginHeader overrides the header the origin is read from.
func WithOriginHeader(header string) Options {
	return func(options *HandlerOptions) {
		options.OriginHeader = header
	}
}

// SessionHandler returns an http.Handler serving wallet_createSession over
// JSON-RPC. Requests missing an origin are rejected before dispatch.
func SessionHandler(handler *rpc.Handler, opts ...Options) http.Handler {
	options := &HandlerOptions{OriginHeader: "Origin"}
	for _, opt := range opts {
		opt(options)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		origin := r.Header.Get(options.OriginHeader)
		if origin == "" {
			http.Error(w, "missing origin header", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		var req rpc.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, rpc.Response{
				JSONRPC: "2.0",
				Error: &rpc.ErrorObject{
					Code:    rpc.CodeParseError,
					Message: "Parse error",
				},
			})
			return
		}

		writeJSON(w, handler.Handle(r.Context(), origin, &req))
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}
