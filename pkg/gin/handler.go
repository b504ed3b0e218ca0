// Package gin adapts the CAIP-25 JSON-RPC handler to a gin route.
package gin

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chainagnostic/caip25/rpc"
)

// HandlerOptions configures the gin adapter.
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

// SessionHandler returns a gin handler serving wallet_createSession over
// JSON-RPC. Requests missing an origin are rejected before dispatch.
func SessionHandler(handler *rpc.Handler, opts ...Options) gin.HandlerFunc {
	options := &HandlerOptions{OriginHeader: "Origin"}
	for _, opt := range opts {
		opt(options)
	}

	return func(c *gin.Context) {
		origin := c.GetHeader(options.OriginHeader)
		if origin == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "missing origin header",
			})
			return
		}

		var req rpc.Request
		if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
			c.JSON(http.StatusOK, rpc.Response{
				JSONRPC: "2.0",
				Error: &rpc.ErrorObject{
					Code:    rpc.CodeParseError,
					Message: "Parse error",
				},
			})
			return
		}

		c.JSON(http.StatusOK, handler.Handle(c.Request.Context(), origin, &req))
	}
}
