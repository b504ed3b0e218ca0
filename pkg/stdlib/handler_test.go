package stdlib

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chainagnostic/caip25"
	"github.com/chainagnostic/caip25/rpc"
)

type stubSessions struct{}

func (stubSessions) CreateSession(_ context.Context, origin string, _ caip25.CreateSessionRequest) (*caip25.CreateSessionResult, error) {
	return &caip25.CreateSessionResult{
		SessionScopes: caip25.ScopesObject{
			"eip155:1": {Methods: []string{"eth_call"}, Notifications: []string{}},
		},
		SessionProperties: map[string]any{"origin": origin},
	}, nil
}

func TestSessionHandlerRequiresOrigin(t *testing.T) {
	handler := SessionHandler(rpc.NewHandler(stubSessions{}))

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != 400 {
		t.Errorf("expected 400 for missing origin, got %d", w.Code)
	}
}

func TestSessionHandlerDispatch(t *testing.T) {
	handler := SessionHandler(rpc.NewHandler(stubSessions{}))

	body := `{"jsonrpc":"2.0","id":1,"method":"wallet_createSession","params":{}}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Origin", "https://dapp.example")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Result struct {
			SessionScopes map[string]any `json:"sessionScopes"`
		} `json:"result"`
		Error *rpc.ErrorObject `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != nil {
		t.Fatalf("unexpected error %+v", resp.Error)
	}
	if _, ok := resp.Result.SessionScopes["eip155:1"]; !ok {
		t.Error("session scopes missing from response body")
	}
}

func TestSessionHandlerRejectsGet(t *testing.T) {
	handler := SessionHandler(rpc.NewHandler(stubSessions{}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://dapp.example")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != 405 {
		t.Errorf("expected 405, got %d", w.Code)
	}
}
