package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ewbmobile/hybrid-shell/internal/core/domain"
	"github.com/ewbmobile/hybrid-shell/internal/core/service"
	"github.com/ewbmobile/hybrid-shell/internal/infrastructure/db/memory"
	"github.com/ewbmobile/hybrid-shell/internal/infrastructure/opener"
)

type stubGateway struct{}

func (stubGateway) Login(_ context.Context, email, password string) (*domain.Credentials, error) {
	if password != "password123" {
		return nil, &domain.ServerRejectedError{StatusCode: http.StatusUnauthorized, Message: "Invalid email or password"}
	}
	return &domain.Credentials{
		Token: "jwt-abc",
		User:  domain.UserProfile{ID: "42", Email: email, Name: "Demo User"},
	}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := zerolog.Nop()
	store := memory.NewCredentialStore()
	sessions := service.NewSessionManager(store, stubGateway{}, nil, log)

	catalog := domain.DefaultCatalog(domain.EnvDevelopment)
	shell := service.NewShellController(
		service.NewContentLoader(catalog, domain.DefaultQuickActions()),
		service.NewInjectionBridge(),
		service.NewNavigationGuard(catalog, service.DefaultDevHost, log),
		sessions,
		opener.NewLogOpener(log),
		"EWBMobile-Shell/test",
		log,
	)

	return NewRouter(Deps{
		Sessions:     sessions,
		Shell:        shell,
		Store:        store,
		StoreBackend: "memory",
		Log:          log,
	})
}

func call(t *testing.T, h http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	resp := map[string]any{}
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s %s: invalid json %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code, resp
}

func expect(t *testing.T, gotCode int, resp map[string]any, wantCode int) {
	t.Helper()
	if gotCode != wantCode {
		t.Fatalf("expected %d, got %d (%v)", wantCode, gotCode, resp)
	}
}

// TestRouter_ShellFlow drives login, a view through two epochs and logout
// against the real services.
func TestRouter_ShellFlow(t *testing.T) {
	h := newTestRouter(t)

	code, resp := call(t, h, http.MethodGet, "/v1/session", "")
	expect(t, code, resp, http.StatusOK)
	if resp["state"] != "anonymous" {
		t.Fatalf("expected anonymous session, got %v", resp)
	}

	code, resp = call(t, h, http.MethodPost, "/v1/session/login", `{"email":"","password":""}`)
	expect(t, code, resp, http.StatusBadRequest)
	if resp["error"] != domain.MsgMissingCredentials {
		t.Fatalf("unexpected error %v", resp["error"])
	}

	code, resp = call(t, h, http.MethodPost, "/v1/session/login", `{"email":"demo@example.com","password":"nope"}`)
	expect(t, code, resp, http.StatusUnauthorized)
	if resp["error"] != "Invalid email or password" {
		t.Fatalf("unexpected error %v", resp["error"])
	}

	code, resp = call(t, h, http.MethodPost, "/v1/session/login", `{"email":"demo@example.com","password":"password123"}`)
	expect(t, code, resp, http.StatusOK)
	if resp["state"] != "authenticated" {
		t.Fatalf("expected authenticated session, got %v", resp)
	}
	if _, ok := resp["token"]; ok {
		t.Fatalf("session response must not expose the token")
	}

	code, resp = call(t, h, http.MethodPost, "/v1/views", `{"module_id":"bills-payment"}`)
	expect(t, code, resp, http.StatusCreated)
	viewID, _ := resp["view_id"].(string)
	injection, _ := resp["injection"].(map[string]any)
	if viewID == "" || resp["epoch"] != 1.0 || injection["token_set"] != true {
		t.Fatalf("unexpected ticket %v", resp)
	}
	if !strings.Contains(injection["script"].(string), `"jwt-abc"`) {
		t.Fatalf("expected token in injection script, got %v", injection["script"])
	}
	if resp["user_agent"] != "EWBMobile-Shell/test" {
		t.Fatalf("unexpected user agent %v", resp["user_agent"])
	}
	base := "/v1/views/" + viewID

	code, resp = call(t, h, http.MethodPost, base+"/lifecycle", `{"epoch":1,"event":"started"}`)
	expect(t, code, resp, http.StatusPreconditionFailed)

	code, resp = call(t, h, http.MethodPost, base+"/injected", `{"epoch":1}`)
	expect(t, code, resp, http.StatusOK)
	if resp["start_url"] != "http://localhost:3000" {
		t.Fatalf("unexpected start url %v", resp["start_url"])
	}

	code, resp = call(t, h, http.MethodPost, base+"/reload", "")
	expect(t, code, resp, http.StatusConflict)

	code, resp = call(t, h, http.MethodPost, base+"/lifecycle", `{"epoch":1,"event":"failed","error":"offline"}`)
	expect(t, code, resp, http.StatusOK)
	view, _ := resp["view"].(map[string]any)
	signals, _ := view["signals"].(map[string]any)
	if resp["applied"] != true || signals["show_retry"] != true || signals["error_title"] != domain.LoadErrorTitle {
		t.Fatalf("unexpected lifecycle response %v", resp)
	}

	code, resp = call(t, h, http.MethodPost, base+"/reload", "")
	expect(t, code, resp, http.StatusOK)
	if resp["epoch"] != 2.0 {
		t.Fatalf("expected epoch 2, got %v", resp["epoch"])
	}

	code, resp = call(t, h, http.MethodPost, base+"/lifecycle", `{"epoch":1,"event":"finished"}`)
	expect(t, code, resp, http.StatusOK)
	if resp["applied"] != false {
		t.Fatalf("stale callback must not apply: %v", resp)
	}

	code, resp = call(t, h, http.MethodPost, base+"/injected", `{"epoch":1}`)
	expect(t, code, resp, http.StatusConflict)

	code, resp = call(t, h, http.MethodPost, base+"/navigate", `{"url":"https://example.com/help","kind":"link_activated"}`)
	expect(t, code, resp, http.StatusOK)
	if resp["decision"] != string(domain.NavigationHandoffExternal) {
		t.Fatalf("expected handoff, got %v", resp)
	}

	code, resp = call(t, h, http.MethodPost, base+"/navigate", `{"url":"http://localhost:3000/pay","kind":"link_activated"}`)
	expect(t, code, resp, http.StatusOK)
	if resp["decision"] != string(domain.NavigationAllow) || resp["script_enabled"] != true {
		t.Fatalf("expected allow, got %v", resp)
	}

	code, resp = call(t, h, http.MethodPost, base+"/navigate", `{"url":""}`)
	expect(t, code, resp, http.StatusOK)
	if resp["decision"] != string(domain.NavigationDeny) {
		t.Fatalf("expected deny for empty url, got %v", resp)
	}

	code, resp = call(t, h, http.MethodDelete, base, "")
	expect(t, code, resp, http.StatusNoContent)

	code, resp = call(t, h, http.MethodGet, base, "")
	expect(t, code, resp, http.StatusNotFound)

	code, resp = call(t, h, http.MethodPost, "/v1/views", `{"module_id":"crypto"}`)
	expect(t, code, resp, http.StatusNotFound)

	code, resp = call(t, h, http.MethodPost, "/v1/session/logout", "")
	expect(t, code, resp, http.StatusNoContent)
	code, resp = call(t, h, http.MethodPost, "/v1/session/logout", "")
	expect(t, code, resp, http.StatusNoContent)

	code, resp = call(t, h, http.MethodGet, "/v1/session", "")
	expect(t, code, resp, http.StatusOK)
	if resp["state"] != "anonymous" {
		t.Fatalf("expected anonymous after logout, got %v", resp)
	}

	code, resp = call(t, h, http.MethodGet, "/health/ready", "")
	expect(t, code, resp, http.StatusOK)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "hybrid_shell_logins_total") {
		t.Fatalf("expected login metrics to be exported, got %d", rec.Code)
	}
}
