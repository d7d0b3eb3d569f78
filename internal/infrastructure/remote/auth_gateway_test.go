package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ewbmobile/hybrid-shell/internal/core/domain"
)

func newTestClient() *Client {
	return NewClient(Config{Timeout: 2 * time.Second, UserAgent: "EWBMobile-Shell/test"})
}

func authServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ua := r.Header.Get("User-Agent"); ua != "EWBMobile-Shell/test" {
			t.Errorf("unexpected user agent %q", ua)
		}
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Email != "demo@example.com" || req.Password != "password123" {
			t.Errorf("unexpected credentials %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAuthGateway_Login_EnvelopeShape(t *testing.T) {
	srv := authServer(t, http.StatusOK,
		`{"success":true,"data":{"token":"abc","user":{"id":"1","email":"demo@example.com","name":"Demo"}}}`)
	gw := NewAuthGateway(newTestClient(), srv.URL+"/api/auth")

	creds, err := gw.Login(context.Background(), "demo@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if creds.Token != "abc" || creds.User.ID != "1" || creds.User.Name != "Demo" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
}

func TestAuthGateway_Login_DirectShape(t *testing.T) {
	srv := authServer(t, http.StatusOK,
		`{"success":true,"token":"abc","refreshToken":"r1","user":{"id":"1","email":"demo@example.com","balance":12.5}}`)
	gw := NewAuthGateway(newTestClient(), srv.URL+"/api/auth/")

	creds, err := gw.Login(context.Background(), "demo@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if creds.RefreshToken != "r1" || creds.User.DisplayBalance() != 12.5 {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
}

func TestAuthGateway_Login_Failures(t *testing.T) {
	cases := []struct {
		name        string
		status      int
		body        string
		wantIs      error
		wantMessage string
	}{
		{name: "401 without message", status: http.StatusUnauthorized, body: ``, wantIs: domain.ErrUnauthorized},
		{name: "500 html", status: http.StatusInternalServerError, body: `<html>oops</html>`, wantIs: domain.ErrUnauthorized},
		{name: "401 with message", status: http.StatusUnauthorized, body: `{"success":false,"message":"Invalid email or password"}`, wantMessage: "Invalid email or password"},
		{name: "404 with error field", status: http.StatusNotFound, body: `{"error":"user not found"}`, wantMessage: "user not found"},
		{name: "200 not json", status: http.StatusOK, body: `not json`, wantIs: domain.ErrMalformedResponse},
		{name: "200 empty", status: http.StatusOK, body: ``, wantIs: domain.ErrMalformedResponse},
		{name: "200 token without user", status: http.StatusOK, body: `{"token":"abc"}`, wantIs: domain.ErrMalformedResponse},
		{name: "200 data wrong type", status: http.StatusOK, body: `{"success":true,"data":"abc"}`, wantIs: domain.ErrMalformedResponse},
		{name: "200 success false", status: http.StatusOK, body: `{"success":false}`, wantMessage: domain.MsgLoginFailed},
		{name: "200 message only", status: http.StatusOK, body: `{"success":false,"message":"Account locked"}`, wantMessage: "Account locked"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := authServer(t, tc.status, tc.body)
			gw := NewAuthGateway(newTestClient(), srv.URL+"/api/auth")

			creds, err := gw.Login(context.Background(), "demo@example.com", "password123")
			if err == nil {
				t.Fatalf("expected error, got %+v", creds)
			}
			if tc.wantIs != nil && !errors.Is(err, tc.wantIs) {
				t.Fatalf("expected %v, got %v", tc.wantIs, err)
			}
			if tc.wantMessage != "" {
				var rejected *domain.ServerRejectedError
				if !errors.As(err, &rejected) || rejected.Message != tc.wantMessage {
					t.Fatalf("expected ServerRejected(%q), got %v", tc.wantMessage, err)
				}
			}
		})
	}
}

func TestAuthGateway_Login_InvalidEndpoint(t *testing.T) {
	gw := NewAuthGateway(newTestClient(), "not a url")
	if _, err := gw.Login(context.Background(), "a@b.c", "pw"); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestAuthGateway_Login_NoResponse(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	gw := NewAuthGateway(newTestClient(), base+"/api/auth")
	if _, err := gw.Login(context.Background(), "a@b.c", "pw"); !errors.Is(err, domain.ErrNoResponse) {
		t.Fatalf("expected ErrNoResponse, got %v", err)
	}
}

func TestProvisioner_Provision(t *testing.T) {
	var gotAuth, gotBody, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		b, _ := json.Marshal(body)
		gotBody = string(b)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	p := NewProvisioner(newTestClient(), srv.URL+"/api/bills-payment/v1", "/bills/seed-demo")
	if err := p.Provision(context.Background(), "abc"); err != nil {
		t.Fatalf("Provision: %v", err)
	}
	if gotAuth != "Bearer abc" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
	if gotPath != "/api/bills-payment/v1/bills/seed-demo" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotBody != "{}" {
		t.Fatalf("expected empty json object, got %q", gotBody)
	}
}

func TestProvisioner_ProvisionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"forbidden"}`))
	}))
	defer srv.Close()

	p := NewProvisioner(newTestClient(), srv.URL, "/bills/seed-demo")
	if err := p.Provision(context.Background(), "abc"); err == nil {
		t.Fatalf("expected error on 403")
	}
}
