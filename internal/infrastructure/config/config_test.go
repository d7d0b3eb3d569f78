package config

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Production() {
		t.Fatalf("expected development by default")
	}
	if cfg.AuthBaseURL() != "http://localhost:8080/api/auth" {
		t.Fatalf("unexpected auth base %q", cfg.AuthBaseURL())
	}
	if cfg.BillsPaymentBaseURL() != "http://localhost:8080/api/bills-payment/v1" {
		t.Fatalf("unexpected bills base %q", cfg.BillsPaymentBaseURL())
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.API.Timeout)
	}
	if cfg.Store.Backend != StoreMemory || cfg.Opener != OpenerLog {
		t.Fatalf("unexpected backend/opener %q/%q", cfg.Store.Backend, cfg.Opener)
	}
	if cfg.UserAgent() != "EWBMobile-Shell/1.0" {
		t.Fatalf("unexpected user agent %q", cfg.UserAgent())
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SHELL_ENV", "production")
	t.Setenv("API_BASE_URL", "https://api.ewb-mobile.com/api/")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("APP_VERSION", "2.4.1")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Production() {
		t.Fatalf("expected production")
	}
	if cfg.AuthBaseURL() != "https://api.ewb-mobile.com/api/auth" {
		t.Fatalf("unexpected auth base %q", cfg.AuthBaseURL())
	}
	if cfg.Store.Redis.DB != 3 || cfg.API.Timeout != 5*time.Second {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.UserAgent() != "EWBMobile-Shell/2.4.1" {
		t.Fatalf("unexpected user agent %q", cfg.UserAgent())
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "relative base url", env: map[string]string{"API_BASE_URL": "/api"}, want: "API_BASE_URL"},
		{name: "plain http in production", env: map[string]string{"SHELL_ENV": "production", "API_BASE_URL": "http://api.example.com"}, want: "https"},
		{name: "unknown backend", env: map[string]string{"STORE_BACKEND": "sqlite"}, want: "STORE_BACKEND"},
		{name: "unknown opener", env: map[string]string{"EXTERNAL_OPENER": "carrier-pigeon"}, want: "EXTERNAL_OPENER"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(context.Background())
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadDevAuth_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")
	if _, err := LoadDevAuth(context.Background()); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := LoadDevAuth(context.Background())
	if err != nil {
		t.Fatalf("LoadDevAuth: %v", err)
	}
	if cfg.TokenTTL != 24*time.Hour || cfg.Addr != ":8080" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
