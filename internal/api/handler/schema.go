package handler

import (
	"time"

	"github.com/ewbmobile/hybrid-shell/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Session ---

type loginRequest struct {
	Email    string `json:"email"    validate:"max=254"`
	Password string `json:"password" validate:"max=1024"`
}

type profileResponse struct {
	domain.UserProfile
	FullName       string  `json:"full_name"`
	DisplayBalance float64 `json:"display_balance"`
	AccountNumber  string  `json:"account_number"`
}

// sessionResponse never carries the token.
type sessionResponse struct {
	State           domain.SessionState `json:"state"`
	User            *profileResponse    `json:"user,omitempty"`
	IssuedVia       domain.IssuedVia    `json:"issued_via,omitempty"`
	AuthenticatedAt *time.Time          `json:"authenticated_at,omitempty"`
}

func toSessionResponse(s domain.Session) sessionResponse {
	resp := sessionResponse{State: s.State}
	if !s.Authenticated() {
		resp.State = domain.SessionAnonymous
		return resp
	}
	resp.IssuedVia = s.IssuedVia
	at := s.AuthenticatedAt
	resp.AuthenticatedAt = &at
	resp.User = &profileResponse{
		UserProfile:    *s.User,
		FullName:       s.User.FullName(),
		DisplayBalance: s.User.DisplayBalance(),
		AccountNumber:  s.User.AccountNumber(),
	}
	return resp
}

// --- Views ---

type openViewRequest struct {
	ModuleID string `json:"module_id" validate:"required"`
}

type injectedRequest struct {
	Epoch uint64 `json:"epoch" validate:"required,gt=0"`
}

type injectedResponse struct {
	ViewID   string `json:"view_id"`
	Epoch    uint64 `json:"epoch"`
	StartURL string `json:"start_url"`
}

type lifecycleRequest struct {
	Epoch uint64 `json:"epoch" validate:"required,gt=0"`
	Event string `json:"event" validate:"required,oneof=started finished failed"`
	Error string `json:"error" validate:"max=2048"`
}

type lifecycleResponse struct {
	Applied bool                `json:"applied"`
	View    domain.ViewSnapshot `json:"view"`
}

type navigateRequest struct {
	URL  string `json:"url"  validate:"max=8192"`
	Kind string `json:"kind" validate:"omitempty,oneof=link_activated redirect form_submitted back_forward reload resource other"`
}
