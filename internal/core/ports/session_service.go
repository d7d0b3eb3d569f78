package ports

import (
	"context"

	"github.com/ewbmobile/hybrid-shell/internal/core/domain"
)

// TokenSource exposes the current session token, if any.
type TokenSource interface {
	Token() (string, bool)
}

// SessionService owns the process-wide session.
type SessionService interface {
	TokenSource
	Restore(ctx context.Context) domain.Session
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Logout(ctx context.Context) error
	Snapshot() domain.Session
}
