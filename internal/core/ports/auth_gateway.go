package ports

import (
	"context"

	"github.com/ewbmobile/hybrid-shell/internal/core/domain"
)

// AuthGateway exchanges email and password for credentials with the remote
// auth service.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*domain.Credentials, error)
}
