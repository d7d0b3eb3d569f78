package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ewbmobile/hybrid-shell/internal/core/domain"
	"github.com/ewbmobile/hybrid-shell/internal/core/ports"
)

// SessionManager owns the process-wide session. All mutation of the session
// and of the credential mirror happens under mu, so token and user are always
// written and cleared together.
type SessionManager struct {
	store     ports.CredentialStore
	gateway   ports.AuthGateway
	provision ports.ProvisionQueue
	log       zerolog.Logger
	now       func() time.Time

	mu      sync.RWMutex
	session domain.Session
}

// NewSessionManager returns an Anonymous session manager. provision may be nil,
// in which case successful logins skip the provisioning call.
func NewSessionManager(
	store ports.CredentialStore,
	gateway ports.AuthGateway,
	provision ports.ProvisionQueue,
	log zerolog.Logger,
) *SessionManager {
	return &SessionManager{
		store:     store,
		gateway:   gateway,
		provision: provision,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
		session:   domain.AnonymousSession(),
	}
}

// Restore rebuilds the session from the credential mirror without any network
// call. A missing or corrupt mirror leaves the session Anonymous.
func (m *SessionManager) Restore(ctx context.Context) domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	restored, err := m.readMirror(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("session mirror unusable, starting anonymous")
		m.session = domain.AnonymousSession()
		return m.session
	}
	if restored == nil {
		m.session = domain.AnonymousSession()
		return m.session
	}

	m.session = *restored
	m.log.Info().Str("user_id", restored.User.ID).Msg("session restored")
	return m.session
}

// readMirror returns nil, nil when no token is stored.
func (m *SessionManager) readMirror(ctx context.Context) (*domain.Session, error) {
	token, ok, err := m.store.Get(ctx, domain.KeyAuthToken)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	if !ok || token == "" {
		return nil, nil
	}

	raw, ok, err := m.store.Get(ctx, domain.KeyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("read user: %w", err)
	}
	if !ok {
		return nil, errors.New("token present without user record")
	}

	var user domain.UserProfile
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if !user.Valid() {
		return nil, errors.New("user record missing id or email")
	}

	refresh, _, err := m.store.Get(ctx, domain.KeyRefreshToken)
	if err != nil {
		m.log.Warn().Err(err).Msg("refresh token unreadable, ignoring")
		refresh = ""
	}

	return &domain.Session{
		State:           domain.SessionAuthenticated,
		Token:           token,
		RefreshToken:    refresh,
		User:            &user,
		IssuedVia:       domain.IssuedViaRestore,
		AuthenticatedAt: m.now(),
	}, nil
}

// Login authenticates against the remote auth service. The mirror is written
// before the in-memory session flips, and a failed login never changes the
// current session. Every failure is an *domain.AuthFailedError.
func (m *SessionManager) Login(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return m.Snapshot(), &domain.AuthFailedError{
			Reason: domain.MsgMissingCredentials,
			Cause:  domain.ErrMissingCredentials,
		}
	}

	creds, err := m.gateway.Login(ctx, email, password)
	if err == nil && (creds == nil || creds.Token == "" || !creds.User.Valid()) {
		err = domain.ErrMalformedResponse
	}
	if err != nil {
		m.log.Info().Err(err).Str("email", email).Msg("login failed")
		return m.Snapshot(), &domain.AuthFailedError{
			Reason: domain.LoginFailureReason(err),
			Cause:  err,
		}
	}

	blob, err := json.Marshal(creds.User)
	if err != nil {
		return m.Snapshot(), &domain.AuthFailedError{
			Reason: domain.MsgLoginFailed,
			Cause:  fmt.Errorf("encode user: %w", err),
		}
	}

	set := map[string]string{
		domain.KeyAuthToken:   creds.Token,
		domain.KeyCurrentUser: string(blob),
	}
	var clear []string
	if creds.RefreshToken != "" {
		set[domain.KeyRefreshToken] = creds.RefreshToken
	} else {
		clear = append(clear, domain.KeyRefreshToken)
	}

	user := creds.User

	m.mu.Lock()
	if err := m.store.Write(ctx, set, clear...); err != nil {
		m.mu.Unlock()
		m.log.Error().Err(err).Str("email", email).Msg("persist session failed")
		return m.Snapshot(), &domain.AuthFailedError{
			Reason: domain.MsgLoginFailed,
			Cause:  fmt.Errorf("persist session: %w", err),
		}
	}
	m.session = domain.Session{
		State:           domain.SessionAuthenticated,
		Token:           creds.Token,
		RefreshToken:    creds.RefreshToken,
		User:            &user,
		IssuedVia:       domain.IssuedViaLogin,
		AuthenticatedAt: m.now(),
	}
	snapshot := m.session
	m.mu.Unlock()

	m.log.Info().Str("user_id", user.ID).Str("email", email).Msg("login succeeded")

	if m.provision != nil {
		m.provision.Enqueue(ports.ProvisionRequest{UserID: user.ID, Token: creds.Token})
	}

	return snapshot, nil
}

// Logout clears the mirror and resets the session. Calling it on an
// Anonymous session is a no-op. The in-memory session is reset even when the
// store fails; the error is returned so the caller can report it.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	wasAuthenticated := m.session.Authenticated()
	m.session = domain.AnonymousSession()

	if err := m.store.Delete(ctx, domain.MirrorKeys...); err != nil {
		m.log.Error().Err(err).Msg("clear session mirror failed")
		return fmt.Errorf("logout: %w", err)
	}

	if wasAuthenticated {
		m.log.Info().Msg("logged out")
	}
	return nil
}

// Snapshot returns a copy of the current session.
func (m *SessionManager) Snapshot() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.session
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Token returns the current bearer token when authenticated.
func (m *SessionManager) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.session.Authenticated() {
		return "", false
	}
	return m.session.Token, true
}
