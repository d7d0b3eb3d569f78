package domain

import "time"

// SessionState is the authentication state of the process-wide session.
type SessionState string

const (
	SessionAnonymous     SessionState = "anonymous"
	SessionAuthenticated SessionState = "authenticated"
)

// IssuedVia records how a session was established.
type IssuedVia string

const (
	IssuedViaLogin IssuedVia = "login"
	// IssuedViaRestore marks a session rebuilt from the credential mirror.
	// The credential itself was still minted by a login.
	IssuedViaRestore IssuedVia = "restore"
)

// Credential mirror keys.
const (
	KeyAuthToken    = "auth_token"
	KeyRefreshToken = "refresh_token"
	KeyCurrentUser  = "current_user"
)

// MirrorKeys lists every key the session mirror may occupy.
var MirrorKeys = []string{KeyAuthToken, KeyRefreshToken, KeyCurrentUser}

// Credentials is what a successful remote login yields.
type Credentials struct {
	Token        string
	RefreshToken string
	User         UserProfile
}

// Session is the authenticated identity of the process and its credential.
// Token and User are set together and cleared together.
type Session struct {
	State           SessionState
	Token           string
	RefreshToken    string
	User            *UserProfile
	IssuedVia       IssuedVia
	AuthenticatedAt time.Time
}

// AnonymousSession returns the zero-credential session.
func AnonymousSession() Session {
	return Session{State: SessionAnonymous}
}

// Authenticated reports whether both the token and the user are present.
func (s Session) Authenticated() bool {
	return s.State == SessionAuthenticated && s.Token != "" && s.User != nil
}
