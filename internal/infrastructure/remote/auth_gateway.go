package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/ewbmobile/hybrid-shell/internal/core/domain"
)

// AuthGateway calls POST <authBase>/login.
type AuthGateway struct {
	client   *Client
	authBase string
}

func NewAuthGateway(client *Client, authBase string) *AuthGateway {
	return &AuthGateway{client: client, authBase: authBase}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// credentialFields is the direct success shape.
type credentialFields struct {
	Token        string              `json:"token"`
	RefreshToken string              `json:"refreshToken"`
	User         *domain.UserProfile `json:"user"`
}

// loginBody covers both accepted shapes: credentials at the top level, or
// nested under data in a {success, message, data} envelope.
type loginBody struct {
	credentialFields
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (f credentialFields) credentials() (*domain.Credentials, bool) {
	if f.Token == "" || f.User == nil || !f.User.Valid() {
		return nil, false
	}
	return &domain.Credentials{Token: f.Token, RefreshToken: f.RefreshToken, User: *f.User}, true
}

func (g *AuthGateway) Login(ctx context.Context, email, password string) (*domain.Credentials, error) {
	url, err := endpoint(g.authBase, "login")
	if err != nil {
		return nil, err
	}

	resp, err := g.client.R(ctx).
		SetBody(loginRequest{Email: email, Password: password}).
		Post(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoResponse, err)
	}
	if !resp.IsSuccess() {
		return nil, rejection(resp.StatusCode(), resp.Body())
	}
	return decodeLogin(resp.Body())
}

// decodeLogin tries the direct shape, then the envelope shape. Nothing else
// is accepted.
func decodeLogin(body []byte) (*domain.Credentials, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: empty body", domain.ErrMalformedResponse)
	}

	var b loginBody
	if err := json.Unmarshal(body, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if creds, ok := b.credentials(); ok {
		return creds, nil
	}

	if len(b.Data) > 0 && !bytes.Equal(bytes.TrimSpace(b.Data), []byte("null")) {
		var nested credentialFields
		if err := json.Unmarshal(b.Data, &nested); err != nil {
			return nil, fmt.Errorf("%w: data: %v", domain.ErrMalformedResponse, err)
		}
		if creds, ok := nested.credentials(); ok {
			return creds, nil
		}
	}

	switch {
	case b.Message != "":
		return nil, &domain.ServerRejectedError{Message: b.Message}
	case b.Success != nil && !*b.Success:
		return nil, &domain.ServerRejectedError{Message: domain.MsgLoginFailed}
	default:
		return nil, fmt.Errorf("%w: no token and user in response", domain.ErrMalformedResponse)
	}
}

// rejection maps a non-2xx answer. A server-supplied message wins; otherwise
// the answer is a plain Unauthorized.
func rejection(status int, body []byte) error {
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		msg := errResp.Message
		if msg == "" {
			msg = errResp.Error
		}
		if msg != "" {
			return &domain.ServerRejectedError{StatusCode: status, Message: msg}
		}
	}
	return fmt.Errorf("%w: status %d", domain.ErrUnauthorized, status)
}
