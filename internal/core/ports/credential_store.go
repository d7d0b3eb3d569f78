package ports

import "context"

// CredentialStore is durable key/value persistence for the session mirror.
// Values are opaque strings.
type CredentialStore interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Write sets every entry of set and removes every key in clear as one
	// atomic operation. Readers never observe a partial write.
	Write(ctx context.Context, set map[string]string, clear ...string) error
	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}
