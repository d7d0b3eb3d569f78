package ports

import "context"

// ExternalOpener hands a URL to the platform's external browser.
type ExternalOpener interface {
	Open(ctx context.Context, rawURL string) error
}
