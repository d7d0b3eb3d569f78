// Package remote talks to the remote auth service and module backends.
package remote

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/ewbmobile/hybrid-shell/internal/core/domain"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "EWBMobile-Shell/1.0"
)

type Config struct {
	Timeout   time.Duration
	RetryMax  int
	UserAgent string
}

// Client is a resty client running on the pooled transport of a retryable
// HTTP client. Retries only cover transport errors, never non-2xx answers.
type Client struct {
	resty *resty.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RetryMax < 0 {
		cfg.RetryMax = 0
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.Logger = nil

	r := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryMax).
		SetRetryWaitTime(250 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json")
	r.SetTransport(retryClient.HTTPClient.Transport)

	return &Client{resty: r}
}

// R starts a request bound to ctx.
func (c *Client) R(ctx context.Context) *resty.Request {
	return c.resty.R().SetContext(ctx)
}

// endpoint joins base and path and rejects anything that is not an absolute
// http(s) URL.
func endpoint(base string, path ...string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidRequest, base)
	}
	return u.JoinPath(path...).String(), nil
}
